package auth

// Claims es el usuario de la sesión (médico/recepción) que opera el escritorio.
type Claims struct {
	UserID   string
	DoctorID int // 0 si el backend no lo informa
	FullName string
	Email    string
}
