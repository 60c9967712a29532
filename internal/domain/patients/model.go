package patients

import (
	"strconv"
	"strings"
)

// Gender es el valor de presentación. El backend solo manda una letra,
// así que solo hay dos categorías representables.
type Gender string

const (
	GenderMale   Gender = "Masculino"
	GenderFemale Gender = "Femenino"
)

// GenderFromCode: "M" => Masculino, cualquier otra cosa => Femenino.
func GenderFromCode(code string) Gender {
	if code == "M" {
		return GenderMale
	}
	return GenderFemale
}

// GenderCode normaliza "M", "f", "Masculino", "femenino"... a la letra del wire.
// Devuelve "" si no reconoce el valor.
func GenderCode(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	switch {
	case s == "":
		return ""
	case strings.HasPrefix(s, "M"):
		return "M"
	case strings.HasPrefix(s, "F"):
		return "F"
	default:
		return ""
	}
}

// LastVisitPlaceholder se muestra en las tarjetas; el backend no lo informa.
const LastVisitPlaceholder = "Hace poco"

// Patient es la proyección que usa el escritorio.
type Patient struct {
	ID        int
	FullName  string
	Age       int
	Gender    Gender
	LastVisit string
	DNI       string
}

// Record es el paciente tal como viaja por GET/POST /api/patient.
type Record struct {
	PatientID int    `json:"patient_id"`
	FullName  string `json:"full_name"`
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
	DNI       string `json:"dni,omitempty"`
}

func (r Record) ToPatient() Patient {
	return Patient{
		ID:        r.PatientID,
		FullName:  r.FullName,
		Age:       r.Age,
		Gender:    GenderFromCode(r.Gender),
		LastVisit: LastVisitPlaceholder,
		DNI:       r.DNI,
	}
}

// Identification es lo que se imprime como "Identificación": DNI o el id.
func (p Patient) Identification() string {
	if strings.TrimSpace(p.DNI) != "" {
		return p.DNI
	}
	return strconv.Itoa(p.ID)
}

// NewPatient es el cuerpo de POST /api/patient.
type NewPatient struct {
	FullName string `json:"full_name"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
	DNI      string `json:"dni,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	Address  string `json:"address,omitempty"`
}

// Option es una entrada del selector de paciente de los formularios.
type Option struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

func (p Patient) Option() Option {
	return Option{
		ID:    p.ID,
		Label: p.FullName + " - " + strconv.Itoa(p.Age) + " años (" + string(p.Gender) + ")",
	}
}
