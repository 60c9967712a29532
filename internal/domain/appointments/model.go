package appointments

import "clinic-desk/internal/platform/validation"

// DefaultDurationMinutes es el valor inicial del formulario.
const DefaultDurationMinutes = 30

// Form es el formulario "Agregar Cita Médica" tal como llega.
// Date es YYYY-MM-DD y Time HH:MM, en la zona horaria de la clínica.
type Form struct {
	PatientID validation.Field `json:"patient_id"`
	Date      string           `json:"date"`
	Time      string           `json:"time"`
	Duration  validation.Field `json:"duration"`
	Reason    string           `json:"reason"`
}

// Payload es el cuerpo de POST /api/medicalappointment.
type Payload struct {
	AppointmentTime string `json:"appointment_time"`
	DoctorID        int    `json:"doctor_id"`
	DurationMinutes int    `json:"duration_minutes"`
	PatientID       int    `json:"patient_id"`
	Reason          string `json:"reason"`
}
