package audit

import "time"

// Kind es el tipo de envío registrado.
type Kind string

const (
	KindPatient      Kind = "patient"
	KindAppointment  Kind = "appointment"
	KindPrescription Kind = "prescription"
	KindEmail        Kind = "prescription_email"
)

type Outcome string

const (
	OutcomeOK    Outcome = "ok"
	OutcomeError Outcome = "error"
)

// Entry es un envío (alta, cita, receta, correo) y su resultado.
type Entry struct {
	ID         string
	Kind       Kind
	ActorID    string
	Subject    string // id del recurso creado o del paciente
	Outcome    Outcome
	Detail     string
	RecordedAt time.Time
}
