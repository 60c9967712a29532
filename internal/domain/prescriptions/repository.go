package prescriptions

import (
	"context"

	"clinic-desk/internal/domain/patients"
)

type Repository interface {
	Create(ctx context.Context, p Payload) (Created, error)
}

// PatientLookup resuelve nombre e identificación para el resumen.
type PatientLookup interface {
	Lookup(ctx context.Context, id int) (patients.Patient, error)
}

// Mailer envía el resumen por correo.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
