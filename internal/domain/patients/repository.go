package patients

import "context"

// Repository es el backend de pacientes (REST en producción, memoria en dev).
type Repository interface {
	List(ctx context.Context, q ListQuery) ([]Record, error)
	Create(ctx context.Context, in NewPatient) (Record, error)
}
