package memory

import (
	"context"
	"sync"

	"clinic-desk/internal/domain/appointments"
)

// AppointmentRepo guarda las citas enviadas (dev y tests).
type AppointmentRepo struct {
	mu    sync.RWMutex
	items []appointments.Payload
}

func NewAppointmentRepo() *AppointmentRepo {
	return &AppointmentRepo{}
}

func (r *AppointmentRepo) Create(ctx context.Context, p appointments.Payload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, p)
	return nil
}

func (r *AppointmentRepo) All() []appointments.Payload {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]appointments.Payload(nil), r.items...)
}
