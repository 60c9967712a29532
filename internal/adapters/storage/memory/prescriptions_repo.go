package memory

import (
	"context"
	"sync"
	"time"

	"clinic-desk/internal/domain/prescriptions"
)

// PrescriptionRepo asigna ids secuenciales y sella issued_at.
type PrescriptionRepo struct {
	mu     sync.RWMutex
	items  map[int]prescriptions.Payload
	nextID int
	now    func() time.Time
}

func NewPrescriptionRepo() *PrescriptionRepo {
	return &PrescriptionRepo{
		items:  make(map[int]prescriptions.Payload),
		nextID: 1,
		now:    time.Now,
	}
}

func (r *PrescriptionRepo) Create(ctx context.Context, p prescriptions.Payload) (prescriptions.Created, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++
	r.items[id] = p

	issued := r.now().UTC()
	return prescriptions.Created{ID: id, IssuedAt: &issued}, nil
}

func (r *PrescriptionRepo) Get(id int) (prescriptions.Payload, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	return p, ok
}
