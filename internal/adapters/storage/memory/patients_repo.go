package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"clinic-desk/internal/domain/patients"
)

type patientRepo struct {
	mu     sync.RWMutex
	byID   map[int]patients.Record
	nextID int
}

// NewPatientRepo arranca con seed (puede ser nil). Los ids nuevos siguen al mayor.
func NewPatientRepo(seed []patients.Record) patients.Repository {
	r := &patientRepo{
		byID:   make(map[int]patients.Record, len(seed)),
		nextID: 1,
	}
	for _, p := range seed {
		r.byID[p.PatientID] = p
		if p.PatientID >= r.nextID {
			r.nextID = p.PatientID + 1
		}
	}
	return r
}

// DevPatients es el roster de desarrollo cuando no hay backend configurado.
func DevPatients() []patients.Record {
	return []patients.Record{
		{PatientID: 1, FullName: "Ana Ruiz", Age: 34, Gender: "F", DNI: "40123456"},
		{PatientID: 2, FullName: "Bruno Diaz", Age: 52, Gender: "M", DNI: "10987654"},
		{PatientID: 3, FullName: "Carla Mendoza", Age: 27, Gender: "F"},
		{PatientID: 4, FullName: "Diego Salas", Age: 61, Gender: "M"},
		{PatientID: 5, FullName: "Elena Quispe", Age: 45, Gender: "F"},
		{PatientID: 6, FullName: "Fernando Rojas", Age: 8, Gender: "M"},
		{PatientID: 7, FullName: "Gabriela Torres", Age: 39, Gender: "F"},
		{PatientID: 8, FullName: "Hugo Vargas", Age: 73, Gender: "M"},
		{PatientID: 9, FullName: "Isabel Castro", Age: 19, Gender: "F"},
		{PatientID: 10, FullName: "Jorge Paredes", Age: 30, Gender: "M"},
		{PatientID: 11, FullName: "Karina Flores", Age: 56, Gender: "F"},
		{PatientID: 12, FullName: "Luis Medina", Age: 41, Gender: "M"},
	}
}

// List imita al backend: filtra, ordena por id y pagina con page/limit.
func (r *patientRepo) List(ctx context.Context, q patients.ListQuery) ([]patients.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]patients.Record, 0, len(r.byID))
	for _, p := range r.byID {
		if q.Filters != nil && !q.Filters.Match(p) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PatientID < out[j].PatientID })

	if q.Limit <= 0 {
		return out, nil
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * q.Limit
	if start >= len(out) {
		return []patients.Record{}, nil
	}
	end := start + q.Limit
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], nil
}

func (r *patientRepo) Create(ctx context.Context, in patients.NewPatient) (patients.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(in.FullName) == "" {
		return patients.Record{}, errors.New("full_name required")
	}
	rec := patients.Record{
		PatientID: r.nextID,
		FullName:  strings.TrimSpace(in.FullName),
		Age:       in.Age,
		Gender:    patients.GenderCode(in.Gender),
		DNI:       strings.TrimSpace(in.DNI),
	}
	r.byID[rec.PatientID] = rec
	r.nextID++
	return rec, nil
}
