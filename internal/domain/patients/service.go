package patients

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"clinic-desk/internal/platform/logger"
	"clinic-desk/internal/platform/validation"
)

var (
	ErrNotFound = errors.New("patient not found")
)

// DefaultRosterLimit actúa como "traer todos".
const DefaultRosterLimit = 10000

const msgRequiredFields = "Completa todos los campos obligatorios"

type Service struct {
	repo        Repository
	rosterLimit int
	log         logger.Logger
}

type ServiceOptions struct {
	RosterLimit int
	Logger      logger.Logger
}

func NewService(repo Repository, opts ServiceOptions) *Service {
	if opts.RosterLimit <= 0 {
		opts.RosterLimit = DefaultRosterLimit
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &Service{
		repo:        repo,
		rosterLimit: opts.RosterLimit,
		log:         opts.Logger.With(map[string]any{"module": "patients"}),
	}
}

// Roster trae la colección completa (page=1&limit=RosterLimit).
func (s *Service) Roster(ctx context.Context) ([]Patient, error) {
	return s.list(ctx, ListQuery{Page: 1, Limit: s.rosterLimit})
}

// Filtered trae la colección con los filtros estructurados aplicados por el backend.
func (s *Service) Filtered(ctx context.Context, f Filters) ([]Patient, error) {
	return s.list(ctx, ListQuery{Page: 1, Limit: s.rosterLimit, Filters: &f})
}

func (s *Service) list(ctx context.Context, q ListQuery) ([]Patient, error) {
	recs, err := s.repo.List(ctx, q)
	if err != nil {
		s.log.Error("Error al cargar pacientes", map[string]any{"error": err})
		return nil, fmt.Errorf("list patients: %w", err)
	}
	out := make([]Patient, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.ToPatient())
	}
	return out, nil
}

// Lookup busca un paciente del roster por id.
func (s *Service) Lookup(ctx context.Context, id int) (Patient, error) {
	roster, err := s.Roster(ctx)
	if err != nil {
		return Patient{}, err
	}
	for _, p := range roster {
		if p.ID == id {
			return p, nil
		}
	}
	return Patient{}, ErrNotFound
}

// Options es el roster como opciones de selector para los formularios.
func (s *Service) Options(ctx context.Context) ([]Option, error) {
	roster, err := s.Roster(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Option, 0, len(roster))
	for _, p := range roster {
		out = append(out, p.Option())
	}
	return out, nil
}

// Register valida y envía un paciente nuevo.
func (s *Service) Register(ctx context.Context, in NewPatient) (Patient, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.DNI = strings.TrimSpace(in.DNI)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	in.Address = strings.TrimSpace(in.Address)

	if in.FullName == "" || in.Gender == "" {
		return Patient{}, validation.New(msgRequiredFields)
	}
	code := GenderCode(in.Gender)
	if code == "" {
		return Patient{}, validation.New("Sexo inválido: use M o F")
	}
	in.Gender = code
	if in.Age < 0 {
		return Patient{}, validation.New("La edad no puede ser negativa")
	}

	rec, err := s.repo.Create(ctx, in)
	if err != nil {
		s.log.Error("Error al guardar paciente", map[string]any{"error": err})
		return Patient{}, fmt.Errorf("create patient: %w", err)
	}
	return rec.ToPatient(), nil
}
