package appointments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"clinic-desk/internal/platform/validation"
	"clinic-desk/internal/ports/auth"
)

const (
	msgRequiredFields = "Completa todos los campos obligatorios"

	// ISO-8601 en UTC con milisegundos.
	isoLayout = "2006-01-02T15:04:05.000Z"
)

type Service struct {
	repo            Repository
	loc             *time.Location
	defaultDoctorID int
}

type Options struct {
	// Location interpreta fecha y hora del formulario. nil => time.Local.
	Location        *time.Location
	DefaultDoctorID int
}

func NewService(repo Repository, opts Options) *Service {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.DefaultDoctorID <= 0 {
		opts.DefaultDoctorID = 1
	}
	return &Service{
		repo:            repo,
		loc:             opts.Location,
		defaultDoctorID: opts.DefaultDoctorID,
	}
}

// Build valida el formulario y arma el payload. No hace I/O.
func (s *Service) Build(user auth.Claims, f Form) (Payload, error) {
	reason := strings.TrimSpace(f.Reason)
	date := strings.TrimSpace(f.Date)
	clock := strings.TrimSpace(f.Time)
	if f.PatientID.Empty() || date == "" || clock == "" || reason == "" {
		return Payload{}, validation.New(msgRequiredFields)
	}

	patientID, ok := f.PatientID.Int()
	if !ok || patientID <= 0 {
		return Payload{}, validation.New("Paciente inválido")
	}

	duration := DefaultDurationMinutes
	if !f.Duration.Empty() {
		n, ok := f.Duration.Int()
		if !ok || n < 1 {
			return Payload{}, validation.New("La duración debe ser un número de minutos mayor a 0")
		}
		duration = n
	}

	at, err := AppointmentTime(date, clock, s.loc)
	if err != nil {
		return Payload{}, validation.New("Fecha u hora inválida")
	}

	doctorID := user.DoctorID
	if doctorID <= 0 {
		doctorID = s.defaultDoctorID
	}

	return Payload{
		AppointmentTime: at,
		DoctorID:        doctorID,
		DurationMinutes: duration,
		PatientID:       patientID,
		Reason:          reason,
	}, nil
}

// Create valida, arma y envía la cita.
func (s *Service) Create(ctx context.Context, user auth.Claims, f Form) (Payload, error) {
	p, err := s.Build(user, f)
	if err != nil {
		return Payload{}, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return Payload{}, fmt.Errorf("create appointment: %w", err)
	}
	return p, nil
}

// AppointmentTime interpreta date+time como hora local de loc y la devuelve en UTC ISO-8601.
func AppointmentTime(date, clock string, loc *time.Location) (string, error) {
	layout := "2006-01-02T15:04"
	if strings.Count(clock, ":") == 2 {
		layout = "2006-01-02T15:04:05"
	}
	t, err := time.ParseInLocation(layout, date+"T"+clock, loc)
	if err != nil {
		return "", err
	}
	return t.UTC().Format(isoLayout), nil
}
