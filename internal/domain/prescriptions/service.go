package prescriptions

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"clinic-desk/internal/platform/logger"
	"clinic-desk/internal/platform/validation"
	"clinic-desk/internal/ports/auth"
)

var (
	ErrMailerNotConfigured = errors.New("mailer not configured")
)

const (
	msgRequiredItemFields = "Por favor complete todos los campos requeridos en cada medicamento"

	// UnknownSignature se usa si la sesión no trae nombre.
	UnknownSignature = "Dr. Desconocido"
)

type Service struct {
	repo     Repository
	patients PatientLookup
	mailer   Mailer
	loc      *time.Location
	now      func() time.Time
	log      logger.Logger
}

type Options struct {
	Patients PatientLookup
	Mailer   Mailer
	Location *time.Location // zona para imprimir la fecha; nil => time.Local
	Logger   logger.Logger
}

func NewService(repo Repository, opts Options) *Service {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &Service{
		repo:     repo,
		patients: opts.Patients,
		mailer:   opts.Mailer,
		loc:      opts.Location,
		now:      time.Now,
		log:      opts.Logger.With(map[string]any{"module": "prescriptions"}),
	}
}

// Build valida el formulario y arma el payload. Hace falta al menos un medicamento
// y todos sus campos salvo observaciones.
func (s *Service) Build(user auth.Claims, f Form) (Payload, error) {
	if f.PatientID.Empty() || len(f.Items) == 0 {
		return Payload{}, validation.New(msgRequiredItemFields)
	}
	patientID, ok := f.PatientID.Int()
	if !ok || patientID <= 0 {
		return Payload{}, validation.New("Paciente inválido")
	}

	items := make([]Item, 0, len(f.Items))
	for _, it := range f.Items {
		medication := strings.TrimSpace(it.Medication)
		dosage := strings.TrimSpace(it.Dosage)
		frequency := strings.TrimSpace(it.Frequency)
		route := strings.TrimSpace(it.AdministrationRoute)
		if medication == "" || dosage == "" || frequency == "" || route == "" || it.DurationDays.Empty() {
			return Payload{}, validation.New(msgRequiredItemFields)
		}
		days, ok := it.DurationDays.Int()
		if !ok || days < 1 {
			return Payload{}, validation.New("Los días de duración deben ser un número mayor a 0")
		}
		items = append(items, Item{
			Medication:          medication,
			Dosage:              dosage,
			Frequency:           frequency,
			DurationDays:        days,
			AdministrationRoute: route,
			Observations:        strings.TrimSpace(it.Observations),
		})
	}

	signature := strings.TrimSpace(user.FullName)
	if signature == "" {
		signature = UnknownSignature
	}

	return Payload{
		ElectronicSignature: signature,
		PatientID:           patientID,
		Observations:        strings.TrimSpace(f.Observations),
		Items:               items,
	}, nil
}

// Create envía la receta y devuelve su resumen imprimible.
func (s *Service) Create(ctx context.Context, user auth.Claims, f Form) (Summary, error) {
	p, err := s.Build(user, f)
	if err != nil {
		return Summary{}, err
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return Summary{}, fmt.Errorf("create prescription: %w", err)
	}

	issued := s.now()
	if created.IssuedAt != nil && !created.IssuedAt.IsZero() {
		issued = *created.IssuedAt
	}

	sum := Summary{
		PrescriptionID: created.ID,
		PatientName:    "Paciente #" + strconv.Itoa(p.PatientID),
		PatientDNI:     strconv.Itoa(p.PatientID),
		IssuedAt:       issued,
		Signature:      p.ElectronicSignature,
		Observations:   p.Observations,
		Items:          p.Items,
	}
	if s.patients != nil {
		pt, err := s.patients.Lookup(ctx, p.PatientID)
		if err != nil {
			// la receta ya existe; el resumen sale con el id
			s.log.Warn("no se pudo resolver el paciente del resumen", map[string]any{"error": err, "patient_id": p.PatientID})
		} else {
			sum.PatientName = pt.FullName
			sum.PatientDNI = pt.Identification()
		}
	}
	return sum, nil
}

// Print devuelve el resumen en texto plano.
func (s *Service) Print(sum Summary) (string, error) {
	return Render(sum, s.loc)
}

// Send envía el resumen por correo a to.
func (s *Service) Send(ctx context.Context, to string, sum Summary) error {
	if s.mailer == nil {
		return ErrMailerNotConfigured
	}
	addr, err := mail.ParseAddress(strings.TrimSpace(to))
	if err != nil {
		return validation.New("Correo electrónico inválido")
	}
	if len(sum.Items) == 0 {
		return validation.New("La receta no tiene medicamentos")
	}

	body, err := Render(sum, s.loc)
	if err != nil {
		return err
	}
	subject := "Receta médica - " + sum.PatientName
	if err := s.mailer.Send(ctx, addr.Address, subject, body); err != nil {
		return fmt.Errorf("send prescription: %w", err)
	}
	return nil
}
