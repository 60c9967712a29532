package router

import (
	"database/sql"
	"fmt"
	"net/http"

	_ "clinic-desk/docs"
	"clinic-desk/internal/adapters/auth/session"
	"clinic-desk/internal/adapters/clinicapi"
	"clinic-desk/internal/adapters/notify"
	mem "clinic-desk/internal/adapters/storage/memory"
	pg "clinic-desk/internal/adapters/storage/postgres"
	"clinic-desk/internal/config"
	"clinic-desk/internal/domain/appointments"
	"clinic-desk/internal/domain/audit"
	"clinic-desk/internal/domain/patients"
	"clinic-desk/internal/domain/prescriptions"
	"clinic-desk/internal/middleware"
	"clinic-desk/internal/platform/debounce"
	"clinic-desk/internal/platform/httpclient"
	"clinic-desk/internal/platform/logger"
	"clinic-desk/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Config *config.Config     // nil => config.Defaults()
	Logger *logger.ZeroLogger // nil => sin logs

	// Backend: si es nil se arma con NewBackend(Config, DB).
	Backend *Backend
	// Opcional: si viene, la auditoría va a Postgres. Si no, in-memory.
	DB *sql.DB

	Mailer prescriptions.Mailer // nil => NewMailer(Config)
	Views  *patients.Registry   // nil => registro propio sin sweeper
	Clock  debounce.Clock       // tests
}

// Backend son los repositorios de dominio ya elegidos (REST o memoria).
type Backend struct {
	Patients      patients.Repository
	Appointments  appointments.Repository
	Prescriptions prescriptions.Repository
	Audit         audit.Repository
	// Resolver es nil en modo dev: el middleware usa los headers X-Debug-*.
	Resolver auth.SessionResolver
}

// NewBackend usa el backend clínico si CLINIC_API_URL está definido; si no,
// un roster en memoria para desarrollo.
func NewBackend(cfg *config.Config, db *sql.DB) (Backend, error) {
	var b Backend

	if cfg.DevBackend() {
		b.Patients = mem.NewPatientRepo(mem.DevPatients())
		b.Appointments = mem.NewAppointmentRepo()
		b.Prescriptions = mem.NewPrescriptionRepo()
	} else {
		hc, err := httpclient.NewWithBaseURL(cfg.ClinicAPIURL, cfg.HTTPTimeout)
		if err != nil {
			return Backend{}, fmt.Errorf("clinic api: %w", err)
		}
		b.Patients = clinicapi.NewPatientsRepo(hc)
		b.Appointments = clinicapi.NewAppointmentsRepo(hc)
		b.Prescriptions = clinicapi.NewPrescriptionsRepo(hc)
		b.Resolver = session.NewResolver(session.NewClient(hc, session.Config{Path: cfg.SessionPath}))
	}

	if db != nil {
		b.Audit = pg.NewAuditRepo(db)
	} else {
		b.Audit = mem.NewAuditRepo()
	}
	return b, nil
}

// NewMailer usa SMTP si está configurado; si no, retiene los correos en memoria.
func NewMailer(cfg *config.Config, log logger.Logger) prescriptions.Mailer {
	smtpCfg := notify.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Pass:     cfg.SMTPPass,
		FromName: cfg.SMTPFromName,
		FromAddr: cfg.SMTPFromAddr,
	}
	if smtpCfg.Configured() {
		return notify.NewSMTPMailer(smtpCfg, log)
	}
	return notify.NewOutbox(log)
}

func NewRouter(opts Options) (http.Handler, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Defaults()
	}
	var log logger.Logger = logger.Nop()
	if opts.Logger != nil {
		log = opts.Logger
	}

	var backend Backend
	if opts.Backend != nil {
		backend = *opts.Backend
	} else {
		b, err := NewBackend(cfg, opts.DB)
		if err != nil {
			return nil, err
		}
		backend = b
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	views := opts.Views
	if views == nil {
		views = patients.NewRegistry(cfg.ViewTTL, log)
	}
	mailer := opts.Mailer
	if mailer == nil {
		mailer = NewMailer(cfg, log)
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	if opts.Logger != nil {
		r.Use(middleware.RequestLogger(opts.Logger.Zerolog()))
	}
	r.Use(chimw.Recoverer)

	r.Use(middleware.Session(backend.Resolver))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Services por módulo
	auditSvc := audit.NewService(backend.Audit, log)
	patientsSvc := patients.NewService(backend.Patients, patients.ServiceOptions{
		RosterLimit: cfg.RosterLimit,
		Logger:      log,
	})
	appointmentsSvc := appointments.NewService(backend.Appointments, appointments.Options{
		Location:        loc,
		DefaultDoctorID: cfg.DefaultDoctorID,
	})
	prescriptionsSvc := prescriptions.NewService(backend.Prescriptions, prescriptions.Options{
		Patients: patientsSvc,
		Mailer:   mailer,
		Location: loc,
		Logger:   log,
	})

	// Rutas por módulo
	patients.RegisterRoutes(r, patients.Deps{
		Service: patientsSvc,
		Views:   views,
		ViewOptions: patients.ViewOptions{
			PerPage:     cfg.PageSize,
			SearchDelay: cfg.SearchDebounce,
			FilterMode:  patients.ParseFilterMode(cfg.FilterMode),
			APIURL:      cfg.ClinicAPIURL,
			Clock:       opts.Clock,
			Logger:      log,
		},
		Audit: auditSvc,
	})
	appointments.RegisterRoutes(r, appointmentsSvc, auditSvc, log)
	prescriptions.RegisterRoutes(r, prescriptionsSvc, auditSvc, log)
	audit.RegisterRoutes(r, auditSvc)

	return r, nil
}
