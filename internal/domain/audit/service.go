package audit

import (
	"context"
	"strings"
	"time"

	"clinic-desk/internal/platform/logger"

	"github.com/google/uuid"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

type Service struct {
	repo Repository
	now  func() time.Time
	log  logger.Logger
}

func NewService(repo Repository, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo: repo,
		now:  time.Now,
		log:  log.With(map[string]any{"module": "audit"}),
	}
}

// Record guarda el resultado de un envío. Nunca falla hacia el caller:
// un error de auditoría se loguea y el flujo sigue.
func (s *Service) Record(ctx context.Context, kind Kind, actorID, subject string, cause error) {
	if s == nil || s.repo == nil {
		return
	}

	e := Entry{
		ID:         uuid.NewString(),
		Kind:       kind,
		ActorID:    strings.TrimSpace(actorID),
		Subject:    strings.TrimSpace(subject),
		Outcome:    OutcomeOK,
		RecordedAt: s.now().UTC(),
	}
	if cause != nil {
		e.Outcome = OutcomeError
		e.Detail = cause.Error()
	}

	// el request pudo cancelarse; el registro igual debe quedar
	ctx = context.WithoutCancel(ctx)
	if err := s.repo.Create(ctx, e); err != nil {
		s.log.Warn("no se pudo registrar auditoría", map[string]any{"error": err, "kind": string(kind)})
	}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Entry, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultLimit
	}
	if filter.Limit > MaxLimit {
		filter.Limit = MaxLimit
	}
	return s.repo.List(ctx, filter)
}
