package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"clinic-desk/internal/domain/audit"
)

type auditRepo struct {
	mu      sync.RWMutex
	entries []audit.Entry
}

func NewAuditRepo() audit.Repository {
	return &auditRepo{}
}

func (r *auditRepo) Create(ctx context.Context, e audit.Entry) error {
	if strings.TrimSpace(e.ID) == "" {
		return errors.New("audit id required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	return nil
}

// List devuelve lo más reciente primero.
func (r *auditRepo) List(ctx context.Context, f audit.ListFilter) ([]audit.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]audit.Entry, 0, len(r.entries))
	for _, e := range r.entries {
		if f.Kind != "" && e.Kind != f.Kind {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RecordedAt.After(out[j].RecordedAt)
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}
