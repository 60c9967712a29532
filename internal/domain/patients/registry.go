package patients

import (
	"context"
	"sync"
	"time"

	"clinic-desk/internal/platform/logger"

	"github.com/google/uuid"
)

// DefaultViewTTL es el tiempo sin uso tras el cual una vista se desmonta sola.
const DefaultViewTTL = 30 * time.Minute

// Registry guarda las vistas montadas. Toda salida (Remove, expiración,
// CloseAll) pasa por View.Close.
type Registry struct {
	mu    sync.Mutex
	views map[string]*registered
	ttl   time.Duration
	now   func() time.Time
	log   logger.Logger
}

type registered struct {
	view     *View
	lastSeen time.Time
}

func NewRegistry(ttl time.Duration, log logger.Logger) *Registry {
	if ttl <= 0 {
		ttl = DefaultViewTTL
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Registry{
		views: make(map[string]*registered),
		ttl:   ttl,
		now:   time.Now,
		log:   log.With(map[string]any{"module": "patient_views"}),
	}
}

func (r *Registry) Add(v *View) string {
	id := uuid.NewString()
	r.mu.Lock()
	r.views[id] = &registered{view: v, lastSeen: r.now()}
	r.mu.Unlock()
	return id
}

// Get devuelve la vista y renueva su expiración.
func (r *Registry) Get(id string) (*View, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.views[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = r.now()
	return e.view, true
}

func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	e, ok := r.views[id]
	delete(r.views, id)
	r.mu.Unlock()

	if ok {
		e.view.Close()
	}
	return ok
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

// Sweep desmonta las vistas sin uso desde hace más de ttl.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	var expired []*View
	for id, e := range r.views {
		if e.lastSeen.Before(cutoff) {
			expired = append(expired, e.view)
			delete(r.views, id)
		}
	}
	r.mu.Unlock()

	for _, v := range expired {
		v.Close()
	}
	if len(expired) > 0 {
		r.log.Debug("vistas expiradas", map[string]any{"count": len(expired)})
	}
	return len(expired)
}

// Run barre periódicamente hasta que ctx termina y luego cierra todo.
func (r *Registry) Run(ctx context.Context) {
	tick := time.NewTicker(r.ttl / 2)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			r.CloseAll()
			return
		case <-tick.C:
			r.Sweep()
		}
	}
}

func (r *Registry) CloseAll() {
	r.mu.Lock()
	all := r.views
	r.views = make(map[string]*registered)
	r.mu.Unlock()

	for _, e := range all {
		e.view.Close()
	}
}
