package patients

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"clinic-desk/internal/platform/debounce"
	"clinic-desk/internal/platform/logger"
)

var (
	ErrViewClosed = errors.New("patient view closed")
	ErrSuperseded = errors.New("fetch superseded by a newer one")
)

// DefaultSearchDelay es el debounce de la búsqueda libre.
const DefaultSearchDelay = 400 * time.Millisecond

// FilterMode decide qué hacen los filtros estructurados con la lista.
type FilterMode string

const (
	// FilterModeRecord guarda los criterios y arma la URL, pero no toca la lista.
	FilterModeRecord FilterMode = "record"
	// FilterModeServer consulta al backend con los filtros y usa ese resultado
	// como base de la búsqueda libre.
	FilterModeServer FilterMode = "server"
)

func ParseFilterMode(s string) FilterMode {
	if FilterMode(s) == FilterModeServer {
		return FilterModeServer
	}
	return FilterModeRecord
}

// Source es lo que la vista necesita del servicio de pacientes.
type Source interface {
	Roster(ctx context.Context) ([]Patient, error)
	Filtered(ctx context.Context, f Filters) ([]Patient, error)
}

type ViewOptions struct {
	PerPage     int
	SearchDelay time.Duration
	FilterMode  FilterMode
	APIURL      string // solo para exponer la URL de filtros

	// Navigate arma la ruta de detalle de cada tarjeta.
	Navigate func(id int) string
	// OnChange se invoca (fuera del lock) cada vez que cambia la lista derivada.
	OnChange func(State)

	Clock  debounce.Clock
	Logger logger.Logger
}

// DetailPath es la navegación por defecto de una tarjeta.
func DetailPath(id int) string {
	return "/paciente/" + strconv.Itoa(id)
}

// Card es una tarjeta de la grilla.
type Card struct {
	ID         int    `json:"id"`
	FullName   string `json:"full_name"`
	Age        int    `json:"age"`
	Gender     Gender `json:"gender"`
	LastVisit  string `json:"last_visit"`
	DetailPath string `json:"detail_path"`
}

// State es una foto de la vista.
type State struct {
	Search     string  `json:"search"`
	Typed      string  `json:"typed"`
	Filters    Filters `json:"filters"`
	FilterURL  string  `json:"filter_url"`
	FilterMode string  `json:"filter_mode"`
	Page       int     `json:"page"`
	PerPage    int     `json:"per_page"`
	TotalPages int     `json:"total_pages"`
	Total      int     `json:"total"`
	Cards      []Card  `json:"cards"`
	Loaded     bool    `json:"loaded"`
	Searching  bool    `json:"searching"`
	LastError  string  `json:"last_error,omitempty"`
}

// View es el estado de una pantalla de lista de pacientes montada.
// La lista visible siempre se deriva de (base, búsqueda aplicada); base es el
// roster salvo que haya filtros de servidor activos.
type View struct {
	src  Source
	opts ViewOptions
	log  logger.Logger

	searcher *debounce.Debouncer[string]

	mu      sync.Mutex
	roster  []Patient
	base    []Patient
	visible []Patient
	search  string
	typed   string
	filters Filters
	page    int
	loaded  bool
	lastErr error
	closed  bool

	// roster y base filtrada se cancelan por separado: una recarga no pisa un filtro
	rosterFetch fetchSlot
	filterFetch fetchSlot
	serverBase  bool

	submitting atomic.Bool
}

// fetchSlot lleva el cancel del fetch en curso; gen descarta respuestas viejas.
type fetchSlot struct {
	gen    uint64
	cancel context.CancelFunc
}

func (f *fetchSlot) abort() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.gen++
}

func NewView(src Source, opts ViewOptions) *View {
	if opts.PerPage <= 0 {
		opts.PerPage = DefaultPerPage
	}
	if opts.SearchDelay <= 0 {
		opts.SearchDelay = DefaultSearchDelay
	}
	if opts.FilterMode == "" {
		opts.FilterMode = FilterModeRecord
	}
	if opts.Navigate == nil {
		opts.Navigate = DetailPath
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	v := &View{
		src:     src,
		opts:    opts,
		log:     opts.Logger.With(map[string]any{"module": "patient_view"}),
		roster:  []Patient{},
		base:    []Patient{},
		visible: []Patient{},
		page:    1,
	}
	v.searcher = debounce.New(opts.SearchDelay, v.applySearch, debounce.WithClock(opts.Clock))
	return v
}

// LoadRoster trae el roster completo. Si hay otro fetch en curso lo cancela.
// En error no toca el estado.
func (v *View) LoadRoster(ctx context.Context) error {
	ctx, gen, err := v.beginFetch(ctx, &v.rosterFetch)
	if err != nil {
		return err
	}

	roster, err := v.src.Roster(ctx)

	v.mu.Lock()
	if err := v.endFetchLocked(&v.rosterFetch, gen); err != nil {
		v.mu.Unlock()
		return err
	}
	if err != nil {
		v.lastErr = err
		v.mu.Unlock()
		v.log.Error("Error al cargar pacientes", map[string]any{"error": err})
		return err
	}

	v.roster = roster
	if !v.serverBase {
		v.base = roster
	}
	v.loaded = true
	v.lastErr = nil
	v.deriveLocked()
	st := v.stateLocked()
	v.mu.Unlock()

	v.log.Debug("roster cargado", map[string]any{"count": len(roster)})
	v.notify(st)
	return nil
}

// ApplySearch programa la búsqueda libre (debounced). La última llamada gana.
func (v *View) ApplySearch(text string) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.typed = text
	v.mu.Unlock()

	v.searcher.Call(text)
}

// FlushSearch aplica ya la búsqueda pendiente.
func (v *View) FlushSearch() bool {
	return v.searcher.Flush()
}

func (v *View) applySearch(text string) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.search = text
	v.page = 1
	v.deriveLocked()
	st := v.stateLocked()
	v.mu.Unlock()

	v.notify(st)
}

// ApplyFilters registra los criterios y vuelve a la página 1.
// En FilterModeRecord la lista no cambia; solo se arma (y loguea) la URL.
// En FilterModeServer los criterios se registran recién cuando llega la base
// filtrada; si el fetch falla o es reemplazado la vista queda como estaba.
func (v *View) ApplyFilters(ctx context.Context, f Filters) (State, error) {
	f = f.Normalize()

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return State{}, ErrViewClosed
	}
	url := FilterURL(v.opts.APIURL, 1, v.opts.PerPage, f)
	mode := v.opts.FilterMode
	if mode != FilterModeServer || f.IsZero() {
		v.filters = f
		v.page = 1
	}
	v.mu.Unlock()

	v.log.Info("Filtros aplicados", map[string]any{"filters": f, "url": url})

	if mode != FilterModeServer || f.IsZero() {
		return v.resetBase(), nil
	}

	ctx, gen, err := v.beginFetch(ctx, &v.filterFetch)
	if err != nil {
		return State{}, err
	}
	list, err := v.src.Filtered(ctx, f)

	v.mu.Lock()
	if err := v.endFetchLocked(&v.filterFetch, gen); err != nil {
		v.mu.Unlock()
		return State{}, err
	}
	if err != nil {
		v.lastErr = err
		st := v.stateLocked()
		v.mu.Unlock()
		v.log.Error("Error al filtrar pacientes", map[string]any{"error": err})
		return st, err
	}
	v.filters = f
	v.page = 1
	v.base = list
	v.serverBase = true
	v.lastErr = nil
	v.deriveLocked()
	st := v.stateLocked()
	v.mu.Unlock()

	v.notify(st)
	return st, nil
}

// ClearFilters vacía los criterios y vuelve a la página 1.
func (v *View) ClearFilters() State {
	v.mu.Lock()
	v.filters = Filters{}
	v.page = 1
	v.mu.Unlock()

	v.log.Info("Filtros limpiados", nil)
	return v.resetBase()
}

// resetBase vuelve a usar el roster como base y descarta cualquier filtrado en curso.
func (v *View) resetBase() State {
	v.mu.Lock()
	v.filterFetch.abort()
	if v.serverBase {
		v.serverBase = false
		v.base = v.roster
		v.deriveLocked()
	}
	st := v.stateLocked()
	v.mu.Unlock()

	v.notify(st)
	return st
}

// SetPage no valida contra TotalPages: una página fuera de rango muestra una grilla vacía.
func (v *View) SetPage(n int) State {
	v.mu.Lock()
	v.page = n
	st := v.stateLocked()
	v.mu.Unlock()

	v.notify(st)
	return st
}

func (v *View) Snapshot() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.stateLocked()
}

// Visible devuelve una copia de la lista derivada completa.
func (v *View) Visible() []Patient {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]Patient(nil), v.visible...)
}

// BeginSubmit evita altas duplicadas mientras una está en curso.
func (v *View) BeginSubmit() bool { return v.submitting.CompareAndSwap(false, true) }

func (v *View) EndSubmit() { v.submitting.Store(false) }

// ResetAfterCreate: tras un alta exitosa se limpian filtros y se vuelve a la página 1.
func (v *View) ResetAfterCreate() State {
	return v.ClearFilters()
}

// Close cancela búsquedas pendientes y fetches en curso. Idempotente.
func (v *View) Close() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	v.rosterFetch.abort()
	v.filterFetch.abort()
	v.mu.Unlock()

	v.searcher.Stop()
}

func (v *View) beginFetch(ctx context.Context, slot *fetchSlot) (context.Context, uint64, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return nil, 0, ErrViewClosed
	}
	slot.abort()
	ctx, cancel := context.WithCancel(ctx)
	slot.cancel = cancel
	return ctx, slot.gen, nil
}

// endFetchLocked descarta la respuesta si la vista se cerró o si hubo un fetch más nuevo del mismo tipo.
func (v *View) endFetchLocked(slot *fetchSlot, gen uint64) error {
	if v.closed {
		return ErrViewClosed
	}
	if gen != slot.gen {
		return ErrSuperseded
	}
	if slot.cancel != nil {
		slot.cancel()
		slot.cancel = nil
	}
	return nil
}

func (v *View) deriveLocked() {
	v.visible = Search(v.base, v.search)
}

func (v *View) stateLocked() State {
	w := Paginate(v.visible, v.page, v.opts.PerPage)
	cards := make([]Card, 0, len(w.Items))
	for _, p := range w.Items {
		cards = append(cards, Card{
			ID:         p.ID,
			FullName:   p.FullName,
			Age:        p.Age,
			Gender:     p.Gender,
			LastVisit:  p.LastVisit,
			DetailPath: v.opts.Navigate(p.ID),
		})
	}

	st := State{
		Search:     v.search,
		Typed:      v.typed,
		Filters:    v.filters,
		FilterURL:  FilterURL(v.opts.APIURL, v.page, v.opts.PerPage, v.filters),
		FilterMode: string(v.opts.FilterMode),
		Page:       v.page,
		PerPage:    v.opts.PerPage,
		TotalPages: w.TotalPages,
		Total:      w.Total,
		Cards:      cards,
		Loaded:     v.loaded,
		Searching:  v.searcher.Pending(),
	}
	if v.lastErr != nil {
		st.LastError = v.lastErr.Error()
	}
	return st
}

func (v *View) notify(st State) {
	if v.opts.OnChange != nil {
		v.opts.OnChange(st)
	}
}
