package patients

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"clinic-desk/internal/domain/audit"
	"clinic-desk/internal/middleware"
	"clinic-desk/internal/platform/httpclient"
	"clinic-desk/internal/platform/validation"

	"github.com/go-chi/chi/v5"
)

// Deps agrupa lo que necesitan las rutas de pacientes.
type Deps struct {
	Service *Service
	Views   *Registry
	// ViewOptions es la plantilla con la que se monta cada vista.
	ViewOptions ViewOptions
	Audit       *audit.Service
}

func RegisterRoutes(r chi.Router, d Deps) {
	r.Route("/patients", func(pr chi.Router) {
		pr.Get("/", listPatientsHandler(d))
		pr.Post("/", createPatientHandler(d))
		pr.Get("/options", patientOptionsHandler(d))
	})

	r.Route("/patient-views", func(vr chi.Router) {
		vr.Post("/", mountViewHandler(d))

		vr.Route("/{viewID}", func(one chi.Router) {
			one.Get("/", getViewHandler(d))
			one.Delete("/", unmountViewHandler(d))
			one.Put("/search", searchViewHandler(d))
			one.Put("/filters", applyFiltersHandler(d))
			one.Delete("/filters", clearFiltersHandler(d))
			one.Put("/page", setPageHandler(d))
			one.Post("/reload", reloadViewHandler(d))
			one.Post("/patients", createFromViewHandler(d))
		})
	})
}

type pageResponse struct {
	Page       int    `json:"page"`
	PerPage    int    `json:"per_page"`
	Total      int    `json:"total"`
	TotalPages int    `json:"total_pages"`
	Cards      []Card `json:"cards"`
}

type viewResponse struct {
	ID    string `json:"id"`
	State State  `json:"state"`
}

type searchRequest struct {
	Text string `json:"text"`
}

type pageRequest struct {
	Page int `json:"page"`
}

type patientResponse struct {
	ID        int    `json:"id"`
	FullName  string `json:"full_name"`
	Age       int    `json:"age"`
	Gender    Gender `json:"gender"`
	LastVisit string `json:"last_visit"`
}

type createFromViewResponse struct {
	Patient patientResponse `json:"patient"`
	State   State           `json:"state"`
}

// listPatientsHandler godoc
// @Summary Buscar y paginar pacientes (sin estado)
// @Description Trae el roster completo, aplica la búsqueda libre `q` (nombre o id) y devuelve la página pedida.
// @Tags patients
// @Produce json
// @Param q query string false "Texto libre"
// @Param page query int false "Página (1..n)"
// @Success 200 {object} pageResponse
// @Failure 502 {string} string "Error al cargar pacientes"
// @Router /patients [get]
func listPatientsHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := 1
		if s := r.URL.Query().Get("page"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 {
				http.Error(w, "page must be >= 1", http.StatusBadRequest)
				return
			}
			page = n
		}

		roster, err := d.Service.Roster(r.Context())
		if err != nil {
			writeError(w, err, "Error al cargar pacientes")
			return
		}

		win := Paginate(Search(roster, r.URL.Query().Get("q")), page, d.ViewOptions.PerPage)
		nav := d.ViewOptions.Navigate
		if nav == nil {
			nav = DetailPath
		}
		cards := make([]Card, 0, len(win.Items))
		for _, p := range win.Items {
			cards = append(cards, Card{
				ID: p.ID, FullName: p.FullName, Age: p.Age, Gender: p.Gender,
				LastVisit: p.LastVisit, DetailPath: nav(p.ID),
			})
		}
		writeJSON(w, http.StatusOK, pageResponse{
			Page: win.Page, PerPage: win.PerPage, Total: win.Total, TotalPages: win.TotalPages, Cards: cards,
		})
	}
}

// patientOptionsHandler godoc
// @Summary Pacientes para el selector de los formularios
// @Tags patients
// @Produce json
// @Success 200 {array} Option
// @Failure 502 {string} string "Error al cargar la lista de pacientes"
// @Router /patients/options [get]
func patientOptionsHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := d.Service.Options(r.Context())
		if err != nil {
			writeError(w, err, "Error al cargar la lista de pacientes")
			return
		}
		writeJSON(w, http.StatusOK, opts)
	}
}

// createPatientHandler godoc
// @Summary Registrar paciente
// @Tags patients
// @Accept json
// @Produce json
// @Param payload body NewPatient true "Datos del paciente; gender M o F"
// @Success 201 {object} patientResponse
// @Failure 400 {string} string "validación"
// @Failure 502 {string} string "Hubo un error al guardar"
// @Router /patients [post]
func createPatientHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req NewPatient
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := register(r.Context(), d, req)
		if err != nil {
			writeError(w, err, "Hubo un error al guardar")
			return
		}
		writeJSON(w, http.StatusCreated, toPatientResponse(p))
	}
}

// mountViewHandler godoc
// @Summary Montar una vista de lista de pacientes
// @Description Crea el estado de la pantalla y carga el roster una sola vez. Si la carga falla la vista queda montada, vacía, con last_error.
// @Tags patient-views
// @Produce json
// @Success 201 {object} viewResponse
// @Router /patient-views [post]
func mountViewHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v := NewView(d.Service, d.ViewOptions)
		id := d.Views.Add(v)

		// el error queda en State.LastError; la pantalla sigue usable
		_ = v.LoadRoster(r.Context())

		writeJSON(w, http.StatusCreated, viewResponse{ID: id, State: v.Snapshot()})
	}
}

func getViewHandler(d Deps) http.HandlerFunc {
	return withView(d, func(w http.ResponseWriter, r *http.Request, id string, v *View) {
		writeJSON(w, http.StatusOK, viewResponse{ID: id, State: v.Snapshot()})
	})
}

func unmountViewHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !d.Views.Remove(chi.URLParam(r, "viewID")) {
			http.Error(w, "view not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// searchViewHandler godoc
// @Summary Búsqueda libre (debounced)
// @Description Se aplica tras el delay de debounce sin nuevas llamadas; la última gana. Responde 202 con el estado previo.
// @Tags patient-views
// @Accept json
// @Produce json
// @Param viewID path string true "ID de la vista"
// @Param payload body searchRequest true "Texto"
// @Success 202 {object} viewResponse
// @Failure 404 {string} string "view not found"
// @Router /patient-views/{viewID}/search [put]
func searchViewHandler(d Deps) http.HandlerFunc {
	return withView(d, func(w http.ResponseWriter, r *http.Request, id string, v *View) {
		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		v.ApplySearch(req.Text)
		writeJSON(w, http.StatusAccepted, viewResponse{ID: id, State: v.Snapshot()})
	})
}

func applyFiltersHandler(d Deps) http.HandlerFunc {
	return withView(d, func(w http.ResponseWriter, r *http.Request, id string, v *View) {
		var req Filters
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		st, err := v.ApplyFilters(r.Context(), req)
		if err != nil {
			writeError(w, err, "Error al cargar pacientes")
			return
		}
		writeJSON(w, http.StatusOK, viewResponse{ID: id, State: st})
	})
}

func clearFiltersHandler(d Deps) http.HandlerFunc {
	return withView(d, func(w http.ResponseWriter, r *http.Request, id string, v *View) {
		writeJSON(w, http.StatusOK, viewResponse{ID: id, State: v.ClearFilters()})
	})
}

func setPageHandler(d Deps) http.HandlerFunc {
	return withView(d, func(w http.ResponseWriter, r *http.Request, id string, v *View) {
		var req pageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.Page < 1 {
			http.Error(w, "page must be >= 1", http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, viewResponse{ID: id, State: v.SetPage(req.Page)})
	})
}

func reloadViewHandler(d Deps) http.HandlerFunc {
	return withView(d, func(w http.ResponseWriter, r *http.Request, id string, v *View) {
		if err := v.LoadRoster(r.Context()); err != nil {
			writeError(w, err, "Error al cargar pacientes")
			return
		}
		writeJSON(w, http.StatusOK, viewResponse{ID: id, State: v.Snapshot()})
	})
}

// createFromViewHandler registra un paciente desde la pantalla montada:
// rechaza envíos mientras otro está en curso y, si sale bien, limpia filtros
// y vuelve a la página 1 (el roster no se recarga solo).
func createFromViewHandler(d Deps) http.HandlerFunc {
	return withView(d, func(w http.ResponseWriter, r *http.Request, id string, v *View) {
		var req NewPatient
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if !v.BeginSubmit() {
			http.Error(w, "registro en curso", http.StatusConflict)
			return
		}
		defer v.EndSubmit()

		p, err := register(r.Context(), d, req)
		if err != nil {
			writeError(w, err, "Hubo un error al guardar")
			return
		}
		writeJSON(w, http.StatusCreated, createFromViewResponse{
			Patient: toPatientResponse(p),
			State:   v.ResetAfterCreate(),
		})
	})
}

func register(ctx context.Context, d Deps, req NewPatient) (Patient, error) {
	p, err := d.Service.Register(ctx, req)

	actor := ""
	if claims, ok := middleware.GetClaims(ctx); ok {
		actor = claims.UserID
	}
	if _, isValidation := validation.As(err); !isValidation {
		subject := ""
		if err == nil {
			subject = strconv.Itoa(p.ID)
		}
		d.Audit.Record(ctx, audit.KindPatient, actor, subject, err)
	}
	return p, err
}

func withView(d Deps, h func(http.ResponseWriter, *http.Request, string, *View)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "viewID"))
		v, ok := d.Views.Get(id)
		if !ok {
			http.Error(w, "view not found", http.StatusNotFound)
			return
		}
		h(w, r, id, v)
	}
}

func toPatientResponse(p Patient) patientResponse {
	return patientResponse{
		ID:        p.ID,
		FullName:  p.FullName,
		Age:       p.Age,
		Gender:    p.Gender,
		LastVisit: p.LastVisit,
	}
}

// writeError traduce errores a status. Los del backend salen como 502 con su texto.
func writeError(w http.ResponseWriter, err error, generic string) {
	if ve, ok := validation.As(err); ok {
		http.Error(w, ve.Message, http.StatusBadRequest)
		return
	}
	switch {
	case errors.Is(err, ErrViewClosed):
		http.Error(w, "view closed", http.StatusGone)
		return
	case errors.Is(err, ErrSuperseded):
		http.Error(w, "superseded", http.StatusConflict)
		return
	}
	// generic si el backend no mandó texto o no respondió
	msg, status := generic, http.StatusBadGateway
	var he *httpclient.HTTPError
	if errors.As(err, &he) {
		if he.Body != "" {
			msg = he.Body
		}
		if he.StatusCode == http.StatusUnauthorized || he.StatusCode == http.StatusForbidden {
			status = he.StatusCode
		}
	}
	http.Error(w, msg, status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
