package audit

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/audit", listAuditHandler(svc))
}

type entryResponse struct {
	ID         string    `json:"id"`
	Kind       Kind      `json:"kind"`
	ActorID    string    `json:"actor_id"`
	Subject    string    `json:"subject"`
	Outcome    Outcome   `json:"outcome"`
	Detail     string    `json:"detail,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// listAuditHandler godoc
// @Summary Últimos envíos registrados
// @Tags audit
// @Produce json
// @Param kind query string false "patient|appointment|prescription|prescription_email"
// @Param limit query int false "Máximo 200"
// @Success 200 {array} entryResponse
// @Router /audit [get]
func listAuditHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := ListFilter{Kind: Kind(q.Get("kind"))}
		if s := q.Get("limit"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 {
				http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
				return
			}
			filter.Limit = n
		}

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]entryResponse, 0, len(items))
		for _, e := range items {
			out = append(out, entryResponse(e))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(out)
	}
}
