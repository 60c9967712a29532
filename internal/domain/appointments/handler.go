package appointments

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"clinic-desk/internal/domain/audit"
	"clinic-desk/internal/middleware"
	"clinic-desk/internal/platform/httpclient"
	"clinic-desk/internal/platform/logger"
	"clinic-desk/internal/platform/validation"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, auditSvc *audit.Service, log logger.Logger) {
	r.Post("/appointments", createAppointmentHandler(svc, auditSvc, log))
}

// createAppointmentHandler godoc
// @Summary Agregar cita médica
// @Description Valida el formulario, convierte fecha+hora locales a UTC y lo envía al backend. doctor_id sale de la sesión.
// @Tags appointments
// @Accept json
// @Produce json
// @Param payload body Form true "Formulario; duration por defecto 30"
// @Success 201 {object} Payload
// @Failure 400 {string} string "Completa todos los campos obligatorios"
// @Failure 502 {string} string "detalle del backend"
// @Router /appointments [post]
func createAppointmentHandler(svc *Service, auditSvc *audit.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var form Form
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		claims, _ := middleware.GetClaims(r.Context())
		p, err := svc.Create(r.Context(), claims, form)
		if ve, ok := validation.As(err); ok {
			http.Error(w, ve.Message, http.StatusBadRequest)
			return
		}

		subject := ""
		if err == nil {
			subject = strconv.Itoa(p.PatientID)
		}
		auditSvc.Record(r.Context(), audit.KindAppointment, claims.UserID, subject, err)

		if err != nil {
			log.Error("Error al crear la cita", map[string]any{"error": err})
			writeUpstreamError(w, err, "Error al crear la cita")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(p)
	}
}

// writeUpstreamError muestra el texto del backend como mensaje; si no hay, fallback.
func writeUpstreamError(w http.ResponseWriter, err error, fallback string) {
	msg := fallback
	status := http.StatusBadGateway

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
