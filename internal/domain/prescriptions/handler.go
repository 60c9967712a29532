package prescriptions

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

const msgEmailSent = "Correo enviado con la receta"

func RegisterRoutes(r chi.Router, svc *Service, auditSvc *audit.Service, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}
	r.Route("/prescriptions", func(r chi.Router) {
		r.Post("/", createPrescriptionHandler(svc, auditSvc, log))
		r.Post("/print", printPrescriptionHandler(svc))
		r.Post("/send", sendPrescriptionHandler(svc, auditSvc, log))
	})
}

type createResponse struct {
	Summary Summary `json:"summary"`
	Text    string  `json:"text"`
}

type sendRequest struct {
	To      string  `json:"to"`
	Summary Summary `json:"summary"`
}

// createPrescriptionHandler godoc
// @Summary Agregar receta médica
// @Description Valida los medicamentos, firma con el nombre del médico en sesión y devuelve el resumen imprimible.
// @Tags prescriptions
// @Accept json
// @Produce json
// @Param payload body Form true "Receta con al menos un medicamento"
// @Success 201 {object} createResponse
// @Failure 400 {string} string "Por favor complete todos los campos requeridos en cada medicamento"
// @Failure 502 {string} string "detalle del backend"
// @Router /prescriptions [post]
func createPrescriptionHandler(svc *Service, auditSvc *audit.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var form Form
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		claims, _ := middleware.GetClaims(r.Context())
		sum, err := svc.Create(r.Context(), claims, form)
		if ve, ok := validation.As(err); ok {
			http.Error(w, ve.Message, http.StatusBadRequest)
			return
		}

		subject := form.PatientID.String()
		if err == nil && sum.PrescriptionID != 0 {
			subject = strconv.Itoa(sum.PrescriptionID)
		}
		auditSvc.Record(r.Context(), audit.KindPrescription, claims.UserID, subject, err)

		if err != nil {
			log.Error("Error al crear la receta", map[string]any{"error": err})
			writeUpstreamError(w, err, "Error al crear la receta")
			return
		}

		text, err := svc.Print(sum)
		if err != nil {
			log.Error("no se pudo renderizar la receta", map[string]any{"error": err})
		}
		writeJSON(w, http.StatusCreated, createResponse{Summary: sum, Text: text})
	}
}

// printPrescriptionHandler godoc
// @Summary Imprimir receta
// @Tags prescriptions
// @Accept json
// @Produce plain
// @Param payload body Summary true "Resumen devuelto por POST /prescriptions"
// @Success 200 {string} string
// @Router /prescriptions/print [post]
func printPrescriptionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sum Summary
		if err := json.NewDecoder(r.Body).Decode(&sum); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		text, err := svc.Print(sum)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(text))
	}
}

// sendPrescriptionHandler godoc
// @Summary Enviar receta por correo
// @Tags prescriptions
// @Accept json
// @Produce json
// @Param payload body sendRequest true "Destinatario y resumen"
// @Success 202 {object} map[string]string
// @Failure 400 {string} string
// @Failure 503 {string} string "correo no configurado"
// @Router /prescriptions/send [post]
func sendPrescriptionHandler(svc *Service, auditSvc *audit.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sendRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		claims, _ := middleware.GetClaims(r.Context())
		err := svc.Send(r.Context(), req.To, req.Summary)
		if ve, ok := validation.As(err); ok {
			http.Error(w, ve.Message, http.StatusBadRequest)
			return
		}
		if errors.Is(err, ErrMailerNotConfigured) {
			http.Error(w, "correo no configurado", http.StatusServiceUnavailable)
			return
		}

		auditSvc.Record(r.Context(), audit.KindEmail, claims.UserID, req.To, err)
		if err != nil {
			log.Error("no se pudo enviar la receta", map[string]any{"error": err})
			http.Error(w, "No se pudo enviar el correo", http.StatusBadGateway)
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]string{"message": msgEmailSent})
	}
}

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

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
