package reports

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pet-care-portal/internal/middleware"
	"pet-care-portal/internal/platform/respond"
)

func RegisterRoutes(r chi.Router, svc *Service, admins middleware.AdminList) {
	r.Get("/sessions/{sessionID}/report", getReportHandler(svc, admins))
}

// RegisterAdminRoutes se monta dentro del grupo /admin.
func RegisterAdminRoutes(r chi.Router, svc *Service) {
	r.Post("/sessions/{sessionID}/report", saveReportHandler(svc))
}

// getReportHandler godoc
// @Summary Ver informe de una consulta
// @Tags reports
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param sessionID path string true "ID de la consulta"
// @Success 200 {object} Report
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "not found"
// @Router /sessions/{sessionID}/report [get]
func getReportHandler(svc *Service, admins middleware.AdminList) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		rp, err := svc.GetForUser(r.Context(), uid, admins.Allows(uid), chi.URLParam(r, "sessionID"))
		if err != nil {
			writeError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, rp)
	}
}

// saveReportHandler godoc
// @Summary Guardar informe (admin)
// @Description Crea o reemplaza el informe de la consulta.
// @Tags admin
// @Accept json
// @Produce json
// @Param sessionID path string true "ID de la consulta"
// @Param payload body Report true "content y document_url opcional"
// @Success 200 {object} Report
// @Failure 422 {object} respond.ValidationBody
// @Router /admin/sessions/{sessionID}/report [post]
func saveReportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := respond.ReadBody(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		var payload map[string]any
		if err := json.Unmarshal(body, &payload); err != nil || payload == nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		payload["session_id"] = chi.URLParam(r, "sessionID")

		in, err := InsertSchema.ParseValue(payload)
		if err != nil {
			if !respond.Validation(w, err) {
				http.Error(w, "invalid json", http.StatusBadRequest)
			}
			return
		}

		rp, err := svc.Save(r.Context(), in.Value)
		if err != nil {
			writeError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, rp)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
