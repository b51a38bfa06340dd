package questionnaires

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pet-care-portal/internal/middleware"
	"pet-care-portal/internal/platform/respond"
)

func RegisterRoutes(r chi.Router, svc *Service, admins middleware.AdminList) {
	r.Post("/sessions/{sessionID}/questionnaires", submitHandler(svc, admins))
	r.Get("/sessions/{sessionID}/questionnaires", listHandler(svc, admins))
}

// submitHandler godoc
// @Summary Responder cuestionario
// @Description `session_id` sale del path. El cliente de la consulta o un admin.
// @Tags questionnaires
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param sessionID path string true "ID de la consulta"
// @Param payload body Questionnaire true "type y answers"
// @Success 201 {object} Questionnaire
// @Failure 403 {string} string "forbidden"
// @Failure 422 {object} respond.ValidationBody
// @Router /sessions/{sessionID}/questionnaires [post]
func submitHandler(svc *Service, admins middleware.AdminList) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

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

		q, err := svc.Submit(r.Context(), uid, admins.Allows(uid), in.Value)
		if err != nil {
			writeError(w, err)
			return
		}
		respond.JSON(w, http.StatusCreated, q)
	}
}

// listHandler godoc
// @Summary Cuestionarios de una consulta
// @Tags questionnaires
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param sessionID path string true "ID de la consulta"
// @Success 200 {array} Questionnaire
// @Router /sessions/{sessionID}/questionnaires [get]
func listHandler(svc *Service, admins middleware.AdminList) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListBySession(r.Context(), uid, admins.Allows(uid), chi.URLParam(r, "sessionID"))
		if err != nil {
			writeError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, items)
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
