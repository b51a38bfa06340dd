package reviews

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pet-care-portal/internal/middleware"
	"pet-care-portal/internal/platform/respond"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/sessions/{sessionID}/review", submitHandler(svc))
	r.Get("/reviews", listVisibleHandler(svc))
}

// RegisterAdminRoutes se monta dentro del grupo /admin.
func RegisterAdminRoutes(r chi.Router, svc *Service) {
	r.Get("/reviews", listAllHandler(svc))
	r.Patch("/reviews/{reviewID}", updateHandler(svc))
}

// submitHandler godoc
// @Summary Dejar opinión de una consulta
// @Description Una opinión por consulta (409 si ya existe). Queda oculta hasta moderación.
// @Tags reviews
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param sessionID path string true "ID de la consulta"
// @Param payload body Review true "form_url"
// @Success 201 {object} Review
// @Failure 403 {string} string "forbidden"
// @Failure 409 {string} string "already reviewed"
// @Failure 422 {object} respond.ValidationBody
// @Router /sessions/{sessionID}/review [post]
func submitHandler(svc *Service) http.HandlerFunc {
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
		payload["client_id"] = uid

		in, err := InsertSchema.ParseValue(payload)
		if err != nil {
			if !respond.Validation(w, err) {
				http.Error(w, "invalid json", http.StatusBadRequest)
			}
			return
		}

		rv, err := svc.Submit(r.Context(), in.Value)
		if err != nil {
			writeError(w, err)
			return
		}
		respond.JSON(w, http.StatusCreated, rv)
	}
}

// listVisibleHandler godoc
// @Summary Opiniones publicadas
// @Description Público. Solo las marcadas visibles.
// @Tags reviews
// @Produce json
// @Success 200 {array} Review
// @Router /reviews [get]
func listVisibleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListVisible(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, items)
	}
}

// listAllHandler godoc
// @Summary Todas las opiniones (admin)
// @Tags admin
// @Produce json
// @Success 200 {array} Review
// @Router /admin/reviews [get]
func listAllHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, items)
	}
}

// updateHandler godoc
// @Summary Moderar opinión (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Param reviewID path string true "ID de la opinión"
// @Param payload body Review false "Campos a modificar, p.ej. is_visible"
// @Success 200 {object} Review
// @Failure 422 {object} respond.ValidationBody
// @Router /admin/reviews/{reviewID} [patch]
func updateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := respond.ReadBody(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		patch, err := UpdateSchema.Parse(body)
		if err != nil {
			if !respond.Validation(w, err) {
				http.Error(w, "invalid json", http.StatusBadRequest)
			}
			return
		}

		rv, err := svc.Update(r.Context(), chi.URLParam(r, "reviewID"), patch)
		if err != nil {
			writeError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, rv)
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
	case errors.Is(err, ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
