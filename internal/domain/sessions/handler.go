package sessions

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pet-care-portal/internal/middleware"
	"pet-care-portal/internal/platform/respond"
)

func RegisterRoutes(r chi.Router, svc *Service, admins middleware.AdminList) {
	r.Get("/sessions", listMySessionsHandler(svc))
	r.Get("/sessions/{sessionID}", getSessionHandler(svc, admins))
}

// RegisterAdminRoutes se monta dentro del grupo /admin.
func RegisterAdminRoutes(r chi.Router, svc *Service) {
	r.Route("/sessions", func(sr chi.Router) {
		sr.Post("/", createSessionHandler(svc))
		sr.Get("/", listSessionsHandler(svc))
		sr.Patch("/{sessionID}", updateSessionHandler(svc))
	})
}

// listMySessionsHandler godoc
// @Summary Listar mis consultas
// @Tags sessions
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} Session
// @Failure 401 {string} string "unauthorized"
// @Router /sessions [get]
func listMySessionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.List(r.Context(), ListFilter{ClientID: uid})
		if err != nil {
			writeError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, items)
	}
}

// getSessionHandler godoc
// @Summary Ver consulta
// @Description El cliente de la consulta o un admin.
// @Tags sessions
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param sessionID path string true "ID de la consulta"
// @Success 200 {object} Session
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "not found"
// @Router /sessions/{sessionID} [get]
func getSessionHandler(svc *Service, admins middleware.AdminList) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		s, err := svc.GetByID(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			writeError(w, err)
			return
		}
		if s.ClientID != uid && !admins.Allows(uid) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		respond.JSON(w, http.StatusOK, s)
	}
}

// createSessionHandler godoc
// @Summary Registrar consulta (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Param payload body Session true "Consulta; date en RFC3339, type osteopathy | nutrition"
// @Success 201 {object} Session
// @Failure 400 {string} string "invalid input"
// @Failure 422 {object} respond.ValidationBody
// @Router /admin/sessions [post]
func createSessionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := respond.ReadBody(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		in, err := InsertSchema.Parse(body)
		if err != nil {
			if !respond.Validation(w, err) {
				http.Error(w, "invalid json", http.StatusBadRequest)
			}
			return
		}

		s, err := svc.Create(r.Context(), in.Value)
		if err != nil {
			writeError(w, err)
			return
		}
		respond.JSON(w, http.StatusCreated, s)
	}
}

// listSessionsHandler godoc
// @Summary Listar consultas (admin)
// @Tags admin
// @Produce json
// @Param client_id query string false "Filtrar por cliente"
// @Success 200 {array} Session
// @Router /admin/sessions [get]
func listSessionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), ListFilter{ClientID: r.URL.Query().Get("client_id")})
		if err != nil {
			writeError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, items)
	}
}

// updateSessionHandler godoc
// @Summary Actualizar consulta (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Param sessionID path string true "ID de la consulta"
// @Param payload body Session false "Campos a modificar"
// @Success 200 {object} Session
// @Failure 422 {object} respond.ValidationBody
// @Router /admin/sessions/{sessionID} [patch]
func updateSessionHandler(svc *Service) http.HandlerFunc {
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

		s, err := svc.Update(r.Context(), chi.URLParam(r, "sessionID"), patch)
		if err != nil {
			writeError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, s)
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
