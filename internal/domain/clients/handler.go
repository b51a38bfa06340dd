package clients

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"pet-care-portal/internal/middleware"
	"pet-care-portal/internal/platform/classnames"
	"pet-care-portal/internal/platform/respond"
)

// RegisterRoutes monta el perfil propio (/me/client).
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/me/client", getSelfHandler(svc))
	r.Patch("/me/client", updateSelfHandler(svc))
}

// RegisterAdminRoutes monta la gestión de clientes. Se cuelga de un grupo
// que ya pasó por middleware.RequireAdmin.
func RegisterAdminRoutes(r chi.Router, svc *Service) {
	r.Route("/clients", func(cr chi.Router) {
		cr.Get("/", listClientsHandler(svc))
		cr.Post("/", createClientHandler(svc))
		cr.Get("/{clientID}", getClientHandler(svc))
		cr.Patch("/{clientID}", updateClientHandler(svc))
		cr.Post("/{clientID}/archive", archiveHandler(svc, true))
		cr.Post("/{clientID}/unarchive", archiveHandler(svc, false))
	})
}

type clientResponse struct {
	Client
	BadgeClass string `json:"badge_class"`
}

const badgeBase = "inline-flex items-center rounded-full px-2 py-0.5 text-xs font-medium bg-muted text-foreground"

func toClientResponse(c Client) clientResponse {
	var color string
	if c.Color != nil && *c.Color != "" {
		color = "bg-" + *c.Color
	}
	return clientResponse{
		Client: c,
		BadgeClass: classnames.Merge(badgeBase, color, map[string]bool{
			"opacity-50":      c.IsArchived,
			"border-accent":   c.IsAdmin,
			"border":          c.IsAdmin,
			"text-background": color != "",
		}),
	}
}

// getSelfHandler godoc
// @Summary Ver mi ficha de cliente
// @Description Devuelve la ficha del cliente asociada al usuario de la sesión. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags clients
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} clientResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "not found"
// @Router /me/client [get]
func getSelfHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		c, err := svc.GetByID(r.Context(), uid)
		if err != nil {
			writeError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, toClientResponse(c))
	}
}

// updateSelfHandler godoc
// @Summary Actualizar mi ficha
// @Description Patch parcial de la ficha propia. `is_admin` e `is_archived` no se pueden cambiar (403).
// @Tags clients
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body Client false "Campos a modificar"
// @Success 200 {object} clientResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 422 {object} respond.ValidationBody
// @Router /me/client [patch]
func updateSelfHandler(svc *Service) http.HandlerFunc {
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
		patch, err := UpdateSchema.Parse(body)
		if err != nil {
			if !respond.Validation(w, err) {
				http.Error(w, "invalid json", http.StatusBadRequest)
			}
			return
		}

		c, err := svc.UpdateSelf(r.Context(), uid, patch)
		if err != nil {
			writeError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, toClientResponse(c))
	}
}

// listClientsHandler godoc
// @Summary Listar clientes (admin)
// @Tags admin
// @Produce json
// @Param archived query bool false "true = solo archivados, false = solo activos; vacío = todos"
// @Success 200 {array} clientResponse
// @Failure 307 {string} string "redirect a /"
// @Router /admin/clients [get]
func listClientsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var filter ListFilter
		if v := r.URL.Query().Get("archived"); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				http.Error(w, "archived must be true or false", http.StatusBadRequest)
				return
			}
			filter.Archived = &b
		}

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]clientResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toClientResponse(c))
		}
		respond.JSON(w, http.StatusOK, out)
	}
}

// createClientHandler godoc
// @Summary Crear cliente (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Param payload body Client true "Cliente; id y timestamps opcionales"
// @Success 201 {object} clientResponse
// @Failure 422 {object} respond.ValidationBody
// @Router /admin/clients [post]
func createClientHandler(svc *Service) http.HandlerFunc {
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

		c, err := svc.Create(r.Context(), in.Value)
		if err != nil {
			writeError(w, err)
			return
		}
		respond.JSON(w, http.StatusCreated, toClientResponse(c))
	}
}

// getClientHandler godoc
// @Summary Ver cliente (admin)
// @Tags admin
// @Produce json
// @Param clientID path string true "ID del cliente"
// @Success 200 {object} clientResponse
// @Failure 404 {string} string "not found"
// @Router /admin/clients/{clientID} [get]
func getClientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.GetByID(r.Context(), chi.URLParam(r, "clientID"))
		if err != nil {
			writeError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, toClientResponse(c))
	}
}

// updateClientHandler godoc
// @Summary Actualizar cliente (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Param clientID path string true "ID del cliente"
// @Param payload body Client false "Campos a modificar"
// @Success 200 {object} clientResponse
// @Failure 422 {object} respond.ValidationBody
// @Router /admin/clients/{clientID} [patch]
func updateClientHandler(svc *Service) http.HandlerFunc {
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

		c, err := svc.Update(r.Context(), chi.URLParam(r, "clientID"), patch)
		if err != nil {
			writeError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, toClientResponse(c))
	}
}

// archiveHandler godoc
// @Summary Archivar / desarchivar cliente (admin)
// @Description Idempotente.
// @Tags admin
// @Produce json
// @Param clientID path string true "ID del cliente"
// @Success 200 {object} clientResponse
// @Router /admin/clients/{clientID}/archive [post]
// @Router /admin/clients/{clientID}/unarchive [post]
func archiveHandler(svc *Service, archived bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "clientID")

		var (
			c   Client
			err error
		)
		if archived {
			c, err = svc.Archive(r.Context(), id)
		} else {
			c, err = svc.Unarchive(r.Context(), id)
		}
		if err != nil {
			writeError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, toClientResponse(c))
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrForbidden):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
