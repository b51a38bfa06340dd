package animals

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pet-care-portal/internal/middleware"
	"pet-care-portal/internal/platform/respond"
)

func RegisterRoutes(r chi.Router, svc *Service, admins middleware.AdminList) {
	r.Route("/animals", func(ar chi.Router) {
		ar.Post("/", createAnimalHandler(svc))
		ar.Get("/", listAnimalsHandler(svc))
		ar.Get("/{animalID}", getAnimalHandler(svc, admins))
	})
}

// RegisterAdminRoutes se monta dentro del grupo /admin.
func RegisterAdminRoutes(r chi.Router, svc *Service) {
	r.Get("/clients/{clientID}/animals", listClientAnimalsHandler(svc))
	r.Patch("/animals/{animalID}", adminUpdateAnimalHandler(svc))
}

// createAnimalHandler godoc
// @Summary Registrar animal
// @Description Registra un animal para el cliente de la sesión. `client_id` lo completa el servidor.
// @Tags animals
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body Animal true "Datos del animal; birth_date en formato YYYY-MM-DD"
// @Success 201 {object} Animal
// @Failure 401 {string} string "unauthorized"
// @Failure 422 {object} respond.ValidationBody
// @Router /animals [post]
func createAnimalHandler(svc *Service) http.HandlerFunc {
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
		in, err := InsertSchema.Parse(body)
		if err != nil {
			if !respond.Validation(w, err) {
				http.Error(w, "invalid json", http.StatusBadRequest)
			}
			return
		}

		a, err := svc.Create(r.Context(), uid, in.Value)
		if err != nil {
			writeError(w, err)
			return
		}
		respond.JSON(w, http.StatusCreated, a)
	}
}

// listAnimalsHandler godoc
// @Summary Listar mis animales
// @Tags animals
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} Animal
// @Failure 401 {string} string "unauthorized"
// @Router /animals [get]
func listAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByClient(r.Context(), uid)
		if err != nil {
			writeError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, items)
	}
}

// getAnimalHandler godoc
// @Summary Ver animal
// @Description El dueño o un admin.
// @Tags animals
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param animalID path string true "ID del animal"
// @Success 200 {object} Animal
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "not found"
// @Router /animals/{animalID} [get]
func getAnimalHandler(svc *Service, admins middleware.AdminList) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			writeError(w, err)
			return
		}

		// Admin bypass
		if a.ClientID != uid && !admins.Allows(uid) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		respond.JSON(w, http.StatusOK, a)
	}
}

// listClientAnimalsHandler godoc
// @Summary Animales de un cliente (admin)
// @Tags admin
// @Produce json
// @Param clientID path string true "ID del cliente"
// @Success 200 {array} Animal
// @Router /admin/clients/{clientID}/animals [get]
func listClientAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByClient(r.Context(), chi.URLParam(r, "clientID"))
		if err != nil {
			writeError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, items)
	}
}

// adminUpdateAnimalHandler godoc
// @Summary Actualizar animal (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param payload body Animal false "Campos a modificar"
// @Success 200 {object} Animal
// @Failure 422 {object} respond.ValidationBody
// @Router /admin/animals/{animalID} [patch]
func adminUpdateAnimalHandler(svc *Service) http.HandlerFunc {
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

		a, err := svc.Update(r.Context(), chi.URLParam(r, "animalID"), patch)
		if err != nil {
			writeError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, a)
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
