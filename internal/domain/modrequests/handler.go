package modrequests

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pet-care-portal/internal/middleware"
	"pet-care-portal/internal/platform/respond"
)

// maxPhoto limita el upload de fotos (multipart).
const maxPhoto = 10 << 20

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/animals/{animalID}/modification-requests", createRequestHandler(svc))
	r.Get("/animals/{animalID}/modification-requests", listAnimalRequestsHandler(svc))
	r.Put("/modification-requests/{requestID}/photo", uploadPhotoHandler(svc))
}

// RegisterAdminRoutes se monta dentro del grupo /admin.
func RegisterAdminRoutes(r chi.Router, svc *Service) {
	r.Route("/modification-requests", func(mr chi.Router) {
		mr.Get("/", listRequestsHandler(svc))
		mr.Post("/{requestID}/approve", processHandler(svc, StatusApproved))
		mr.Post("/{requestID}/reject", processHandler(svc, StatusRejected))
	})
}

type createRequest struct {
	Changes json.RawMessage `json:"changes" swaggertype:"object"`
}

// createRequestHandler godoc
// @Summary Pedir cambios sobre un animal
// @Description El dueño propone cambios (patch de Animal). Quedan en `pending` hasta que un admin los procese.
// @Tags modification-requests
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param animalID path string true "ID del animal"
// @Param payload body createRequest true "Cambios propuestos"
// @Success 201 {object} ModificationRequest
// @Failure 403 {string} string "forbidden"
// @Failure 422 {object} respond.ValidationBody
// @Router /animals/{animalID}/modification-requests [post]
func createRequestHandler(svc *Service) http.HandlerFunc {
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

		// animal_id y client_id no los elige el cliente.
		payload["animal_id"] = chi.URLParam(r, "animalID")
		payload["client_id"] = uid

		in, err := InsertSchema.ParseValue(payload)
		if err != nil {
			if !respond.Validation(w, err) {
				http.Error(w, "invalid json", http.StatusBadRequest)
			}
			return
		}

		m, err := svc.Create(r.Context(), uid, in.Value.AnimalID, in.Value.Changes)
		if err != nil {
			writeError(w, err)
			return
		}
		respond.JSON(w, http.StatusCreated, m)
	}
}

// listAnimalRequestsHandler godoc
// @Summary Pedidos de cambio de un animal propio
// @Tags modification-requests
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param animalID path string true "ID del animal"
// @Success 200 {array} ModificationRequest
// @Router /animals/{animalID}/modification-requests [get]
func listAnimalRequestsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListForAnimal(r.Context(), uid, chi.URLParam(r, "animalID"))
		if err != nil {
			writeError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, items)
	}
}

// uploadPhotoHandler godoc
// @Summary Adjuntar foto a un pedido
// @Description Multipart con el campo `photo` (jpeg o png). Se guarda el original y una miniatura.
// @Tags modification-requests
// @Accept multipart/form-data
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param requestID path string true "ID del pedido"
// @Param photo formData file true "Imagen"
// @Success 200 {object} ModificationRequest
// @Failure 400 {string} string "invalid image"
// @Failure 409 {string} string "already processed"
// @Router /modification-requests/{requestID}/photo [put]
func uploadPhotoHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxPhoto)
		if err := r.ParseMultipartForm(maxPhoto); err != nil {
			http.Error(w, "invalid multipart form", http.StatusBadRequest)
			return
		}
		f, _, err := r.FormFile("photo")
		if err != nil {
			http.Error(w, "photo is required", http.StatusBadRequest)
			return
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			http.Error(w, "invalid photo", http.StatusBadRequest)
			return
		}

		m, err := svc.AttachPhoto(r.Context(), uid, chi.URLParam(r, "requestID"), data)
		if err != nil {
			writeError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, m)
	}
}

// listRequestsHandler godoc
// @Summary Listar pedidos de cambio (admin)
// @Tags admin
// @Produce json
// @Param status query string false "pending | approved | rejected"
// @Success 200 {array} ModificationRequest
// @Router /admin/modification-requests [get]
func listRequestsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var filter ListFilter
		if v := r.URL.Query().Get("status"); v != "" {
			st, ok := ParseStatus(v)
			if !ok {
				http.Error(w, "status must be pending, approved or rejected", http.StatusBadRequest)
				return
			}
			filter.Status = st
		}

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			writeError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, items)
	}
}

// processHandler godoc
// @Summary Aprobar / rechazar pedido (admin)
// @Description Solo pedidos `pending`. Aprobar aplica los cambios al animal.
// @Tags admin
// @Produce json
// @Param requestID path string true "ID del pedido"
// @Success 200 {object} ModificationRequest
// @Failure 409 {string} string "already processed"
// @Router /admin/modification-requests/{requestID}/approve [post]
// @Router /admin/modification-requests/{requestID}/reject [post]
func processHandler(svc *Service, to Status) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "requestID")

		var (
			m   ModificationRequest
			err error
		)
		if to == StatusApproved {
			m, err = svc.Approve(r.Context(), id)
		} else {
			m, err = svc.Reject(r.Context(), id)
		}
		if err != nil {
			writeError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, m)
	}
}

func writeError(w http.ResponseWriter, err error) {
	if respond.Validation(w, err) {
		return
	}
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, ErrBadState):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
