package documents

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"pet-care-portal/internal/middleware"
	"pet-care-portal/internal/platform/respond"
)

// maxUpload limita el tamaño de un documento.
const maxUpload = 25 << 20

func RegisterRoutes(r chi.Router, svc *Service, admins middleware.AdminList) {
	r.Route("/documents", func(dr chi.Router) {
		dr.Post("/", uploadHandler(svc))
		dr.Get("/", listHandler(svc))
		dr.Get("/{documentID}/download", downloadHandler(svc, admins))
		dr.Delete("/{documentID}", deleteHandler(svc, admins))
	})
}

// RegisterAdminRoutes se monta dentro del grupo /admin.
func RegisterAdminRoutes(r chi.Router, svc *Service) {
	r.Get("/clients/{clientID}/documents", adminListHandler(svc))
}

// uploadHandler godoc
// @Summary Subir documento
// @Description Multipart con `file` y opcionalmente `animal_id`.
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param file formData file true "Archivo"
// @Param animal_id formData string false "Animal asociado"
// @Success 201 {object} Document
// @Failure 400 {string} string "invalid input"
// @Router /documents [post]
func uploadHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUpload)
		if err := r.ParseMultipartForm(maxUpload); err != nil {
			http.Error(w, "invalid multipart form", http.StatusBadRequest)
			return
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file is required", http.StatusBadRequest)
			return
		}
		defer f.Close()

		in := UploadInput{
			ClientID:    uid,
			Name:        hdr.Filename,
			ContentType: hdr.Header.Get("Content-Type"),
			Size:        hdr.Size,
		}
		if v := strings.TrimSpace(r.FormValue("animal_id")); v != "" {
			in.AnimalID = &v
		}

		d, err := svc.Upload(r.Context(), in, f)
		if err != nil {
			writeError(w, err)
			return
		}
		respond.JSON(w, http.StatusCreated, d)
	}
}

// listHandler godoc
// @Summary Listar mis documentos
// @Tags documents
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} Document
// @Router /documents [get]
func listHandler(svc *Service) http.HandlerFunc {
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

// downloadHandler godoc
// @Summary Descargar documento
// @Description Redirige (302) a una URL firmada válida 15 minutos.
// @Tags documents
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param documentID path string true "ID del documento"
// @Success 302 {string} string "redirect"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "not found"
// @Router /documents/{documentID}/download [get]
func downloadHandler(svc *Service, admins middleware.AdminList) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		url, err := svc.DownloadURL(r.Context(), uid, admins.Allows(uid), chi.URLParam(r, "documentID"))
		if err != nil {
			writeError(w, err)
			return
		}
		http.Redirect(w, r, url, http.StatusFound)
	}
}

// deleteHandler godoc
// @Summary Borrar documento
// @Tags documents
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param documentID path string true "ID del documento"
// @Success 204
// @Failure 403 {string} string "forbidden"
// @Router /documents/{documentID} [delete]
func deleteHandler(svc *Service, admins middleware.AdminList) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), uid, admins.Allows(uid), chi.URLParam(r, "documentID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// adminListHandler godoc
// @Summary Documentos de un cliente (admin)
// @Tags admin
// @Produce json
// @Param clientID path string true "ID del cliente"
// @Success 200 {array} Document
// @Router /admin/clients/{clientID}/documents [get]
func adminListHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByClient(r.Context(), chi.URLParam(r, "clientID"))
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
