package invoices

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pet-care-portal/internal/middleware"
	"pet-care-portal/internal/platform/respond"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/invoices", listMyInvoicesHandler(svc))
}

// RegisterAdminRoutes se monta dentro del grupo /admin.
func RegisterAdminRoutes(r chi.Router, svc *Service) {
	r.Post("/invoices", createInvoiceHandler(svc))
	r.Get("/invoices", listInvoicesHandler(svc))
}

// listMyInvoicesHandler godoc
// @Summary Listar mis facturas
// @Tags invoices
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} Invoice
// @Failure 401 {string} string "unauthorized"
// @Router /invoices [get]
func listMyInvoicesHandler(svc *Service) http.HandlerFunc {
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

// createInvoiceHandler godoc
// @Summary Emitir factura (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Param payload body Invoice true "Factura; issued_at en formato YYYY-MM-DD"
// @Success 201 {object} Invoice
// @Failure 400 {string} string "invalid input"
// @Failure 422 {object} respond.ValidationBody
// @Router /admin/invoices [post]
func createInvoiceHandler(svc *Service) http.HandlerFunc {
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

		inv, err := svc.Create(r.Context(), in.Value)
		if err != nil {
			writeError(w, err)
			return
		}
		respond.JSON(w, http.StatusCreated, inv)
	}
}

// listInvoicesHandler godoc
// @Summary Listar facturas (admin)
// @Tags admin
// @Produce json
// @Param client_id query string false "Filtrar por cliente"
// @Success 200 {array} Invoice
// @Router /admin/invoices [get]
func listInvoicesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), ListFilter{ClientID: r.URL.Query().Get("client_id")})
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
	case errors.Is(err, ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
