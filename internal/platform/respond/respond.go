// Package respond junta los helpers de respuesta que antes estaban
// duplicados en cada módulo (writeJSON). Con más de dos módulos usándolos
// ya convenía extraerlos.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"pet-care-portal/internal/schema"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ValidationBody es la respuesta 422.
type ValidationBody struct {
	Error  string         `json:"error"`
	Schema string         `json:"schema"`
	Issues []schema.Issue `json:"issues"`
}

// Validation escribe 422 con los issues si err es un *schema.ValidationError.
// Devuelve false si no lo es (el caller decide el status).
func Validation(w http.ResponseWriter, err error) bool {
	var verr *schema.ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	JSON(w, http.StatusUnprocessableEntity, ValidationBody{
		Error:  "validation failed",
		Schema: verr.Schema,
		Issues: verr.Issues,
	})
	return true
}

// MaxBody limita los payloads JSON de formularios.
const MaxBody = 1 << 20

// ReadBody lee el body completo (limitado a MaxBody) para pasarlo a un schema.
func ReadBody(r *http.Request) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r.Body, MaxBody+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(b) > MaxBody {
		return nil, errors.New("body too large")
	}
	return b, nil
}
