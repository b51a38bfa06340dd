package reports

import (
	"time"

	"pet-care-portal/internal/schema"
)

// Report es el informe que el profesional deja después de la consulta.
type Report struct {
	ID          string    `json:"id" validate:"uuid"`
	CreatedAt   time.Time `json:"created_at"`
	SessionID   string    `json:"session_id" validate:"uuid"`
	Content     string    `json:"content"`
	DocumentURL *string   `json:"document_url" validate:"omitnil,url"`
}

var (
	Schema = schema.New[Report]("report")

	InsertSchema = Schema.Optional("id", "created_at", "document_url")

	UpdateSchema = Schema.Partial()
)
