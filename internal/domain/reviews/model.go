package reviews

import (
	"time"

	"pet-care-portal/internal/schema"
)

// Review es el link al formulario de opinión de una consulta. Se publica
// recién cuando un admin la marca visible.
type Review struct {
	ID        string    `json:"id" validate:"uuid"`
	CreatedAt time.Time `json:"created_at"`
	ClientID  string    `json:"client_id" validate:"uuid"`
	SessionID string    `json:"session_id" validate:"uuid"`
	IsVisible bool      `json:"is_visible"`
	FormURL   string    `json:"form_url" validate:"url"`
}

var (
	Schema = schema.New[Review]("review")

	InsertSchema = Schema.Optional("id", "created_at", "is_visible")

	UpdateSchema = Schema.Partial()
)

type ListFilter struct {
	OnlyVisible bool
}
