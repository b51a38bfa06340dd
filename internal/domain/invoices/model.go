package invoices

import (
	"time"

	"pet-care-portal/internal/schema"
)

type Invoice struct {
	ID         string    `json:"id" validate:"uuid"`
	CreatedAt  time.Time `json:"created_at"`
	ClientID   string    `json:"client_id" validate:"uuid"`
	SessionID  string    `json:"session_id" validate:"uuid"`
	Amount     float64   `json:"amount" validate:"gte=0"`
	IssuedAt   string    `json:"issued_at" validate:"datetime=2006-01-02"` // YYYY-MM-DD
	InvoiceURL *string   `json:"invoice_url" validate:"omitnil,url"`
}

var (
	Schema = schema.New[Invoice]("invoice")

	InsertSchema = Schema.Optional("id", "created_at")

	UpdateSchema = Schema.Partial()
)

type ListFilter struct {
	ClientID string
}
