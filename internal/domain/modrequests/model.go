package modrequests

import (
	"encoding/json"
	"time"

	"pet-care-portal/internal/schema"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ModificationRequest es un pedido de cambio sobre la ficha de un animal.
// changes es un patch de Animal; se aplica recién cuando un admin aprueba.
type ModificationRequest struct {
	ID          string          `json:"id" validate:"uuid"`
	AnimalID    string          `json:"animal_id" validate:"uuid"`
	ClientID    string          `json:"client_id" validate:"uuid"`
	Changes     json.RawMessage `json:"changes" swaggertype:"object"`
	Status      Status          `json:"status" validate:"oneof=pending approved rejected"`
	PhotoURL    *string         `json:"photo_url" validate:"omitnil,url"`
	CreatedAt   time.Time       `json:"created_at"`
	ProcessedAt *time.Time      `json:"processed_at"`
}

var (
	Schema = schema.New[ModificationRequest]("animal_modification_request")

	InsertSchema = Schema.Optional("id", "status", "photo_url", "created_at", "processed_at")

	UpdateSchema = Schema.Partial()
)

type ListFilter struct {
	AnimalID string
	Status   Status // vacío = todos
}

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return Status(s), true
	default:
		return "", false
	}
}
