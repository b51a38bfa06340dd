package questionnaires

import (
	"encoding/json"
	"time"

	"pet-care-portal/internal/schema"
)

// Questionnaire guarda las respuestas de un formulario previo/posterior a
// una consulta. answers es libre (depende del tipo de formulario).
type Questionnaire struct {
	ID        string          `json:"id" validate:"uuid"`
	CreatedAt time.Time       `json:"created_at"`
	SessionID string          `json:"session_id" validate:"uuid"`
	Type      string          `json:"type" validate:"min=1"`
	Answers   json.RawMessage `json:"answers" swaggertype:"object"`
}

var (
	Schema = schema.New[Questionnaire]("questionnaire")

	InsertSchema = Schema.Optional("id", "created_at")

	UpdateSchema = Schema.Partial()
)
