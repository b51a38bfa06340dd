package sessions

import (
	"time"

	"pet-care-portal/internal/schema"
)

type Type string

const (
	TypeOsteopathy Type = "osteopathy"
	TypeNutrition  Type = "nutrition"
)

// Types es el orden en que se muestran en formularios.
var Types = []Type{TypeOsteopathy, TypeNutrition}

func ParseType(s string) (Type, bool) {
	for _, t := range Types {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// Session es una consulta (osteopatía o nutrición) de un animal.
type Session struct {
	ID        string    `json:"id" validate:"uuid"`
	CreatedAt time.Time `json:"created_at"`
	ClientID  string    `json:"client_id" validate:"uuid"`
	AnimalID  string    `json:"animal_id" validate:"uuid"`
	Type      Type      `json:"type" validate:"oneof=osteopathy nutrition"`
	Date      time.Time `json:"date"`
	Notes     *string   `json:"notes"`
}

var (
	Schema = schema.New[Session]("session")

	InsertSchema = Schema.Optional("id", "created_at", "notes")

	UpdateSchema = Schema.Partial()
)

type ListFilter struct {
	ClientID string // vacío = todos
}
