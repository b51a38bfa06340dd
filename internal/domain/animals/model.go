package animals

import (
	"time"

	"pet-care-portal/internal/schema"
)

type Animal struct {
	ID        string    `json:"id" validate:"uuid"`
	CreatedAt time.Time `json:"created_at"`
	ClientID  string    `json:"client_id" validate:"uuid"`
	Name      string    `json:"name" validate:"min=1"`
	Species   string    `json:"species" validate:"min=1"`
	Breed     *string   `json:"breed"`
	Sex       *string   `json:"sex" validate:"omitnil,oneof=male female unknown"`
	BirthDate *string   `json:"birth_date" validate:"omitnil,datetime=2006-01-02"` // YYYY-MM-DD
	PhotoURL  *string   `json:"photo_url" validate:"omitnil,url"`
	Notes     *string   `json:"notes"`
}

var (
	Schema = schema.New[Animal]("animal")

	// InsertSchema: client_id lo pone el handler con el usuario de la sesión.
	InsertSchema = Schema.Optional("id", "created_at", "client_id", "breed", "sex", "birth_date", "photo_url", "notes")

	UpdateSchema = Schema.Partial()
)

// immutable son los campos que un patch nunca pisa.
var immutable = []string{"id", "created_at", "client_id"}
