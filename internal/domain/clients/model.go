package clients

import (
	"time"

	"pet-care-portal/internal/schema"
)

// Client es la ficha del cliente de la consulta. El id coincide con el id
// del usuario en el auth hosteado.
type Client struct {
	ID         string    `json:"id" validate:"uuid"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email" validate:"email"`
	Phone      *string   `json:"phone"`
	Address    *string   `json:"address"`
	IsAdmin    bool      `json:"is_admin"`
	IsArchived bool      `json:"is_archived"`
	Color      *string   `json:"color"` // color preferido para badges, p.ej. "sage"
}

var (
	Schema = schema.New[Client]("client")

	// InsertSchema: id, timestamps y flags los completa el servidor.
	InsertSchema = Schema.Optional("id", "created_at", "updated_at", "is_admin", "is_archived")

	// UpdateSchema: patch parcial.
	UpdateSchema = Schema.Partial()
)

// selfLocked son los campos que un cliente no puede tocar de su propia ficha.
var selfLocked = []string{"id", "created_at", "updated_at", "is_admin", "is_archived"}

type ListFilter struct {
	Archived *bool
}
