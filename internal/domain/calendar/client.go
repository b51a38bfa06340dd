package calendar

import (
	"context"
	"net/http"

	"pet-care-portal/internal/platform/httpclient"
)

// FetchEvents pide las agendas al backend del portal. Si el envelope viene
// con success=false el error es *httpclient.EnvelopeError con el mensaje
// del backend.
func FetchEvents(ctx context.Context, c *httpclient.Client) ([]Agenda, error) {
	return httpclient.FetchEnvelope[[]Agenda](ctx, c, http.MethodGet, EventsPath, DataKey)
}
