package calendar

import (
	"context"
	"time"
)

// Source lee eventos de un calendario externo (Google Calendar en producción).
type Source interface {
	Events(ctx context.Context, calendarID string, from, to time.Time) ([]Event, error)
}
