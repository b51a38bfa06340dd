package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"
)

var (
	ErrInvalidRange = errors.New("invalid range")
	ErrNoCalendars  = errors.New("no calendars configured")
)

type Service struct {
	source    Source
	calendars []Calendar
	pool      pond.ResultPool[Agenda]
	now       func() time.Time
}

// NewService arma el pool compartido de workers. Close lo libera.
func NewService(source Source, calendars []Calendar, workers int) *Service {
	if workers <= 0 {
		workers = 1
	}
	return &Service{
		source:    source,
		calendars: calendars,
		pool:      pond.NewResultPool[Agenda](workers),
		now:       time.Now,
	}
}

// DefaultRange es hoy (UTC, desde las 00:00) + DefaultWindow.
func (s *Service) DefaultRange() Range {
	y, m, d := s.now().UTC().Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return Range{From: from, To: from.Add(DefaultWindow)}
}

// Agendas consulta todos los calendarios en paralelo. Si uno falla se
// devuelve ese error y no se esperan resultados parciales.
// El orden del resultado es el de la configuración.
func (s *Service) Agendas(ctx context.Context, rng Range) ([]Agenda, error) {
	if rng.From.IsZero() || rng.To.IsZero() || !rng.To.After(rng.From) {
		return nil, ErrInvalidRange
	}
	if len(s.calendars) == 0 {
		return nil, ErrNoCalendars
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	group := s.pool.NewGroupContext(ctx)
	for _, cal := range s.calendars {
		group.SubmitErr(func() (Agenda, error) {
			events, err := s.source.Events(ctx, cal.ID, rng.From, rng.To)
			if err != nil {
				// corta los requests que siguen en vuelo
				cancel()
				return Agenda{}, fmt.Errorf("calendar %s: %w", cal.Name, err)
			}
			if events == nil {
				events = []Event{}
			}
			return Agenda{ID: cal.ID, Name: cal.Name, Events: events}, nil
		})
	}

	agendas, err := group.Wait()
	if err != nil {
		return nil, err
	}
	return agendas, nil
}

// Close espera las tareas en curso y apaga el pool.
func (s *Service) Close() {
	s.pool.StopAndWait()
}
