package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	googleoauth "golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"pet-care-portal/internal/domain/calendar"
	"pet-care-portal/internal/platform/httpclient"
)

const (
	// pageSize por request; Events recorre todas las páginas.
	pageSize = 250

	dateLayout = "2006-01-02"
)

var (
	ErrNotConfigured = errors.New("google calendar not configured")
	ErrUnauthorized  = errors.New("google calendar unauthorized")
	ErrUpstream      = errors.New("google calendar upstream error")
)

type Config struct {
	// APIKey alcanza para calendarios públicos.
	APIKey string
	// CredentialsFile (service account JSON) tiene prioridad sobre APIKey.
	CredentialsFile string

	// BaseURL reemplaza el endpoint por defecto de la API.
	BaseURL string
	Timeout time.Duration
}

// Source implementa calendar.Source contra la API v3 de Google Calendar.
type Source struct {
	svc     *gcal.Service
	timeout time.Duration
}

func New(ctx context.Context, cfg Config) (*Source, error) {
	opts := []option.ClientOption{}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		opts = append(opts, option.WithEndpoint(endpoint(base)))
	}

	if file := strings.TrimSpace(cfg.CredentialsFile); file != "" {
		raw, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read google credentials: %w", err)
		}
		creds, err := googleoauth.CredentialsFromJSON(ctx, raw, gcal.CalendarReadonlyScope)
		if err != nil {
			return nil, fmt.Errorf("parse google credentials: %w", err)
		}
		opts = append(opts, option.WithCredentials(creds))
	} else if key := strings.TrimSpace(cfg.APIKey); key != "" {
		opts = append(opts, option.WithAPIKey(key))
	} else {
		return nil, ErrNotConfigured
	}

	svc, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("google calendar client: %w", err)
	}
	return &Source{svc: svc, timeout: timeoutOrDefault(cfg.Timeout)}, nil
}

// NewWithClient es para tests: sin auth, contra baseURL.
func NewWithClient(ctx context.Context, hc *http.Client, baseURL string) (*Source, error) {
	svc, err := gcal.NewService(ctx,
		option.WithHTTPClient(hc),
		option.WithEndpoint(endpoint(baseURL)),
	)
	if err != nil {
		return nil, fmt.Errorf("google calendar client: %w", err)
	}
	return &Source{svc: svc, timeout: httpclient.DefaultTimeout}, nil
}

// endpoint termina en "/": los paths de la API son relativos.
func endpoint(base string) string {
	return strings.TrimRight(base, "/") + "/"
}

func timeoutOrDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return httpclient.DefaultTimeout
	}
	return d
}

func (s *Source) Events(ctx context.Context, calendarID string, from, to time.Time) ([]calendar.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	call := s.svc.Events.List(calendarID).
		TimeMin(from.UTC().Format(time.RFC3339)).
		TimeMax(to.UTC().Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(pageSize)

	var events []calendar.Event
	err := call.Pages(ctx, func(page *gcal.Events) error {
		for _, it := range page.Items {
			if it == nil || it.Status == "cancelled" {
				continue
			}
			ev, err := toEvent(it)
			if err != nil {
				return err
			}
			events = append(events, ev)
		}
		return nil
	})
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) {
			switch gerr.Code {
			case http.StatusUnauthorized, http.StatusForbidden:
				return nil, fmt.Errorf("%w: status=%d", ErrUnauthorized, gerr.Code)
			}
			return nil, fmt.Errorf("%w: status=%d", ErrUpstream, gerr.Code)
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if events == nil {
		events = []calendar.Event{}
	}
	return events, nil
}

func toEvent(it *gcal.Event) (calendar.Event, error) {
	ev := calendar.Event{
		ID:          it.Id,
		Summary:     it.Summary,
		Description: it.Description,
		Location:    it.Location,
		HTMLLink:    it.HtmlLink,
	}

	start, end := it.Start, it.End
	if start == nil || end == nil {
		return calendar.Event{}, fmt.Errorf("event %q: missing start or end", it.Id)
	}

	var err error
	if start.Date != "" {
		// eventos de día completo: date sin hora, end exclusivo
		ev.AllDay = true
		if ev.Start, err = time.Parse(dateLayout, start.Date); err != nil {
			return calendar.Event{}, fmt.Errorf("event %q start: %w", it.Id, err)
		}
		if ev.End, err = time.Parse(dateLayout, end.Date); err != nil {
			return calendar.Event{}, fmt.Errorf("event %q end: %w", it.Id, err)
		}
		return ev, nil
	}

	if ev.Start, err = time.Parse(time.RFC3339, start.DateTime); err != nil {
		return calendar.Event{}, fmt.Errorf("event %q start: %w", it.Id, err)
	}
	if ev.End, err = time.Parse(time.RFC3339, end.DateTime); err != nil {
		return calendar.Event{}, fmt.Errorf("event %q end: %w", it.Id, err)
	}
	return ev, nil
}
