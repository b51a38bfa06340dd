package calendar

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type fakeSource struct {
	mu     sync.Mutex
	events map[string][]Event
	fail   map[string]error
	delay  time.Duration
	calls  atomic.Int32
}

func (f *fakeSource) Events(ctx context.Context, calendarID string, _, _ time.Time) ([]Event, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail[calendarID]; err != nil {
		return nil, err
	}
	return f.events[calendarID], nil
}

var testCalendars = []Calendar{
	{ID: "osteo@group.calendar.google.com", Name: "Ostéopathie"},
	{ID: "nutri@group.calendar.google.com", Name: "Nutrition"},
	{ID: "home@group.calendar.google.com", Name: "Domicile"},
}

func testRange() Range {
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return Range{From: from, To: from.Add(DefaultWindow)}
}

func TestAgendas_KeepsConfiguredOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	src := &fakeSource{events: map[string][]Event{
		"osteo@group.calendar.google.com": {{ID: "e1", Summary: "Luna"}},
		"nutri@group.calendar.google.com": {{ID: "e2", Summary: "Milo"}, {ID: "e3", Summary: "Rex"}},
	}}
	svc := NewService(src, testCalendars, 2)
	defer svc.Close()

	agendas, err := svc.Agendas(context.Background(), testRange())
	require.NoError(t, err)
	require.Len(t, agendas, 3)

	assert.Equal(t, "Ostéopathie", agendas[0].Name)
	assert.Len(t, agendas[0].Events, 1)
	assert.Equal(t, "Nutrition", agendas[1].Name)
	assert.Len(t, agendas[1].Events, 2)
	assert.NotNil(t, agendas[2].Events)
	assert.Empty(t, agendas[2].Events)
	assert.EqualValues(t, 3, src.calls.Load())
}

func TestAgendas_FailsFast(t *testing.T) {
	defer goleak.VerifyNone(t)

	boom := errors.New("quota exceeded")
	src := &fakeSource{fail: map[string]error{"nutri@group.calendar.google.com": boom}}
	svc := NewService(src, testCalendars, 3)
	defer svc.Close()

	agendas, err := svc.Agendas(context.Background(), testRange())
	require.Error(t, err)
	assert.Nil(t, agendas)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "Nutrition")
}

func TestAgendas_InvalidRange(t *testing.T) {
	svc := NewService(&fakeSource{}, testCalendars, 1)
	defer svc.Close()

	rng := testRange()
	_, err := svc.Agendas(context.Background(), Range{From: rng.To, To: rng.From})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestAgendas_NoCalendars(t *testing.T) {
	svc := NewService(&fakeSource{}, nil, 1)
	defer svc.Close()

	_, err := svc.Agendas(context.Background(), testRange())
	assert.ErrorIs(t, err, ErrNoCalendars)
}

func TestDefaultRange(t *testing.T) {
	svc := NewService(&fakeSource{}, testCalendars, 1)
	defer svc.Close()
	svc.now = func() time.Time { return time.Date(2025, 6, 10, 15, 30, 0, 0, time.UTC) }

	rng := svc.DefaultRange()
	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), rng.From)
	assert.Equal(t, rng.From.Add(DefaultWindow), rng.To)
}
