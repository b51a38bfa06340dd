package reviews_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mem "pet-care-portal/internal/adapters/storage/memory"
	"pet-care-portal/internal/domain/animals"
	"pet-care-portal/internal/domain/reviews"
	"pet-care-portal/internal/domain/sessions"
)

const (
	clientID = "6f1c2a9e-3b4d-4e5f-8a7b-9c0d1e2f3a4b"
	otherID  = "a1b2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d"
	formURL  = "https://forms.example.com/r/1"
)

func setup(t *testing.T) (*reviews.Service, sessions.Session) {
	t.Helper()
	ctx := context.Background()

	animalsSvc := animals.NewService(mem.NewAnimalRepo())
	a, err := animalsSvc.Create(ctx, clientID, animals.Animal{Name: "Milo", Species: "dog"})
	require.NoError(t, err)

	sessionsSvc := sessions.NewService(mem.NewSessionRepo(), animalsSvc)
	s, err := sessionsSvc.Create(ctx, sessions.Session{ClientID: clientID, AnimalID: a.ID, Type: sessions.TypeOsteopathy, Date: time.Now()})
	require.NoError(t, err)

	return reviews.NewService(mem.NewReviewRepo(), sessionsSvc), s
}

func TestSubmit_OnePerSessionAndHidden(t *testing.T) {
	svc, s := setup(t)
	ctx := context.Background()

	rv, err := svc.Submit(ctx, reviews.Review{ClientID: clientID, SessionID: s.ID, FormURL: formURL, IsVisible: true})
	require.NoError(t, err)
	assert.False(t, rv.IsVisible)

	_, err = svc.Submit(ctx, reviews.Review{ClientID: clientID, SessionID: s.ID, FormURL: formURL})
	assert.ErrorIs(t, err, reviews.ErrConflict)

	_, err = svc.Submit(ctx, reviews.Review{ClientID: otherID, SessionID: s.ID, FormURL: formURL})
	assert.ErrorIs(t, err, reviews.ErrForbidden)

	_, err = svc.Submit(ctx, reviews.Review{ClientID: clientID, SessionID: "missing", FormURL: formURL})
	assert.ErrorIs(t, err, reviews.ErrInvalidInput)
}

func TestModeration_MakesVisible(t *testing.T) {
	svc, s := setup(t)
	ctx := context.Background()

	rv, err := svc.Submit(ctx, reviews.Review{ClientID: clientID, SessionID: s.ID, FormURL: formURL})
	require.NoError(t, err)

	visible, err := svc.ListVisible(ctx)
	require.NoError(t, err)
	assert.Empty(t, visible)

	patch, err := reviews.UpdateSchema.Parse([]byte(`{"is_visible":true,"client_id":"` + otherID + `"}`))
	require.NoError(t, err)
	updated, err := svc.Update(ctx, rv.ID, patch)
	require.NoError(t, err)
	assert.True(t, updated.IsVisible)
	assert.Equal(t, clientID, updated.ClientID)

	visible, err = svc.ListVisible(ctx)
	require.NoError(t, err)
	require.Len(t, visible, 1)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
