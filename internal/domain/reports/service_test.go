package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mem "pet-care-portal/internal/adapters/storage/memory"
	"pet-care-portal/internal/domain/animals"
	"pet-care-portal/internal/domain/reports"
	"pet-care-portal/internal/domain/sessions"
)

const (
	clientID = "6f1c2a9e-3b4d-4e5f-8a7b-9c0d1e2f3a4b"
	otherID  = "a1b2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d"
)

func setup(t *testing.T) (*reports.Service, sessions.Session) {
	t.Helper()
	ctx := context.Background()

	animalsSvc := animals.NewService(mem.NewAnimalRepo())
	a, err := animalsSvc.Create(ctx, clientID, animals.Animal{Name: "Milo", Species: "dog"})
	require.NoError(t, err)

	sessionsSvc := sessions.NewService(mem.NewSessionRepo(), animalsSvc)
	s, err := sessionsSvc.Create(ctx, sessions.Session{ClientID: clientID, AnimalID: a.ID, Type: sessions.TypeOsteopathy, Date: time.Now()})
	require.NoError(t, err)

	return reports.NewService(mem.NewReportRepo(), sessionsSvc), s
}

func TestSave_UpsertKeepsIdentity(t *testing.T) {
	svc, s := setup(t)
	ctx := context.Background()

	first, err := svc.Save(ctx, reports.Report{SessionID: s.ID, Content: "v1"})
	require.NoError(t, err)

	second, err := svc.Save(ctx, reports.Report{SessionID: s.ID, Content: "v2"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))

	got, err := svc.GetForUser(ctx, clientID, false, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Content)
}

func TestGetForUser_Access(t *testing.T) {
	svc, s := setup(t)
	ctx := context.Background()

	_, err := svc.GetForUser(ctx, clientID, false, s.ID)
	assert.ErrorIs(t, err, reports.ErrNotFound)

	_, err = svc.Save(ctx, reports.Report{SessionID: s.ID, Content: "ok"})
	require.NoError(t, err)

	_, err = svc.GetForUser(ctx, otherID, false, s.ID)
	assert.ErrorIs(t, err, reports.ErrForbidden)

	_, err = svc.GetForUser(ctx, otherID, true, s.ID)
	assert.NoError(t, err)

	_, err = svc.GetForUser(ctx, clientID, false, "missing")
	assert.ErrorIs(t, err, reports.ErrNotFound)
}

func TestSave_UnknownSession(t *testing.T) {
	svc, _ := setup(t)

	_, err := svc.Save(context.Background(), reports.Report{SessionID: "missing", Content: "x"})
	assert.ErrorIs(t, err, reports.ErrInvalidInput)
}
