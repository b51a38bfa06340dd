package sessions_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mem "pet-care-portal/internal/adapters/storage/memory"
	"pet-care-portal/internal/domain/animals"
	"pet-care-portal/internal/domain/sessions"
)

const (
	clientID = "6f1c2a9e-3b4d-4e5f-8a7b-9c0d1e2f3a4b"
	otherID  = "a1b2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d"
)

func setup(t *testing.T) (*sessions.Service, animals.Animal) {
	t.Helper()
	animalsSvc := animals.NewService(mem.NewAnimalRepo())
	a, err := animalsSvc.Create(context.Background(), clientID, animals.Animal{Name: "Milo", Species: "dog"})
	require.NoError(t, err)
	return sessions.NewService(mem.NewSessionRepo(), animalsSvc), a
}

func TestCreate_AnimalMustBelongToClient(t *testing.T) {
	svc, a := setup(t)
	ctx := context.Background()
	date := time.Date(2026, 3, 2, 10, 0, 0, 0, time.FixedZone("CET", 3600))

	s, err := svc.Create(ctx, sessions.Session{ClientID: clientID, AnimalID: a.ID, Type: sessions.TypeOsteopathy, Date: date})
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, time.UTC, s.Date.Location())
	assert.True(t, s.Date.Equal(date))

	_, err = svc.Create(ctx, sessions.Session{ClientID: otherID, AnimalID: a.ID, Type: sessions.TypeNutrition, Date: date})
	assert.ErrorIs(t, err, sessions.ErrInvalidInput)

	_, err = svc.Create(ctx, sessions.Session{ClientID: clientID, AnimalID: "missing", Type: sessions.TypeNutrition, Date: date})
	assert.ErrorIs(t, err, sessions.ErrInvalidInput)

	_, err = svc.Create(ctx, sessions.Session{ClientID: clientID, AnimalID: a.ID, Type: sessions.TypeNutrition})
	assert.ErrorIs(t, err, sessions.ErrInvalidInput)
}

func TestGetForClient(t *testing.T) {
	svc, a := setup(t)
	ctx := context.Background()

	s, err := svc.Create(ctx, sessions.Session{ClientID: clientID, AnimalID: a.ID, Type: sessions.TypeOsteopathy, Date: time.Now()})
	require.NoError(t, err)

	got, err := svc.GetForClient(ctx, clientID, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)

	_, err = svc.GetForClient(ctx, otherID, s.ID)
	assert.ErrorIs(t, err, sessions.ErrForbidden)

	_, err = svc.GetForClient(ctx, clientID, "missing")
	assert.ErrorIs(t, err, sessions.ErrNotFound)
}

// uuidColumns falla como Postgres cuando un id mal formado llega a una columna uuid.
type uuidColumns struct {
	sessions.Repository
}

var errInvalidUUID = errors.New(`ERROR: invalid input syntax for type uuid (SQLSTATE 22P02)`)

func (r uuidColumns) GetByID(ctx context.Context, id string) (sessions.Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return sessions.Session{}, errInvalidUUID
	}
	return r.Repository.GetByID(ctx, id)
}

func (r uuidColumns) List(ctx context.Context, f sessions.ListFilter) ([]sessions.Session, error) {
	if _, err := uuid.Parse(f.ClientID); f.ClientID != "" && err != nil {
		return nil, errInvalidUUID
	}
	return r.Repository.List(ctx, f)
}

func TestMalformedIDsNeverReachTheRepository(t *testing.T) {
	animalsSvc := animals.NewService(mem.NewAnimalRepo())
	svc := sessions.NewService(uuidColumns{Repository: mem.NewSessionRepo()}, animalsSvc)
	ctx := context.Background()

	for _, id := range []string{"not-a-uuid", "1", "6f1c2a9e3b4d4e5f8a7b9c0d1e2f3a4b"} {
		_, err := svc.GetByID(ctx, id)
		assert.ErrorIs(t, err, sessions.ErrNotFound, id)

		_, err = svc.GetForClient(ctx, clientID, id)
		assert.ErrorIs(t, err, sessions.ErrNotFound, id)

		items, err := svc.List(ctx, sessions.ListFilter{ClientID: id})
		require.NoError(t, err, id)
		assert.Empty(t, items)
	}

	// mayúsculas es un uuid válido: llega al repo y no existe
	_, err := svc.GetByID(ctx, "6F1C2A9E-3B4D-4E5F-8A7B-9C0D1E2F3A4B")
	assert.ErrorIs(t, err, sessions.ErrNotFound)
}

func TestList_ByClient(t *testing.T) {
	svc, a := setup(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, sessions.Session{ClientID: clientID, AnimalID: a.ID, Type: sessions.TypeOsteopathy, Date: time.Now()})
	require.NoError(t, err)

	mine, err := svc.List(ctx, sessions.ListFilter{ClientID: clientID})
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	none, err := svc.List(ctx, sessions.ListFilter{ClientID: otherID})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdate_KeepsOwnership(t *testing.T) {
	svc, a := setup(t)
	ctx := context.Background()

	s, err := svc.Create(ctx, sessions.Session{ClientID: clientID, AnimalID: a.ID, Type: sessions.TypeOsteopathy, Date: time.Now()})
	require.NoError(t, err)

	patch, err := sessions.UpdateSchema.Parse([]byte(`{"type":"nutrition","client_id":"` + otherID + `","notes":"control"}`))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, s.ID, patch)
	require.NoError(t, err)
	assert.Equal(t, sessions.TypeNutrition, updated.Type)
	assert.Equal(t, clientID, updated.ClientID)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "control", *updated.Notes)
}

func TestParseType(t *testing.T) {
	st, ok := sessions.ParseType("nutrition")
	assert.True(t, ok)
	assert.Equal(t, sessions.TypeNutrition, st)

	_, ok = sessions.ParseType("surgery")
	assert.False(t, ok)
}
