package invoices_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mem "pet-care-portal/internal/adapters/storage/memory"
	"pet-care-portal/internal/domain/animals"
	"pet-care-portal/internal/domain/invoices"
	"pet-care-portal/internal/domain/sessions"
)

const (
	clientID = "6f1c2a9e-3b4d-4e5f-8a7b-9c0d1e2f3a4b"
	otherID  = "a1b2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d"
)

func setup(t *testing.T) (*invoices.Service, sessions.Session) {
	t.Helper()
	ctx := context.Background()

	animalsSvc := animals.NewService(mem.NewAnimalRepo())
	a, err := animalsSvc.Create(ctx, clientID, animals.Animal{Name: "Milo", Species: "dog"})
	require.NoError(t, err)

	sessionsSvc := sessions.NewService(mem.NewSessionRepo(), animalsSvc)
	s, err := sessionsSvc.Create(ctx, sessions.Session{ClientID: clientID, AnimalID: a.ID, Type: sessions.TypeNutrition, Date: time.Now()})
	require.NoError(t, err)

	return invoices.NewService(mem.NewInvoiceRepo(), sessionsSvc), s
}

func TestCreate_SessionMustMatchClient(t *testing.T) {
	svc, s := setup(t)
	ctx := context.Background()

	inv, err := svc.Create(ctx, invoices.Invoice{ClientID: clientID, SessionID: s.ID, Amount: 60, IssuedAt: "2026-03-02"})
	require.NoError(t, err)
	assert.NotEmpty(t, inv.ID)
	assert.False(t, inv.CreatedAt.IsZero())

	_, err = svc.Create(ctx, invoices.Invoice{ClientID: otherID, SessionID: s.ID, Amount: 60, IssuedAt: "2026-03-02"})
	assert.ErrorIs(t, err, invoices.ErrInvalidInput)

	_, err = svc.Create(ctx, invoices.Invoice{ClientID: clientID, SessionID: "missing", Amount: 60, IssuedAt: "2026-03-02"})
	assert.ErrorIs(t, err, invoices.ErrInvalidInput)

	_, err = svc.Create(ctx, invoices.Invoice{ClientID: clientID, SessionID: s.ID, Amount: -1, IssuedAt: "2026-03-02"})
	assert.ErrorIs(t, err, invoices.ErrInvalidInput)
}

func TestList_ByClient(t *testing.T) {
	svc, s := setup(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, invoices.Invoice{ClientID: clientID, SessionID: s.ID, Amount: 45.5, IssuedAt: "2026-03-02"})
	require.NoError(t, err)

	mine, err := svc.List(ctx, invoices.ListFilter{ClientID: clientID})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, 45.5, mine[0].Amount)

	other, err := svc.List(ctx, invoices.ListFilter{ClientID: otherID})
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestInsertSchema_AmountAndDate(t *testing.T) {
	_, err := invoices.InsertSchema.Parse([]byte(`{
		"client_id":"` + clientID + `",
		"session_id":"` + otherID + `",
		"amount":-3,
		"issued_at":"02/03/2026",
		"invoice_url":null
	}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount")
	assert.Contains(t, err.Error(), "issued_at")
}
