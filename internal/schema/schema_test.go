package schema

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testOwner struct {
	ID        string          `json:"id" validate:"uuid"`
	CreatedAt time.Time       `json:"created_at"`
	Email     string          `json:"email" validate:"email"`
	Website   *string         `json:"website" validate:"url"`
	Kind      string          `json:"kind" validate:"oneof=cat dog"`
	Visits    int             `json:"visits" validate:"gte=0"`
	Active    bool            `json:"active"`
	Extra     json.RawMessage `json:"extra"`
	internal  string
}

var (
	ownerSchema       = New[testOwner]("owner")
	ownerInsertSchema = ownerSchema.Optional("id", "created_at", "active")
	ownerUpdateSchema = ownerSchema.Partial()
)

func validOwner() map[string]any {
	return map[string]any{
		"id":         "0b8d2f4e-6a0c-4c1e-9f3e-1d2a3b4c5d6e",
		"created_at": "2025-03-01T10:00:00Z",
		"email":      "ana@example.com",
		"website":    "https://example.com",
		"kind":       "cat",
		"visits":     3,
		"active":     true,
		"extra":      map[string]any{"a": 1},
	}
}

func TestParse_AcceptsValidPayload(t *testing.T) {
	p, err := ownerSchema.ParseValue(validOwner())
	require.NoError(t, err)

	assert.Equal(t, "0b8d2f4e-6a0c-4c1e-9f3e-1d2a3b4c5d6e", p.Value.ID)
	assert.Equal(t, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), p.Value.CreatedAt.UTC())
	assert.Equal(t, "ana@example.com", p.Value.Email)
	require.NotNil(t, p.Value.Website)
	assert.Equal(t, "https://example.com", *p.Value.Website)
	assert.Equal(t, 3, p.Value.Visits)
	assert.True(t, p.Value.Active)
	assert.JSONEq(t, `{"a":1}`, string(p.Value.Extra))
	assert.Len(t, p.Fields(), 8)
}

func TestParse_MissingRequiredField(t *testing.T) {
	in := validOwner()
	delete(in, "email")

	_, err := ownerSchema.ParseValue(in)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	is, ok := verr.Issue("email")
	require.True(t, ok)
	assert.Equal(t, CodeRequired, is.Code)
	assert.Equal(t, "email is required", is.Message)
}

func TestParse_ReportsEveryOffendingField(t *testing.T) {
	in := validOwner()
	in["id"] = "not-a-uuid"
	in["email"] = "nope"
	in["website"] = "no scheme"
	in["kind"] = "horse"
	in["visits"] = -1

	_, err := ownerSchema.ParseValue(in)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))

	paths := make([]string, 0, len(verr.Issues))
	for _, is := range verr.Issues {
		paths = append(paths, is.Path)
	}
	assert.Equal(t, []string{"id", "email", "website", "kind", "visits"}, paths)

	kind, _ := verr.Issue("kind")
	assert.Equal(t, CodeInvalidEnum, kind.Code)
}

func TestParse_NeverCoerces(t *testing.T) {
	in := validOwner()
	in["visits"] = "3"
	in["active"] = "true"

	_, err := ownerSchema.ParseValue(in)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	visits, ok := verr.Issue("visits")
	require.True(t, ok)
	assert.Equal(t, CodeInvalidType, visits.Code)
	_, ok = verr.Issue("active")
	assert.True(t, ok)
}

func TestParse_NullOnlyForNullableFields(t *testing.T) {
	in := validOwner()
	in["website"] = nil
	in["extra"] = nil

	p, err := ownerSchema.ParseValue(in)
	require.NoError(t, err)
	assert.Nil(t, p.Value.Website)
	assert.True(t, p.Has("website"))

	in["email"] = nil
	_, err = ownerSchema.ParseValue(in)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	is, ok := verr.Issue("email")
	require.True(t, ok)
	assert.Equal(t, CodeInvalidType, is.Code)
}

func TestParse_NullableKeyIsStillRequiredInBase(t *testing.T) {
	in := validOwner()
	delete(in, "website")

	_, err := ownerSchema.ParseValue(in)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	_, ok := verr.Issue("website")
	assert.True(t, ok)
}

func TestParse_AcceptsUppercaseUUID(t *testing.T) {
	_, err := ownerUpdateSchema.Parse([]byte(`{"id":"6F1C2A9E-3B4D-4E5F-8A7B-9C0D1E2F3A4B"}`))
	assert.NoError(t, err)

	for _, id := range []string{"6f1c2a9e3b4d4e5f8a7b9c0d1e2f3a4b", "{6f1c2a9e-3b4d-4e5f-8a7b-9c0d1e2f3a4b}", "6F1C2A9E-3B4D-4E5F-8A7B-9C0D1E2F3A4"} {
		_, err := ownerUpdateSchema.ParseValue(map[string]any{"id": id})
		var verr *ValidationError
		require.True(t, errors.As(err, &verr), "id %s", id)
		is, ok := verr.Issue("id")
		require.True(t, ok)
		assert.Equal(t, CodeInvalidFormat, is.Code)
	}
}

func TestIsUUID(t *testing.T) {
	assert.True(t, IsUUID("0b8d2f4e-6a0c-4c1e-9f3e-1d2a3b4c5d6e"))
	assert.True(t, IsUUID("0B8D2F4E-6A0C-4C1E-9F3E-1D2A3B4C5D6E"))
	assert.False(t, IsUUID("missing"))
	assert.False(t, IsUUID("urn:uuid:0b8d2f4e-6a0c-4c1e-9f3e-1d2a3b4c5d6e"))
}

func TestParse_RejectsNonObject(t *testing.T) {
	for _, payload := range []string{`null`, `[]`, `"x"`, `{`, `{"email":"a@b.co"} trailing-garbage`, `{} {}`} {
		_, err := ownerSchema.Parse([]byte(payload))
		var verr *ValidationError
		assert.True(t, errors.As(err, &verr), "payload %s", payload)
	}
}

func TestInsertVariant_RelaxesServerFields(t *testing.T) {
	in := validOwner()
	delete(in, "id")
	delete(in, "created_at")
	delete(in, "active")

	p, err := ownerInsertSchema.ParseValue(in)
	require.NoError(t, err)
	assert.False(t, p.Has("id"))
	assert.Empty(t, p.Value.ID)

	// el resto sigue siendo requerido
	delete(in, "email")
	_, err = ownerInsertSchema.ParseValue(in)
	require.Error(t, err)

	// el base no se ve afectado por la variante
	assert.False(t, ownerSchema.IsOptional("id"))
	assert.True(t, ownerInsertSchema.IsOptional("id"))
}

func TestInsertVariant_StillValidatesFormatWhenPresent(t *testing.T) {
	in := validOwner()
	in["id"] = "123"

	_, err := ownerInsertSchema.ParseValue(in)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	_, ok := verr.Issue("id")
	assert.True(t, ok)
}

func TestUpdateVariant_AcceptsAnySubset(t *testing.T) {
	p, err := ownerUpdateSchema.Parse([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, p.Fields())

	p, err = ownerUpdateSchema.Parse([]byte(`{"email":"b@example.com","unknown":1}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"email"}, p.Fields())

	_, err = ownerUpdateSchema.Parse([]byte(`{"email":"b"}`))
	require.Error(t, err)
}

func TestParsed_ApplyToOnlyTouchesPresentFields(t *testing.T) {
	site := "https://old.example.com"
	dst := testOwner{
		ID:      "0b8d2f4e-6a0c-4c1e-9f3e-1d2a3b4c5d6e",
		Email:   "old@example.com",
		Website: &site,
		Kind:    "dog",
		Visits:  9,
	}

	p, err := ownerUpdateSchema.Parse([]byte(`{"email":"new@example.com","website":null}`))
	require.NoError(t, err)
	p.ApplyTo(&dst)

	assert.Equal(t, "new@example.com", dst.Email)
	assert.Nil(t, dst.Website)
	assert.Equal(t, "dog", dst.Kind)
	assert.Equal(t, 9, dst.Visits)
}

func TestOptional_PanicsOnUnknownField(t *testing.T) {
	assert.Panics(t, func() { ownerSchema.Optional("nope") })
}

func TestValidationError_Message(t *testing.T) {
	_, err := ownerSchema.Parse([]byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid owner: id is required")
}
