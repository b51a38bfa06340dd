package animals

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-care-portal/internal/schema"
)

type testRepo struct {
	byID map[string]Animal
}

func (r *testRepo) Create(_ context.Context, a Animal) error {
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) Update(_ context.Context, a Animal) error {
	if _, ok := r.byID[a.ID]; !ok {
		return ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (Animal, error) {
	a, ok := r.byID[id]
	if !ok {
		return Animal{}, ErrNotFound
	}
	return a, nil
}

func (r *testRepo) ListByClient(_ context.Context, clientID string) ([]Animal, error) {
	out := make([]Animal, 0)
	for _, a := range r.byID {
		if a.ClientID == clientID {
			out = append(out, a)
		}
	}
	return out, nil
}

const (
	owner = "11111111-1111-4111-8111-111111111111"
	other = "22222222-2222-4222-8222-222222222222"
)

func newTestService(t *testing.T) (*Service, Animal) {
	t.Helper()
	svc := NewService(&testRepo{byID: map[string]Animal{}})
	svc.now = func() time.Time { return time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC) }

	in, err := InsertSchema.Parse([]byte(`{"name":"Luna","species":"dog","sex":"female","birth_date":"2020-05-01"}`))
	require.NoError(t, err)

	a, err := svc.Create(context.Background(), owner, in.Value)
	require.NoError(t, err)
	return svc, a
}

func TestInsertSchema_ClientIDNotRequired(t *testing.T) {
	_, err := InsertSchema.Parse([]byte(`{"name":"Luna","species":"cat"}`))
	assert.NoError(t, err)
}

func TestInsertSchema_RejectsBadFormats(t *testing.T) {
	_, err := InsertSchema.Parse([]byte(`{"name":"Luna","species":"cat","sex":"x","birth_date":"01/05/2020","photo_url":"nope"}`))
	require.Error(t, err)

	var verr *schema.ValidationError
	require.ErrorAs(t, err, &verr)

	paths := make([]string, 0, len(verr.Issues))
	for _, is := range verr.Issues {
		paths = append(paths, is.Path)
	}
	assert.Equal(t, []string{"sex", "birth_date", "photo_url"}, paths)

	is, _ := verr.Issue("sex")
	assert.Equal(t, schema.CodeInvalidEnum, is.Code)
}

func TestCreate_SetsOwner(t *testing.T) {
	_, a := newTestService(t)
	assert.Equal(t, owner, a.ClientID)
	assert.NotEmpty(t, a.ID)
	require.NotNil(t, a.Sex)
	assert.Equal(t, "female", *a.Sex)
}

func TestGetForClient(t *testing.T) {
	svc, a := newTestService(t)

	_, err := svc.GetForClient(context.Background(), owner, a.ID)
	assert.NoError(t, err)

	_, err = svc.GetForClient(context.Background(), other, a.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdate_KeepsImmutableFields(t *testing.T) {
	svc, a := newTestService(t)

	patch, err := UpdateSchema.Parse([]byte(`{"client_id":"` + other + `","notes":"vacunada"}`))
	require.NoError(t, err)

	got, err := svc.Update(context.Background(), a.ID, patch)
	require.NoError(t, err)
	assert.Equal(t, owner, got.ClientID)
	require.NotNil(t, got.Notes)
	assert.Equal(t, "vacunada", *got.Notes)
	assert.Equal(t, "Luna", got.Name)
}

func TestValidateChanges(t *testing.T) {
	_, err := ValidateChanges([]byte(`{"client_id":"` + other + `"}`))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ValidateChanges([]byte(`{"sex":"other"}`))
	var verr *schema.ValidationError
	assert.ErrorAs(t, err, &verr)

	p, err := ValidateChanges([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, p.Fields())
}

func TestApplyChanges_WithPhoto(t *testing.T) {
	svc, a := newTestService(t)
	photo := "https://cdn.example.com/luna-thumb.jpg"

	got, err := svc.ApplyChanges(context.Background(), a.ID, []byte(`{"name":"Luna II"}`), &photo)
	require.NoError(t, err)
	assert.Equal(t, "Luna II", got.Name)
	assert.Equal(t, photo, *got.PhotoURL)
	assert.Equal(t, "dog", got.Species)
}
