package documents_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	objmem "pet-care-portal/internal/adapters/objectstore/memory"
	mem "pet-care-portal/internal/adapters/storage/memory"
	"pet-care-portal/internal/domain/animals"
	"pet-care-portal/internal/domain/documents"
)

const (
	ownerID = "6f1c2a9e-3b4d-4e5f-8a7b-9c0d1e2f3a4b"
	otherID = "a1b2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d"
)

func newService(t *testing.T) (*documents.Service, *animals.Service, *objmem.Store) {
	t.Helper()
	animalsSvc := animals.NewService(mem.NewAnimalRepo())
	store := objmem.New("documents")
	return documents.NewService(mem.NewDocumentRepo(), animalsSvc, store), animalsSvc, store
}

func upload(t *testing.T, svc *documents.Service, in documents.UploadInput, content string) documents.Document {
	t.Helper()
	in.Size = int64(len(content))
	d, err := svc.Upload(context.Background(), in, strings.NewReader(content))
	require.NoError(t, err)
	return d
}

func TestUpload_StoresObjectUnderClientPrefix(t *testing.T) {
	svc, _, store := newService(t)

	d := upload(t, svc, documents.UploadInput{ClientID: ownerID, Name: "../../etc/analisis.pdf", ContentType: "application/pdf"}, "%PDF")

	assert.Equal(t, "analisis.pdf", d.Name)
	assert.Equal(t, "clients/"+ownerID+"/documents/"+d.ID+"/analisis.pdf", d.ObjectKey)
	assert.Equal(t, int64(4), d.Size)

	rc, info, err := store.Get(context.Background(), d.ObjectKey)
	require.NoError(t, err)
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	assert.Equal(t, "%PDF", string(body))
	assert.Equal(t, "application/pdf", info.ContentType)
}

func TestUpload_DefaultContentType(t *testing.T) {
	svc, _, _ := newService(t)

	d := upload(t, svc, documents.UploadInput{ClientID: ownerID, Name: "notes.bin"}, "x")
	assert.Equal(t, "application/octet-stream", d.ContentType)
}

func TestUpload_Validation(t *testing.T) {
	svc, animalsSvc, store := newService(t)
	ctx := context.Background()

	_, err := svc.Upload(ctx, documents.UploadInput{ClientID: ownerID, Name: ".."}, strings.NewReader("x"))
	assert.ErrorIs(t, err, documents.ErrInvalidInput)

	_, err = svc.Upload(ctx, documents.UploadInput{Name: "a.pdf"}, strings.NewReader("x"))
	assert.ErrorIs(t, err, documents.ErrInvalidInput)

	// animal de otro cliente
	a, err := animalsSvc.Create(ctx, otherID, animals.Animal{Name: "Rex", Species: "dog"})
	require.NoError(t, err)
	_, err = svc.Upload(ctx, documents.UploadInput{ClientID: ownerID, Name: "a.pdf", AnimalID: &a.ID}, strings.NewReader("x"))
	assert.ErrorIs(t, err, documents.ErrInvalidInput)

	assert.Equal(t, 0, store.Len())
}

func TestUpload_WithOwnAnimal(t *testing.T) {
	svc, animalsSvc, _ := newService(t)

	a, err := animalsSvc.Create(context.Background(), ownerID, animals.Animal{Name: "Milo", Species: "cat"})
	require.NoError(t, err)

	d := upload(t, svc, documents.UploadInput{ClientID: ownerID, Name: "vacunas.pdf", AnimalID: &a.ID}, "data")
	require.NotNil(t, d.AnimalID)
	assert.Equal(t, a.ID, *d.AnimalID)
}

func TestDownloadURL_OwnerAndAdmin(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	d := upload(t, svc, documents.UploadInput{ClientID: ownerID, Name: "a.pdf"}, "data")

	url, err := svc.DownloadURL(ctx, ownerID, false, d.ID)
	require.NoError(t, err)
	assert.Contains(t, url, d.ObjectKey)
	assert.Contains(t, url, "expires=")

	_, err = svc.DownloadURL(ctx, otherID, false, d.ID)
	assert.ErrorIs(t, err, documents.ErrForbidden)

	_, err = svc.DownloadURL(ctx, otherID, true, d.ID)
	assert.NoError(t, err)

	_, err = svc.DownloadURL(ctx, ownerID, false, "missing")
	assert.True(t, errors.Is(err, documents.ErrNotFound))
}

func TestListByClient(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	upload(t, svc, documents.UploadInput{ClientID: ownerID, Name: "a.pdf"}, "a")
	upload(t, svc, documents.UploadInput{ClientID: ownerID, Name: "b.pdf"}, "b")
	upload(t, svc, documents.UploadInput{ClientID: otherID, Name: "c.pdf"}, "c")

	items, err := svc.ListByClient(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, d := range items {
		assert.Equal(t, ownerID, d.ClientID)
	}
}

func TestDelete_RemovesObjectAndRow(t *testing.T) {
	svc, _, store := newService(t)
	ctx := context.Background()

	d := upload(t, svc, documents.UploadInput{ClientID: ownerID, Name: "a.pdf"}, "data")

	assert.ErrorIs(t, svc.Delete(ctx, otherID, false, d.ID), documents.ErrForbidden)
	assert.Equal(t, 1, store.Len())

	require.NoError(t, svc.Delete(ctx, ownerID, false, d.ID))
	assert.Equal(t, 0, store.Len())

	_, err := svc.Get(ctx, ownerID, false, d.ID)
	assert.ErrorIs(t, err, documents.ErrNotFound)
}
