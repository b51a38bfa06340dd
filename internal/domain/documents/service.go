package documents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-care-portal/internal/domain/animals"
	"pet-care-portal/internal/ports/storage"
	"pet-care-portal/internal/schema"
)

// DownloadTTL es la vigencia de las URLs firmadas de descarga.
const DownloadTTL = 15 * time.Minute

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("document not found")
	ErrForbidden    = errors.New("forbidden")
)

type Service struct {
	repo    Repository
	animals *animals.Service
	store   storage.ObjectStore
	now     func() time.Time
}

func NewService(repo Repository, animalsSvc *animals.Service, store storage.ObjectStore) *Service {
	return &Service{
		repo:    repo,
		animals: animalsSvc,
		store:   store,
		now:     time.Now,
	}
}

// Upload sube el archivo y registra el documento. Si viene animal_id el
// animal tiene que ser del mismo cliente.
func (s *Service) Upload(ctx context.Context, in UploadInput, body io.Reader) (Document, error) {
	clientID := strings.TrimSpace(in.ClientID)
	name := sanitizeName(in.Name)
	if clientID == "" || name == "" || !schema.IsUUID(clientID) {
		return Document{}, ErrInvalidInput
	}

	if in.AnimalID != nil && strings.TrimSpace(*in.AnimalID) != "" {
		if _, err := s.animals.GetForClient(ctx, clientID, *in.AnimalID); err != nil {
			switch {
			case errors.Is(err, animals.ErrNotFound), errors.Is(err, animals.ErrForbidden):
				return Document{}, fmt.Errorf("%w: unknown animal", ErrInvalidInput)
			}
			return Document{}, err
		}
	} else {
		in.AnimalID = nil
	}

	contentType := strings.TrimSpace(in.ContentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	d := Document{
		ID:          uuid.NewString(),
		ClientID:    clientID,
		AnimalID:    in.AnimalID,
		Name:        name,
		ContentType: contentType,
		Size:        in.Size,
		CreatedAt:   s.now(),
	}
	d.ObjectKey = path.Join("clients", clientID, "documents", d.ID, name)

	if err := s.store.Put(ctx, d.ObjectKey, body, d.Size, d.ContentType); err != nil {
		return Document{}, fmt.Errorf("store document: %w", err)
	}

	if err := s.repo.Create(ctx, d); err != nil {
		// Sin fila el objeto queda huérfano.
		_ = s.store.Delete(ctx, d.ObjectKey)
		return Document{}, fmt.Errorf("create document: %w", err)
	}
	return d, nil
}

func (s *Service) ListByClient(ctx context.Context, clientID string) ([]Document, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return nil, ErrInvalidInput
	}
	if !schema.IsUUID(clientID) {
		return []Document{}, nil
	}
	return s.repo.ListByClient(ctx, clientID)
}

// Get devuelve el documento si es del usuario (o asAdmin).
func (s *Service) Get(ctx context.Context, userID string, asAdmin bool, id string) (Document, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Document{}, ErrInvalidInput
	}
	if !schema.IsUUID(id) {
		return Document{}, ErrNotFound
	}
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Document{}, err
	}
	if !asAdmin && d.ClientID != userID {
		return Document{}, ErrForbidden
	}
	return d, nil
}

// DownloadURL firma una URL de descarga válida por DownloadTTL.
func (s *Service) DownloadURL(ctx context.Context, userID string, asAdmin bool, id string) (string, error) {
	d, err := s.Get(ctx, userID, asAdmin, id)
	if err != nil {
		return "", err
	}
	url, err := s.store.PresignGet(ctx, d.ObjectKey, DownloadTTL)
	if err != nil {
		return "", fmt.Errorf("presign document: %w", err)
	}
	return url, nil
}

// Delete borra el objeto y después la fila.
func (s *Service) Delete(ctx context.Context, userID string, asAdmin bool, id string) error {
	d, err := s.Get(ctx, userID, asAdmin, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, d.ObjectKey); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
		return fmt.Errorf("delete object: %w", err)
	}
	if err := s.repo.Delete(ctx, d.ID); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// sanitizeName deja solo el nombre base (sin directorios) para armar la key.
func sanitizeName(name string) string {
	name = strings.TrimSpace(strings.ReplaceAll(name, "\\", "/"))
	name = path.Base(name)
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return name
}
