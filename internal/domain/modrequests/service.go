package modrequests

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-care-portal/internal/domain/animals"
	"pet-care-portal/internal/ports/storage"
	"pet-care-portal/internal/schema"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("modification request not found")
	ErrForbidden    = errors.New("forbidden")
	ErrBadState     = errors.New("modification request already processed")
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

// Create registra un pedido de cambios del dueño del animal.
// changes se valida contra el schema de update de Animal.
func (s *Service) Create(ctx context.Context, clientID, animalID string, changes json.RawMessage) (ModificationRequest, error) {
	a, err := s.animals.GetForClient(ctx, clientID, animalID)
	if err != nil {
		return ModificationRequest{}, mapAnimalErr(err)
	}

	if len(bytes.TrimSpace(changes)) == 0 {
		changes = json.RawMessage(`{}`)
	}
	if _, err := animals.ValidateChanges(changes); err != nil {
		if errors.Is(err, animals.ErrInvalidInput) {
			return ModificationRequest{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return ModificationRequest{}, err
	}

	// Se guarda tal cual vino (sin reordenar ni normalizar).
	m := ModificationRequest{
		ID:        uuid.NewString(),
		AnimalID:  a.ID,
		ClientID:  a.ClientID,
		Changes:   append(json.RawMessage(nil), changes...),
		Status:    StatusPending,
		CreatedAt: s.now(),
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return ModificationRequest{}, fmt.Errorf("create modification request: %w", err)
	}
	return m, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (ModificationRequest, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return ModificationRequest{}, ErrInvalidInput
	}
	if !schema.IsUUID(id) {
		return ModificationRequest{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// ListForAnimal lista los pedidos de un animal propio.
func (s *Service) ListForAnimal(ctx context.Context, clientID, animalID string) ([]ModificationRequest, error) {
	if _, err := s.animals.GetForClient(ctx, clientID, animalID); err != nil {
		return nil, mapAnimalErr(err)
	}
	return s.repo.List(ctx, ListFilter{AnimalID: animalID})
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]ModificationRequest, error) {
	return s.repo.List(ctx, filter)
}

// AttachPhoto guarda la foto original y su miniatura. photo_url apunta a la
// miniatura, que es lo que muestra la ficha.
func (s *Service) AttachPhoto(ctx context.Context, clientID, id string, data []byte) (ModificationRequest, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil {
		return ModificationRequest{}, err
	}
	if m.ClientID != clientID {
		return ModificationRequest{}, ErrForbidden
	}
	if m.Status != StatusPending {
		return ModificationRequest{}, ErrBadState
	}

	thumb, format, err := thumbnail(data)
	if err != nil {
		return ModificationRequest{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	originalKey := fmt.Sprintf("animals/%s/requests/%s/original.%s", m.AnimalID, m.ID, format)
	if err := s.store.Put(ctx, originalKey, bytes.NewReader(data), int64(len(data)), "image/"+format); err != nil {
		return ModificationRequest{}, fmt.Errorf("store photo: %w", err)
	}

	thumbKey := fmt.Sprintf("animals/%s/requests/%s/thumb.jpg", m.AnimalID, m.ID)
	if err := s.store.Put(ctx, thumbKey, bytes.NewReader(thumb), int64(len(thumb)), "image/jpeg"); err != nil {
		return ModificationRequest{}, fmt.Errorf("store thumbnail: %w", err)
	}

	url := s.store.URL(thumbKey)
	m.PhotoURL = &url
	if err := s.repo.Update(ctx, m, StatusPending); err != nil {
		return ModificationRequest{}, fmt.Errorf("update modification request: %w", err)
	}
	return m, nil
}

// Approve aplica los cambios (y la foto, si hay) al animal.
// El pedido se marca approved antes de aplicar: si otro proceso lo cerró
// primero, no se toca el animal.
func (s *Service) Approve(ctx context.Context, id string) (ModificationRequest, error) {
	m, err := s.pending(ctx, id)
	if err != nil {
		return ModificationRequest{}, err
	}

	approved, err := s.close(ctx, m, StatusApproved)
	if err != nil {
		return ModificationRequest{}, err
	}

	if _, err := s.animals.ApplyChanges(ctx, m.AnimalID, m.Changes, m.PhotoURL); err != nil {
		applyErr := fmt.Errorf("apply changes: %w", mapAnimalErr(err))
		// vuelve a pending para poder reintentar
		if rerr := s.repo.Update(ctx, m, StatusApproved); rerr != nil {
			return ModificationRequest{}, errors.Join(applyErr, fmt.Errorf("reopen modification request: %w", rerr))
		}
		return ModificationRequest{}, applyErr
	}
	return approved, nil
}

func (s *Service) Reject(ctx context.Context, id string) (ModificationRequest, error) {
	m, err := s.pending(ctx, id)
	if err != nil {
		return ModificationRequest{}, err
	}
	return s.close(ctx, m, StatusRejected)
}

func (s *Service) pending(ctx context.Context, id string) (ModificationRequest, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil {
		return ModificationRequest{}, err
	}
	if m.Status != StatusPending {
		return ModificationRequest{}, ErrBadState
	}
	return m, nil
}

func (s *Service) close(ctx context.Context, m ModificationRequest, status Status) (ModificationRequest, error) {
	now := s.now()
	m.Status = status
	m.ProcessedAt = &now

	if err := s.repo.Update(ctx, m, StatusPending); err != nil {
		return ModificationRequest{}, fmt.Errorf("update modification request: %w", err)
	}
	return m, nil
}

func mapAnimalErr(err error) error {
	switch {
	case errors.Is(err, animals.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, animals.ErrForbidden):
		return ErrForbidden
	case errors.Is(err, animals.ErrInvalidInput):
		return ErrInvalidInput
	default:
		return err
	}
}
