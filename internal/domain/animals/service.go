package animals

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-care-portal/internal/schema"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("animal not found")
	ErrForbidden    = errors.New("forbidden")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Create registra un animal del cliente. El valor ya pasó por InsertSchema.
func (s *Service) Create(ctx context.Context, clientID string, in Animal) (Animal, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" || strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Species) == "" {
		return Animal{}, ErrInvalidInput
	}

	a := in
	if strings.TrimSpace(a.ID) == "" {
		a.ID = uuid.NewString()
	}
	a.ClientID = clientID
	a.Name = strings.TrimSpace(a.Name)
	a.Species = strings.TrimSpace(a.Species)
	a.CreatedAt = s.now()

	if err := s.repo.Create(ctx, a); err != nil {
		return Animal{}, fmt.Errorf("create animal: %w", err)
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Animal{}, ErrInvalidInput
	}
	if !schema.IsUUID(id) {
		return Animal{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// GetForClient devuelve el animal solo si pertenece al cliente.
func (s *Service) GetForClient(ctx context.Context, clientID, id string) (Animal, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}
	if a.ClientID != clientID {
		return Animal{}, ErrForbidden
	}
	return a, nil
}

func (s *Service) ListByClient(ctx context.Context, clientID string) ([]Animal, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return nil, ErrInvalidInput
	}
	if !schema.IsUUID(clientID) {
		return []Animal{}, nil
	}
	return s.repo.ListByClient(ctx, clientID)
}

// Update aplica un patch ya validado con UpdateSchema.
func (s *Service) Update(ctx context.Context, id string, patch schema.Parsed[Animal]) (Animal, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}

	updated := current
	patch.ApplyTo(&updated)
	updated.ID = current.ID
	updated.CreatedAt = current.CreatedAt
	updated.ClientID = current.ClientID

	if strings.TrimSpace(updated.Name) == "" || strings.TrimSpace(updated.Species) == "" {
		return Animal{}, ErrInvalidInput
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		return Animal{}, fmt.Errorf("update animal: %w", err)
	}
	return updated, nil
}

// ValidateChanges valida un set de cambios pedido por el cliente.
// Los campos inmutables no se pueden pedir. Un set vacío es válido
// (solicitud de solo foto).
func ValidateChanges(raw []byte) (schema.Parsed[Animal], error) {
	patch, err := UpdateSchema.Parse(raw)
	if err != nil {
		return schema.Parsed[Animal]{}, err
	}
	for _, f := range immutable {
		if patch.Has(f) {
			return schema.Parsed[Animal]{}, fmt.Errorf("%w: %s cannot be changed", ErrInvalidInput, f)
		}
	}
	return patch, nil
}

// ApplyChanges aplica los cambios de una solicitud aprobada.
// photoURL, si viene, pisa la foto actual.
func (s *Service) ApplyChanges(ctx context.Context, id string, raw []byte, photoURL *string) (Animal, error) {
	patch, err := UpdateSchema.Parse(raw)
	if err != nil {
		return Animal{}, err
	}

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}

	updated := current
	patch.ApplyTo(&updated)
	updated.ID = current.ID
	updated.CreatedAt = current.CreatedAt
	updated.ClientID = current.ClientID
	if photoURL != nil {
		updated.PhotoURL = photoURL
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		return Animal{}, fmt.Errorf("apply changes: %w", err)
	}
	return updated, nil
}
