package sessions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-care-portal/internal/domain/animals"
	"pet-care-portal/internal/schema"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("session not found")
	ErrForbidden    = errors.New("forbidden")
)

type Service struct {
	repo    Repository
	animals *animals.Service
	now     func() time.Time
}

func NewService(repo Repository, animalsSvc *animals.Service) *Service {
	return &Service{
		repo:    repo,
		animals: animalsSvc,
		now:     time.Now,
	}
}

// Create la usa el admin para registrar una consulta. El animal tiene que
// ser del cliente indicado.
func (s *Service) Create(ctx context.Context, in Session) (Session, error) {
	if in.Date.IsZero() {
		return Session{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	a, err := s.animals.GetByID(ctx, in.AnimalID)
	if err != nil {
		if errors.Is(err, animals.ErrNotFound) {
			return Session{}, fmt.Errorf("%w: animal not found", ErrInvalidInput)
		}
		return Session{}, err
	}
	if a.ClientID != in.ClientID {
		return Session{}, fmt.Errorf("%w: animal does not belong to client", ErrInvalidInput)
	}

	out := in
	if strings.TrimSpace(out.ID) == "" {
		out.ID = uuid.NewString()
	}
	out.CreatedAt = s.now()
	out.Date = out.Date.UTC()

	if err := s.repo.Create(ctx, out); err != nil {
		return Session{}, fmt.Errorf("create session: %w", err)
	}
	return out, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Session{}, ErrInvalidInput
	}
	if !schema.IsUUID(id) {
		return Session{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// GetForClient devuelve la sesión solo si es del cliente.
func (s *Service) GetForClient(ctx context.Context, clientID, id string) (Session, error) {
	out, err := s.GetByID(ctx, id)
	if err != nil {
		return Session{}, err
	}
	if out.ClientID != clientID {
		return Session{}, ErrForbidden
	}
	return out, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Session, error) {
	if filter.ClientID != "" && !schema.IsUUID(filter.ClientID) {
		return []Session{}, nil
	}
	return s.repo.List(ctx, filter)
}

// Update aplica un patch del admin. id, created_at, client_id y animal_id
// quedan fijos.
func (s *Service) Update(ctx context.Context, id string, patch schema.Parsed[Session]) (Session, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Session{}, err
	}

	updated := current
	patch.ApplyTo(&updated)
	updated.ID = current.ID
	updated.CreatedAt = current.CreatedAt
	updated.ClientID = current.ClientID
	updated.AnimalID = current.AnimalID
	updated.Date = updated.Date.UTC()

	if err := s.repo.Update(ctx, updated); err != nil {
		return Session{}, fmt.Errorf("update session: %w", err)
	}
	return updated, nil
}
