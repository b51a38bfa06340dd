package clients

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
	ErrNotFound     = errors.New("client not found")
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

// Create da de alta un cliente ya validado con InsertSchema.
// Si no viene id se genera uno (cliente sin cuenta todavía).
func (s *Service) Create(ctx context.Context, in Client) (Client, error) {
	if strings.TrimSpace(in.Email) == "" {
		return Client{}, ErrInvalidInput
	}

	now := s.now()
	c := in
	if strings.TrimSpace(c.ID) == "" {
		c.ID = uuid.NewString()
	}
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.FirstName = strings.TrimSpace(c.FirstName)
	c.LastName = strings.TrimSpace(c.LastName)
	c.CreatedAt = now
	c.UpdatedAt = now

	if err := s.repo.Create(ctx, c); err != nil {
		return Client{}, fmt.Errorf("create client: %w", err)
	}
	return c, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Client, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Client{}, ErrInvalidInput
	}
	if !schema.IsUUID(id) {
		return Client{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Client, error) {
	return s.repo.List(ctx, filter)
}

// Update aplica un patch (UpdateSchema). id y created_at nunca cambian.
func (s *Service) Update(ctx context.Context, id string, patch schema.Parsed[Client]) (Client, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Client{}, err
	}

	updated := current
	patch.ApplyTo(&updated)
	updated.ID = current.ID
	updated.CreatedAt = current.CreatedAt
	updated.Email = strings.ToLower(strings.TrimSpace(updated.Email))
	updated.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, updated); err != nil {
		return Client{}, fmt.Errorf("update client: %w", err)
	}
	return updated, nil
}

// UpdateSelf es el patch que hace el propio cliente: no puede cambiar flags.
func (s *Service) UpdateSelf(ctx context.Context, id string, patch schema.Parsed[Client]) (Client, error) {
	for _, f := range selfLocked {
		if patch.Has(f) {
			return Client{}, fmt.Errorf("%w: %s cannot be changed", ErrForbidden, f)
		}
	}
	return s.Update(ctx, id, patch)
}

func (s *Service) Archive(ctx context.Context, id string) (Client, error) {
	return s.setArchived(ctx, id, true)
}

func (s *Service) Unarchive(ctx context.Context, id string) (Client, error) {
	return s.setArchived(ctx, id, false)
}

func (s *Service) setArchived(ctx context.Context, id string, archived bool) (Client, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return Client{}, err
	}

	// Idempotente
	if c.IsArchived == archived {
		return c, nil
	}

	c.IsArchived = archived
	c.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, c); err != nil {
		return Client{}, fmt.Errorf("archive client: %w", err)
	}
	return c, nil
}
