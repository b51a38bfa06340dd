package invoices

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-care-portal/internal/domain/sessions"
	"pet-care-portal/internal/schema"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("invoice not found")
)

type Service struct {
	repo     Repository
	sessions *sessions.Service
	now      func() time.Time
}

func NewService(repo Repository, sessionsSvc *sessions.Service) *Service {
	return &Service{
		repo:     repo,
		sessions: sessionsSvc,
		now:      time.Now,
	}
}

// Create emite una factura para una consulta. La consulta tiene que ser del
// mismo cliente que la factura.
func (s *Service) Create(ctx context.Context, in Invoice) (Invoice, error) {
	if in.Amount < 0 {
		return Invoice{}, fmt.Errorf("%w: amount must be >= 0", ErrInvalidInput)
	}

	sess, err := s.sessions.GetByID(ctx, in.SessionID)
	if err != nil {
		if errors.Is(err, sessions.ErrNotFound) {
			return Invoice{}, fmt.Errorf("%w: session not found", ErrInvalidInput)
		}
		return Invoice{}, err
	}
	if sess.ClientID != in.ClientID {
		return Invoice{}, fmt.Errorf("%w: session does not belong to client", ErrInvalidInput)
	}

	out := in
	if strings.TrimSpace(out.ID) == "" {
		out.ID = uuid.NewString()
	}
	out.CreatedAt = s.now()

	if err := s.repo.Create(ctx, out); err != nil {
		return Invoice{}, fmt.Errorf("create invoice: %w", err)
	}
	return out, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Invoice, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Invoice{}, ErrInvalidInput
	}
	if !schema.IsUUID(id) {
		return Invoice{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Invoice, error) {
	if filter.ClientID != "" && !schema.IsUUID(filter.ClientID) {
		return []Invoice{}, nil
	}
	return s.repo.List(ctx, filter)
}
