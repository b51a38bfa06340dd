package reviews

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
	ErrNotFound     = errors.New("review not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("session already reviewed")
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

// Submit registra la opinión del cliente sobre su consulta. Una por consulta;
// arranca oculta.
func (s *Service) Submit(ctx context.Context, in Review) (Review, error) {
	sess, err := s.sessions.GetByID(ctx, in.SessionID)
	if err != nil {
		if errors.Is(err, sessions.ErrNotFound) {
			return Review{}, fmt.Errorf("%w: session not found", ErrInvalidInput)
		}
		return Review{}, err
	}
	if sess.ClientID != in.ClientID {
		return Review{}, ErrForbidden
	}

	_, err = s.repo.GetBySession(ctx, in.SessionID)
	switch {
	case err == nil:
		return Review{}, ErrConflict
	case !errors.Is(err, ErrNotFound):
		return Review{}, err
	}

	rv := in
	if strings.TrimSpace(rv.ID) == "" {
		rv.ID = uuid.NewString()
	}
	rv.IsVisible = false
	rv.CreatedAt = s.now()

	if err := s.repo.Create(ctx, rv); err != nil {
		return Review{}, fmt.Errorf("create review: %w", err)
	}
	return rv, nil
}

// ListVisible es lo que ve el público.
func (s *Service) ListVisible(ctx context.Context) ([]Review, error) {
	return s.repo.List(ctx, ListFilter{OnlyVisible: true})
}

func (s *Service) List(ctx context.Context) ([]Review, error) {
	return s.repo.List(ctx, ListFilter{})
}

// Update es la moderación del admin (típicamente is_visible).
func (s *Service) Update(ctx context.Context, id string, patch schema.Parsed[Review]) (Review, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Review{}, ErrInvalidInput
	}
	if !schema.IsUUID(id) {
		return Review{}, ErrNotFound
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Review{}, err
	}

	updated := current
	patch.ApplyTo(&updated)
	updated.ID = current.ID
	updated.CreatedAt = current.CreatedAt
	updated.ClientID = current.ClientID
	updated.SessionID = current.SessionID

	if err := s.repo.Update(ctx, updated); err != nil {
		return Review{}, fmt.Errorf("update review: %w", err)
	}
	return updated, nil
}
