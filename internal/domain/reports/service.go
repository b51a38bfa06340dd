package reports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pet-care-portal/internal/domain/sessions"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("report not found")
	ErrForbidden    = errors.New("forbidden")
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

// Save crea o reemplaza el informe de la consulta. Si ya había uno se
// conservan id y created_at.
func (s *Service) Save(ctx context.Context, in Report) (Report, error) {
	if _, err := s.sessions.GetByID(ctx, in.SessionID); err != nil {
		if errors.Is(err, sessions.ErrNotFound) {
			return Report{}, fmt.Errorf("%w: session not found", ErrInvalidInput)
		}
		return Report{}, err
	}

	rp := in
	existing, err := s.repo.GetBySession(ctx, in.SessionID)
	switch {
	case err == nil:
		rp.ID = existing.ID
		rp.CreatedAt = existing.CreatedAt
	case errors.Is(err, ErrNotFound):
		rp.ID = uuid.NewString()
		rp.CreatedAt = s.now()
	default:
		return Report{}, err
	}

	if err := s.repo.Upsert(ctx, rp); err != nil {
		return Report{}, fmt.Errorf("save report: %w", err)
	}
	return rp, nil
}

// GetForUser devuelve el informe si el usuario es el cliente de la consulta
// (o admin).
func (s *Service) GetForUser(ctx context.Context, userID string, asAdmin bool, sessionID string) (Report, error) {
	sess, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sessions.ErrNotFound) {
			return Report{}, ErrNotFound
		}
		return Report{}, err
	}
	if !asAdmin && sess.ClientID != userID {
		return Report{}, ErrForbidden
	}
	return s.repo.GetBySession(ctx, sessionID)
}
