package questionnaires

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-care-portal/internal/domain/sessions"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("session not found")
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

// Submit guarda un cuestionario. Solo el cliente de la consulta (o un
// admin, asAdmin) puede responderlo.
func (s *Service) Submit(ctx context.Context, userID string, asAdmin bool, in Questionnaire) (Questionnaire, error) {
	if err := s.checkAccess(ctx, userID, asAdmin, in.SessionID); err != nil {
		return Questionnaire{}, err
	}

	if len(bytes.TrimSpace(in.Answers)) == 0 {
		in.Answers = json.RawMessage(`null`)
	}

	q := in
	if strings.TrimSpace(q.ID) == "" {
		q.ID = uuid.NewString()
	}
	q.Type = strings.TrimSpace(q.Type)
	q.CreatedAt = s.now()

	if err := s.repo.Create(ctx, q); err != nil {
		return Questionnaire{}, fmt.Errorf("create questionnaire: %w", err)
	}
	return q, nil
}

func (s *Service) ListBySession(ctx context.Context, userID string, asAdmin bool, sessionID string) ([]Questionnaire, error) {
	if err := s.checkAccess(ctx, userID, asAdmin, sessionID); err != nil {
		return nil, err
	}
	return s.repo.ListBySession(ctx, sessionID)
}

func (s *Service) checkAccess(ctx context.Context, userID string, asAdmin bool, sessionID string) error {
	sess, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrNotFound):
			return ErrNotFound
		case errors.Is(err, sessions.ErrInvalidInput):
			return ErrInvalidInput
		}
		return err
	}
	if !asAdmin && sess.ClientID != userID {
		return ErrForbidden
	}
	return nil
}
