package questionnaires

import "context"

type Repository interface {
	Create(ctx context.Context, q Questionnaire) error
	ListBySession(ctx context.Context, sessionID string) ([]Questionnaire, error)
}
