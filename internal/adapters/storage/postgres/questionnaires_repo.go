package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"pet-care-portal/internal/domain/questionnaires"
)

type QuestionnairesRepo struct {
	db *sql.DB
}

func NewQuestionnairesRepo(db *sql.DB) *QuestionnairesRepo {
	return &QuestionnairesRepo{db: db}
}

func (r *QuestionnairesRepo) Create(ctx context.Context, q questionnaires.Questionnaire) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO questionnaire (id, created_at, session_id, type, answers)
		VALUES ($1,$2,$3,$4,$5::jsonb)
	`,
		q.ID, q.CreatedAt, q.SessionID, q.Type, string(q.Answers),
	)
	return err
}

func (r *QuestionnairesRepo) ListBySession(ctx context.Context, sessionID string) ([]questionnaires.Questionnaire, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, created_at, session_id, type, answers::text
		FROM questionnaire
		WHERE session_id = $1
		ORDER BY created_at ASC
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]questionnaires.Questionnaire, 0)
	for rows.Next() {
		var (
			q       questionnaires.Questionnaire
			answers sql.NullString
		)
		if err := rows.Scan(&q.ID, &q.CreatedAt, &q.SessionID, &q.Type, &answers); err != nil {
			return nil, err
		}
		if answers.Valid {
			q.Answers = json.RawMessage(answers.String)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}
