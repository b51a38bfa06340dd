package postgres

import (
	"context"
	"database/sql"
	"errors"

	"pet-care-portal/internal/domain/reports"
)

type ReportsRepo struct {
	db *sql.DB
}

func NewReportsRepo(db *sql.DB) *ReportsRepo {
	return &ReportsRepo{db: db}
}

// Upsert necesita un índice único en report(session_id).
func (r *ReportsRepo) Upsert(ctx context.Context, rp reports.Report) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO report (id, created_at, session_id, content, document_url)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (session_id) DO UPDATE
		SET content = EXCLUDED.content,
		    document_url = EXCLUDED.document_url
	`,
		rp.ID, rp.CreatedAt, rp.SessionID, rp.Content, rp.DocumentURL,
	)
	return err
}

func (r *ReportsRepo) GetBySession(ctx context.Context, sessionID string) (reports.Report, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, created_at, session_id, content, document_url
		FROM report
		WHERE session_id = $1
	`, sessionID)

	var rp reports.Report
	if err := row.Scan(&rp.ID, &rp.CreatedAt, &rp.SessionID, &rp.Content, &rp.DocumentURL); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return reports.Report{}, reports.ErrNotFound
		}
		return reports.Report{}, err
	}
	return rp, nil
}
