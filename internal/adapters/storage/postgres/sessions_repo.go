package postgres

import (
	"context"
	"database/sql"
	"errors"

	"pet-care-portal/internal/domain/sessions"
)

type SessionsRepo struct {
	db *sql.DB
}

func NewSessionsRepo(db *sql.DB) *SessionsRepo {
	return &SessionsRepo{db: db}
}

const sessionColumns = `id, created_at, client_id, animal_id, type, date, notes`

func (r *SessionsRepo) Create(ctx context.Context, s sessions.Session) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO session (`+sessionColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		s.ID, s.CreatedAt, s.ClientID, s.AnimalID, string(s.Type), s.Date, s.Notes,
	)
	return err
}

func (r *SessionsRepo) Update(ctx context.Context, s sessions.Session) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE session
		SET
			type = $2,
			date = $3,
			notes = $4
		WHERE id = $1
	`,
		s.ID, string(s.Type), s.Date, s.Notes,
	)
	return affectedOne(res, err, sessions.ErrNotFound)
}

func (r *SessionsRepo) GetByID(ctx context.Context, id string) (sessions.Session, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM session WHERE id = $1`, id)

	s, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return sessions.Session{}, sessions.ErrNotFound
	}
	return s, err
}

func (r *SessionsRepo) List(ctx context.Context, f sessions.ListFilter) ([]sessions.Session, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+sessionColumns+`
		FROM session
		WHERE ($1::uuid IS NULL OR client_id = $1)
		ORDER BY date DESC
	`, nullString(f.ClientID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]sessions.Session, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanSession(sc scanner) (sessions.Session, error) {
	var (
		s  sessions.Session
		tp string
	)
	if err := sc.Scan(&s.ID, &s.CreatedAt, &s.ClientID, &s.AnimalID, &tp, &s.Date, &s.Notes); err != nil {
		return sessions.Session{}, err
	}
	s.Type = sessions.Type(tp)
	return s, nil
}
