package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"pet-care-portal/internal/domain/modrequests"
)

type ModificationRequestsRepo struct {
	db *sql.DB
}

func NewModificationRequestsRepo(db *sql.DB) *ModificationRequestsRepo {
	return &ModificationRequestsRepo{db: db}
}

const modRequestColumns = `
	id, animal_id, client_id,
	changes::text, status, photo_url,
	created_at, processed_at`

func (r *ModificationRequestsRepo) Create(ctx context.Context, m modrequests.ModificationRequest) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO animal_modification_request (
			id, animal_id, client_id,
			changes, status, photo_url,
			created_at, processed_at
		) VALUES ($1,$2,$3,$4::jsonb,$5,$6,$7,$8)
	`,
		m.ID, m.AnimalID, m.ClientID,
		string(m.Changes), string(m.Status), m.PhotoURL,
		m.CreatedAt, m.ProcessedAt,
	)
	return err
}

// Update solo toca lo que cambia después de crear: foto y estado.
// Es un compare-and-set sobre status.
func (r *ModificationRequestsRepo) Update(ctx context.Context, m modrequests.ModificationRequest, from modrequests.Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE animal_modification_request
		SET
			status = $2,
			photo_url = $3,
			processed_at = $4
		WHERE id = $1 AND status = $5
	`,
		m.ID, string(m.Status), m.PhotoURL, m.ProcessedAt, string(from),
	)
	err = affectedOne(res, err, modrequests.ErrBadState)
	if !errors.Is(err, modrequests.ErrBadState) {
		return err
	}

	// 0 filas: o no existe o ya cambió de estado
	var exists bool
	if qerr := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM animal_modification_request WHERE id = $1)`, m.ID,
	).Scan(&exists); qerr != nil {
		return qerr
	}
	if !exists {
		return modrequests.ErrNotFound
	}
	return modrequests.ErrBadState
}

func (r *ModificationRequestsRepo) GetByID(ctx context.Context, id string) (modrequests.ModificationRequest, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+modRequestColumns+` FROM animal_modification_request WHERE id = $1`, id)

	m, err := scanModRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return modrequests.ModificationRequest{}, modrequests.ErrNotFound
	}
	return m, err
}

func (r *ModificationRequestsRepo) List(ctx context.Context, f modrequests.ListFilter) ([]modrequests.ModificationRequest, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+modRequestColumns+`
		FROM animal_modification_request
		WHERE ($1::uuid IS NULL OR animal_id = $1)
		  AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at DESC
	`, nullString(f.AnimalID), nullString(string(f.Status)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]modrequests.ModificationRequest, 0)
	for rows.Next() {
		m, err := scanModRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanModRequest(s scanner) (modrequests.ModificationRequest, error) {
	var (
		m       modrequests.ModificationRequest
		changes []byte
		status  string
	)
	err := s.Scan(
		&m.ID, &m.AnimalID, &m.ClientID,
		&changes, &status, &m.PhotoURL,
		&m.CreatedAt, &m.ProcessedAt,
	)
	if err != nil {
		return modrequests.ModificationRequest{}, err
	}
	m.Changes = json.RawMessage(changes)
	m.Status = modrequests.Status(status)
	return m, nil
}
