package postgres

import (
	"context"
	"database/sql"
	"errors"

	"pet-care-portal/internal/domain/documents"
)

type DocumentsRepo struct {
	db *sql.DB
}

func NewDocumentsRepo(db *sql.DB) *DocumentsRepo {
	return &DocumentsRepo{db: db}
}

const documentColumns = `id, client_id, animal_id, name, content_type, size, object_key, created_at`

func (r *DocumentsRepo) Create(ctx context.Context, d documents.Document) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO document (`+documentColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		d.ID, d.ClientID, d.AnimalID, d.Name, d.ContentType, d.Size, d.ObjectKey, d.CreatedAt,
	)
	return err
}

func (r *DocumentsRepo) GetByID(ctx context.Context, id string) (documents.Document, error) {
	d, err := scanDocument(r.db.QueryRowContext(ctx, `SELECT `+documentColumns+` FROM document WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return documents.Document{}, documents.ErrNotFound
	}
	return d, err
}

func (r *DocumentsRepo) ListByClient(ctx context.Context, clientID string) ([]documents.Document, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+documentColumns+`
		FROM document
		WHERE client_id = $1
		ORDER BY created_at DESC
	`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]documents.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DocumentsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM document WHERE id = $1`, id)
	return affectedOne(res, err, documents.ErrNotFound)
}

func scanDocument(s scanner) (documents.Document, error) {
	var d documents.Document
	err := s.Scan(&d.ID, &d.ClientID, &d.AnimalID, &d.Name, &d.ContentType, &d.Size, &d.ObjectKey, &d.CreatedAt)
	return d, err
}
