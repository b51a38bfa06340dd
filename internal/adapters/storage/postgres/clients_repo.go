package postgres

import (
	"context"
	"database/sql"
	"errors"

	"pet-care-portal/internal/domain/clients"
)

type ClientsRepo struct {
	db *sql.DB
}

func NewClientsRepo(db *sql.DB) *ClientsRepo {
	return &ClientsRepo{db: db}
}

const clientColumns = `
	id, created_at, updated_at,
	first_name, last_name, email, phone, address,
	is_admin, is_archived, color`

func (r *ClientsRepo) Create(ctx context.Context, c clients.Client) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO client (`+clientColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		c.ID, c.CreatedAt, c.UpdatedAt,
		c.FirstName, c.LastName, c.Email, c.Phone, c.Address,
		c.IsAdmin, c.IsArchived, c.Color,
	)
	return err
}

func (r *ClientsRepo) Update(ctx context.Context, c clients.Client) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE client
		SET
			updated_at = $2,
			first_name = $3,
			last_name = $4,
			email = $5,
			phone = $6,
			address = $7,
			is_admin = $8,
			is_archived = $9,
			color = $10
		WHERE id = $1
	`,
		c.ID, c.UpdatedAt,
		c.FirstName, c.LastName, c.Email, c.Phone, c.Address,
		c.IsAdmin, c.IsArchived, c.Color,
	)
	return affectedOne(res, err, clients.ErrNotFound)
}

func (r *ClientsRepo) GetByID(ctx context.Context, id string) (clients.Client, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM client WHERE id = $1`, id)

	c, err := scanClient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return clients.Client{}, clients.ErrNotFound
	}
	return c, err
}

func (r *ClientsRepo) List(ctx context.Context, f clients.ListFilter) ([]clients.Client, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+clientColumns+`
		FROM client
		WHERE ($1::boolean IS NULL OR is_archived = $1)
		ORDER BY lower(last_name), lower(first_name)
	`, f.Archived)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]clients.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanClient(s scanner) (clients.Client, error) {
	var c clients.Client
	err := s.Scan(
		&c.ID, &c.CreatedAt, &c.UpdatedAt,
		&c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Address,
		&c.IsAdmin, &c.IsArchived, &c.Color,
	)
	return c, err
}
