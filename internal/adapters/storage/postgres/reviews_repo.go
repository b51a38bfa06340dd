package postgres

import (
	"context"
	"database/sql"
	"errors"

	"pet-care-portal/internal/domain/reviews"
)

type ReviewsRepo struct {
	db *sql.DB
}

func NewReviewsRepo(db *sql.DB) *ReviewsRepo {
	return &ReviewsRepo{db: db}
}

const reviewColumns = `id, created_at, client_id, session_id, is_visible, form_url`

func (r *ReviewsRepo) Create(ctx context.Context, rv reviews.Review) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO review (`+reviewColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6)
	`,
		rv.ID, rv.CreatedAt, rv.ClientID, rv.SessionID, rv.IsVisible, rv.FormURL,
	)
	return err
}

func (r *ReviewsRepo) Update(ctx context.Context, rv reviews.Review) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE review SET is_visible = $2, form_url = $3 WHERE id = $1
	`, rv.ID, rv.IsVisible, rv.FormURL)
	return affectedOne(res, err, reviews.ErrNotFound)
}

func (r *ReviewsRepo) GetByID(ctx context.Context, id string) (reviews.Review, error) {
	return r.getOne(ctx, `SELECT `+reviewColumns+` FROM review WHERE id = $1`, id)
}

func (r *ReviewsRepo) GetBySession(ctx context.Context, sessionID string) (reviews.Review, error) {
	return r.getOne(ctx, `SELECT `+reviewColumns+` FROM review WHERE session_id = $1`, sessionID)
}

func (r *ReviewsRepo) getOne(ctx context.Context, query string, arg string) (reviews.Review, error) {
	rv, err := scanReview(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return reviews.Review{}, reviews.ErrNotFound
	}
	return rv, err
}

func (r *ReviewsRepo) List(ctx context.Context, f reviews.ListFilter) ([]reviews.Review, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+reviewColumns+`
		FROM review
		WHERE (NOT $1 OR is_visible)
		ORDER BY created_at DESC
	`, f.OnlyVisible)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reviews.Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func scanReview(s scanner) (reviews.Review, error) {
	var rv reviews.Review
	err := s.Scan(&rv.ID, &rv.CreatedAt, &rv.ClientID, &rv.SessionID, &rv.IsVisible, &rv.FormURL)
	return rv, err
}
