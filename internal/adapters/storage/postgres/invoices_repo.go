package postgres

import (
	"context"
	"database/sql"
	"errors"

	"pet-care-portal/internal/domain/invoices"
)

type InvoicesRepo struct {
	db *sql.DB
}

func NewInvoicesRepo(db *sql.DB) *InvoicesRepo {
	return &InvoicesRepo{db: db}
}

const invoiceColumns = `
	id, created_at, client_id, session_id,
	amount::float8, to_char(issued_at, 'YYYY-MM-DD'), invoice_url`

func (r *InvoicesRepo) Create(ctx context.Context, inv invoices.Invoice) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO invoice (
			id, created_at, client_id, session_id,
			amount, issued_at, invoice_url
		) VALUES ($1,$2,$3,$4,$5,$6::date,$7)
	`,
		inv.ID, inv.CreatedAt, inv.ClientID, inv.SessionID,
		inv.Amount, inv.IssuedAt, inv.InvoiceURL,
	)
	return err
}

func (r *InvoicesRepo) GetByID(ctx context.Context, id string) (invoices.Invoice, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+invoiceColumns+` FROM invoice WHERE id = $1`, id)

	inv, err := scanInvoice(row)
	if errors.Is(err, sql.ErrNoRows) {
		return invoices.Invoice{}, invoices.ErrNotFound
	}
	return inv, err
}

func (r *InvoicesRepo) List(ctx context.Context, f invoices.ListFilter) ([]invoices.Invoice, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+invoiceColumns+`
		FROM invoice
		WHERE ($1::uuid IS NULL OR client_id = $1)
		ORDER BY issued_at DESC, created_at DESC
	`, nullString(f.ClientID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]invoices.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func scanInvoice(s scanner) (invoices.Invoice, error) {
	var inv invoices.Invoice
	err := s.Scan(
		&inv.ID, &inv.CreatedAt, &inv.ClientID, &inv.SessionID,
		&inv.Amount, &inv.IssuedAt, &inv.InvoiceURL,
	)
	return inv, err
}
