package memory

import (
	"context"
	"strings"

	"pet-care-portal/internal/domain/animals"
	"pet-care-portal/internal/domain/clients"
	"pet-care-portal/internal/domain/documents"
	"pet-care-portal/internal/domain/invoices"
	"pet-care-portal/internal/domain/modrequests"
	"pet-care-portal/internal/domain/questionnaires"
	"pet-care-portal/internal/domain/reports"
	"pet-care-portal/internal/domain/reviews"
	"pet-care-portal/internal/domain/sessions"
)

// ---- clients

type clientRepo struct{ t *table[clients.Client] }

func NewClientRepo() clients.Repository {
	return &clientRepo{t: newTable(func(c clients.Client) string { return c.ID }, clients.ErrNotFound)}
}

func (r *clientRepo) Create(_ context.Context, c clients.Client) error { return r.t.create(c) }
func (r *clientRepo) Update(_ context.Context, c clients.Client) error { return r.t.update(c) }
func (r *clientRepo) GetByID(_ context.Context, id string) (clients.Client, error) {
	return r.t.get(id)
}

func (r *clientRepo) List(_ context.Context, f clients.ListFilter) ([]clients.Client, error) {
	return r.t.find(func(c clients.Client) bool {
		return f.Archived == nil || c.IsArchived == *f.Archived
	}, func(a, b clients.Client) bool {
		if a.LastName != b.LastName {
			return strings.ToLower(a.LastName) < strings.ToLower(b.LastName)
		}
		return strings.ToLower(a.FirstName) < strings.ToLower(b.FirstName)
	}), nil
}

// ---- animals

type animalRepo struct{ t *table[animals.Animal] }

func NewAnimalRepo() animals.Repository {
	return &animalRepo{t: newTable(func(a animals.Animal) string { return a.ID }, animals.ErrNotFound)}
}

func (r *animalRepo) Create(_ context.Context, a animals.Animal) error { return r.t.create(a) }
func (r *animalRepo) Update(_ context.Context, a animals.Animal) error { return r.t.update(a) }
func (r *animalRepo) GetByID(_ context.Context, id string) (animals.Animal, error) {
	return r.t.get(id)
}

func (r *animalRepo) ListByClient(_ context.Context, clientID string) ([]animals.Animal, error) {
	return r.t.find(func(a animals.Animal) bool { return a.ClientID == clientID },
		func(a, b animals.Animal) bool { return a.CreatedAt.Before(b.CreatedAt) }), nil
}

// ---- modification requests

type modRequestRepo struct {
	t *table[modrequests.ModificationRequest]
}

func NewModificationRequestRepo() modrequests.Repository {
	return &modRequestRepo{t: newTable(func(m modrequests.ModificationRequest) string { return m.ID }, modrequests.ErrNotFound)}
}

func (r *modRequestRepo) Create(_ context.Context, m modrequests.ModificationRequest) error {
	return r.t.create(m)
}

func (r *modRequestRepo) Update(_ context.Context, m modrequests.ModificationRequest, from modrequests.Status) error {
	return r.t.updateIf(m, func(cur modrequests.ModificationRequest) bool {
		return cur.Status == from
	}, modrequests.ErrBadState)
}

func (r *modRequestRepo) GetByID(_ context.Context, id string) (modrequests.ModificationRequest, error) {
	return r.t.get(id)
}

func (r *modRequestRepo) List(_ context.Context, f modrequests.ListFilter) ([]modrequests.ModificationRequest, error) {
	return r.t.find(func(m modrequests.ModificationRequest) bool {
		if f.AnimalID != "" && m.AnimalID != f.AnimalID {
			return false
		}
		return f.Status == "" || m.Status == f.Status
	}, func(a, b modrequests.ModificationRequest) bool {
		return a.CreatedAt.After(b.CreatedAt)
	}), nil
}

// ---- sessions

type sessionRepo struct{ t *table[sessions.Session] }

func NewSessionRepo() sessions.Repository {
	return &sessionRepo{t: newTable(func(s sessions.Session) string { return s.ID }, sessions.ErrNotFound)}
}

func (r *sessionRepo) Create(_ context.Context, s sessions.Session) error { return r.t.create(s) }
func (r *sessionRepo) Update(_ context.Context, s sessions.Session) error { return r.t.update(s) }
func (r *sessionRepo) GetByID(_ context.Context, id string) (sessions.Session, error) {
	return r.t.get(id)
}

func (r *sessionRepo) List(_ context.Context, f sessions.ListFilter) ([]sessions.Session, error) {
	return r.t.find(func(s sessions.Session) bool {
		return f.ClientID == "" || s.ClientID == f.ClientID
	}, func(a, b sessions.Session) bool {
		// más recientes primero
		return a.Date.After(b.Date)
	}), nil
}

// ---- invoices

type invoiceRepo struct{ t *table[invoices.Invoice] }

func NewInvoiceRepo() invoices.Repository {
	return &invoiceRepo{t: newTable(func(i invoices.Invoice) string { return i.ID }, invoices.ErrNotFound)}
}

func (r *invoiceRepo) Create(_ context.Context, i invoices.Invoice) error { return r.t.create(i) }
func (r *invoiceRepo) GetByID(_ context.Context, id string) (invoices.Invoice, error) {
	return r.t.get(id)
}

func (r *invoiceRepo) List(_ context.Context, f invoices.ListFilter) ([]invoices.Invoice, error) {
	return r.t.find(func(i invoices.Invoice) bool {
		return f.ClientID == "" || i.ClientID == f.ClientID
	}, func(a, b invoices.Invoice) bool {
		// YYYY-MM-DD ordena bien como string
		return a.IssuedAt > b.IssuedAt
	}), nil
}

// ---- questionnaires

type questionnaireRepo struct {
	t *table[questionnaires.Questionnaire]
}

func NewQuestionnaireRepo() questionnaires.Repository {
	return &questionnaireRepo{t: newTable(func(q questionnaires.Questionnaire) string { return q.ID }, questionnaires.ErrNotFound)}
}

func (r *questionnaireRepo) Create(_ context.Context, q questionnaires.Questionnaire) error {
	return r.t.create(q)
}

func (r *questionnaireRepo) ListBySession(_ context.Context, sessionID string) ([]questionnaires.Questionnaire, error) {
	return r.t.find(func(q questionnaires.Questionnaire) bool { return q.SessionID == sessionID },
		func(a, b questionnaires.Questionnaire) bool { return a.CreatedAt.Before(b.CreatedAt) }), nil
}

// ---- reviews

type reviewRepo struct{ t *table[reviews.Review] }

func NewReviewRepo() reviews.Repository {
	return &reviewRepo{t: newTable(func(rv reviews.Review) string { return rv.ID }, reviews.ErrNotFound)}
}

func (r *reviewRepo) Create(_ context.Context, rv reviews.Review) error { return r.t.create(rv) }
func (r *reviewRepo) Update(_ context.Context, rv reviews.Review) error { return r.t.update(rv) }
func (r *reviewRepo) GetByID(_ context.Context, id string) (reviews.Review, error) {
	return r.t.get(id)
}

func (r *reviewRepo) GetBySession(_ context.Context, sessionID string) (reviews.Review, error) {
	return r.t.first(func(rv reviews.Review) bool { return rv.SessionID == sessionID })
}

func (r *reviewRepo) List(_ context.Context, f reviews.ListFilter) ([]reviews.Review, error) {
	return r.t.find(func(rv reviews.Review) bool { return !f.OnlyVisible || rv.IsVisible },
		func(a, b reviews.Review) bool { return a.CreatedAt.After(b.CreatedAt) }), nil
}

// ---- reports (uno por sesión: la key es session_id)

type reportRepo struct{ t *table[reports.Report] }

func NewReportRepo() reports.Repository {
	return &reportRepo{t: newTable(func(rp reports.Report) string { return rp.SessionID }, reports.ErrNotFound)}
}

func (r *reportRepo) Upsert(_ context.Context, rp reports.Report) error {
	r.t.upsert(rp)
	return nil
}

func (r *reportRepo) GetBySession(_ context.Context, sessionID string) (reports.Report, error) {
	return r.t.get(sessionID)
}

// ---- documents

type documentRepo struct{ t *table[documents.Document] }

func NewDocumentRepo() documents.Repository {
	return &documentRepo{t: newTable(func(d documents.Document) string { return d.ID }, documents.ErrNotFound)}
}

func (r *documentRepo) Create(_ context.Context, d documents.Document) error { return r.t.create(d) }
func (r *documentRepo) GetByID(_ context.Context, id string) (documents.Document, error) {
	return r.t.get(id)
}
func (r *documentRepo) Delete(_ context.Context, id string) error { return r.t.delete(id) }

func (r *documentRepo) ListByClient(_ context.Context, clientID string) ([]documents.Document, error) {
	return r.t.find(func(d documents.Document) bool { return d.ClientID == clientID },
		func(a, b documents.Document) bool { return a.CreatedAt.After(b.CreatedAt) }), nil
}
