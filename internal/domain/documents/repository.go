package documents

import "context"

type Repository interface {
	Create(ctx context.Context, d Document) error
	GetByID(ctx context.Context, id string) (Document, error)
	ListByClient(ctx context.Context, clientID string) ([]Document, error)
	Delete(ctx context.Context, id string) error
}
