package reviews

import "context"

type Repository interface {
	Create(ctx context.Context, rv Review) error
	Update(ctx context.Context, rv Review) error
	GetByID(ctx context.Context, id string) (Review, error)
	GetBySession(ctx context.Context, sessionID string) (Review, error)
	List(ctx context.Context, filter ListFilter) ([]Review, error)
}
