package modrequests

import "context"

type Repository interface {
	Create(ctx context.Context, m ModificationRequest) error
	// Update persiste foto y estado solo si el estado guardado sigue siendo
	// from; si no, ErrBadState.
	Update(ctx context.Context, m ModificationRequest, from Status) error
	GetByID(ctx context.Context, id string) (ModificationRequest, error)
	List(ctx context.Context, filter ListFilter) ([]ModificationRequest, error)
}
