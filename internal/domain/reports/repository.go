package reports

import "context"

type Repository interface {
	// Upsert guarda el informe de la consulta (uno por sesión).
	Upsert(ctx context.Context, rp Report) error
	GetBySession(ctx context.Context, sessionID string) (Report, error)
}
