package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var ErrObjectNotFound = errors.New("object not found")

type ObjectInfo struct {
	Key         string
	Size        int64
	ContentType string
}

// ObjectStore es el storage de archivos (documentos, fotos de animales).
// En producción es el storage S3-compatible del backend hosteado.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	Delete(ctx context.Context, key string) error

	// PresignGet devuelve una URL temporal de descarga.
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
	// URL devuelve la URL pública (estable) del objeto.
	URL(key string) string
}
