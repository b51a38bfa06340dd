package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"
	"time"

	"pet-care-portal/internal/ports/storage"
)

type object struct {
	data        []byte
	contentType string
}

// Store es el object store en memoria para dev y tests.
type Store struct {
	bucket string
	now    func() time.Time

	mu      sync.RWMutex
	objects map[string]object
}

func New(bucket string) *Store {
	if strings.TrimSpace(bucket) == "" {
		bucket = "documents"
	}
	return &Store{
		bucket:  bucket,
		now:     time.Now,
		objects: make(map[string]object),
	}
}

func (s *Store) Put(_ context.Context, key string, body io.Reader, _ int64, contentType string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("memory store: empty key")
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("memory store: read body: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = object{data: data, contentType: contentType}
	return nil
}

func (s *Store) Get(_ context.Context, key string) (io.ReadCloser, storage.ObjectInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.objects[key]
	if !ok {
		return nil, storage.ObjectInfo{}, storage.ErrObjectNotFound
	}
	info := storage.ObjectInfo{Key: key, Size: int64(len(o.data)), ContentType: o.contentType}
	return io.NopCloser(bytes.NewReader(o.data)), info, nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[key]; !ok {
		return storage.ErrObjectNotFound
	}
	delete(s.objects, key)
	return nil
}

// PresignGet no firma nada: devuelve la URL con el vencimiento como query.
func (s *Store) PresignGet(_ context.Context, key string, ttl time.Duration) (string, error) {
	s.mu.RLock()
	_, ok := s.objects[key]
	s.mu.RUnlock()
	if !ok {
		return "", storage.ErrObjectNotFound
	}

	q := url.Values{}
	q.Set("expires", fmt.Sprint(s.now().Add(ttl).Unix()))
	return s.URL(key) + "?" + q.Encode(), nil
}

func (s *Store) URL(key string) string {
	return "memory://" + s.bucket + "/" + strings.TrimLeft(key, "/")
}

// Len es útil en tests.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
