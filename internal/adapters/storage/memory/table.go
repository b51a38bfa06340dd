package memory

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

var ErrAlreadyExists = errors.New("already exists")

// table es el map protegido que usan todos los repos en memoria.
// notFound es el sentinel del dominio, para que los services lo reconozcan
// igual que con postgres.
type table[T any] struct {
	mu       sync.RWMutex
	byID     map[string]T
	id       func(T) string
	notFound error
}

func newTable[T any](id func(T) string, notFound error) *table[T] {
	return &table[T]{
		byID:     make(map[string]T),
		id:       id,
		notFound: notFound,
	}
}

func (t *table[T]) create(v T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.id(v)
	if strings.TrimSpace(id) == "" {
		return errors.New("id required")
	}
	if _, exists := t.byID[id]; exists {
		return ErrAlreadyExists
	}
	t.byID[id] = v
	return nil
}

func (t *table[T]) update(v T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.id(v)
	if _, exists := t.byID[id]; !exists {
		return t.notFound
	}
	t.byID[id] = v
	return nil
}

// updateIf reemplaza v solo si ok(actual); si no, devuelve conflict.
func (t *table[T]) updateIf(v T, ok func(current T) bool, conflict error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.id(v)
	current, exists := t.byID[id]
	if !exists {
		return t.notFound
	}
	if !ok(current) {
		return conflict
	}
	t.byID[id] = v
	return nil
}

func (t *table[T]) upsert(v T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.byID[t.id(v)] = v
}

func (t *table[T]) get(id string) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	v, ok := t.byID[id]
	if !ok {
		var zero T
		return zero, t.notFound
	}
	return v, nil
}

func (t *table[T]) delete(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.byID[id]; !ok {
		return t.notFound
	}
	delete(t.byID, id)
	return nil
}

// find devuelve los que cumplen keep, ordenados con less (estable entre
// llamadas, solo para consistencia en dev).
func (t *table[T]) find(keep func(T) bool, less func(a, b T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]T, 0)
	for _, v := range t.byID {
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	if less != nil {
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	}
	return out
}

// first devuelve el primero que cumple keep.
func (t *table[T]) first(keep func(T) bool) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, v := range t.byID {
		if keep(v) {
			return v, nil
		}
	}
	var zero T
	return zero, t.notFound
}
