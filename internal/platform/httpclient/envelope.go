package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// FallbackMessage se usa cuando un envelope falla sin traer "error".
const FallbackMessage = "request failed"

// DefaultDataKey es la key de datos cuando la ruta no define otra.
const DefaultDataKey = "data"

var ErrNotEnvelope = errors.New("httpclient: response is not an envelope")

// EnvelopeError es el error de un envelope con success=false.
// Error() devuelve el mensaje tal cual vino del backend.
type EnvelopeError struct {
	Message string
}

func (e *EnvelopeError) Error() string { return e.Message }

// Envelope es el tipo único de resultado {success, <data>|error} que
// escriben las rutas del portal y consumen todos los callers.
type Envelope[T any] struct {
	Success bool
	Data    T
	Error   string
}

func Succeed[T any](data T) Envelope[T] {
	return Envelope[T]{Success: true, Data: data}
}

func Fail[T any](msg string) Envelope[T] {
	return Envelope[T]{Success: false, Error: msg}
}

// Unwrap devuelve Data o un *EnvelopeError.
func (e Envelope[T]) Unwrap() (T, error) {
	if e.Success {
		return e.Data, nil
	}
	var zero T
	if strings.TrimSpace(e.Error) == "" {
		return zero, &EnvelopeError{Message: FallbackMessage}
	}
	return zero, &EnvelopeError{Message: e.Error}
}

// Encode arma el objeto JSON usando dataKey para el payload
// (p.ej. "agendas" en /api/google/events).
func (e Envelope[T]) Encode(dataKey string) map[string]any {
	if strings.TrimSpace(dataKey) == "" {
		dataKey = DefaultDataKey
	}
	out := map[string]any{"success": e.Success}
	if e.Success {
		out[dataKey] = e.Data
	} else if e.Error != "" {
		out["error"] = e.Error
	}
	return out
}

// DecodeEnvelope interpreta raw como envelope con la key de datos indicada.
func DecodeEnvelope[T any](raw []byte, dataKey string) (Envelope[T], error) {
	if strings.TrimSpace(dataKey) == "" {
		dataKey = DefaultDataKey
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil || m == nil {
		return Envelope[T]{}, ErrNotEnvelope
	}

	var env Envelope[T]
	s, ok := m["success"]
	if !ok {
		return Envelope[T]{}, ErrNotEnvelope
	}
	if err := json.Unmarshal(s, &env.Success); err != nil {
		return Envelope[T]{}, ErrNotEnvelope
	}

	if v, ok := m["error"]; ok && string(v) != "null" {
		// error puede no ser string en backends viejos; se ignora en ese caso
		_ = json.Unmarshal(v, &env.Error)
	}

	if env.Success {
		if v, ok := m[dataKey]; ok {
			if err := json.Unmarshal(v, &env.Data); err != nil {
				return Envelope[T]{}, fmt.Errorf("httpclient: decode %s: %w", dataKey, err)
			}
		}
	}

	return env, nil
}

// Fetch hace un request y decodifica la respuesta como T.
func Fetch[T any](ctx context.Context, c *Client, method, pathOrURL string, in any) (T, error) {
	var out T
	if err := c.DoJSON(ctx, method, pathOrURL, nil, in, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// FetchEnvelope hace un GET/POST y desenvuelve {success, <dataKey>|error}.
// Con success=false devuelve *EnvelopeError, también cuando el status no es 2xx
// pero el body trae un envelope.
func FetchEnvelope[T any](ctx context.Context, c *Client, method, pathOrURL, dataKey string) (T, error) {
	var zero T

	raw, err := c.do(ctx, method, pathOrURL, nil, nil)
	if err != nil {
		var herr *HTTPError
		if errors.As(err, &herr) {
			if env, derr := DecodeEnvelope[T](raw, dataKey); derr == nil && !env.Success {
				return env.Unwrap()
			}
		}
		return zero, err
	}

	env, err := DecodeEnvelope[T](raw, dataKey)
	if err != nil {
		return zero, err
	}
	return env.Unwrap()
}
