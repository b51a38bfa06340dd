package auth

import (
	"context"
	"errors"
)

// ErrNoSession lo devuelven los verifiers cuando el token no corresponde a un usuario.
var ErrNoSession = errors.New("no session")

// AuthVerifier resuelve el usuario de un access token o devuelve error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// VerifierFunc adapta una función a AuthVerifier (tests, tokens estáticos).
type VerifierFunc func(ctx context.Context, token string) (Claims, error)

func (f VerifierFunc) Verify(ctx context.Context, token string) (Claims, error) {
	return f(ctx, token)
}

// StaticTokens verifica contra un mapa token -> usuario. Sirve para entornos
// de prueba sin auth hosteado.
func StaticTokens(tokens map[string]Claims) AuthVerifier {
	return VerifierFunc(func(_ context.Context, token string) (Claims, error) {
		c, ok := tokens[token]
		if !ok {
			return Claims{}, ErrNoSession
		}
		return c, nil
	})
}
