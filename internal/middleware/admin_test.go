package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"pet-care-portal/internal/platform/logger"
	"pet-care-portal/internal/ports/auth"
)

const adminID = "6f1c2a9e-3b4d-4e5f-8a7b-9c0d1e2f3a4b"

func guarded() http.Handler {
	return RequireAdmin(NewAdminList(adminID))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestRequireAdmin_NoSessionRedirectsHome(t *testing.T) {
	rec := httptest.NewRecorder()
	guarded().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/clients", nil))

	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestRequireAdmin_OtherUserRedirectsHome(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin/clients", nil)
	req = req.WithContext(WithClaims(req.Context(), auth.Claims{UserID: "someone-else"}))

	rec := httptest.NewRecorder()
	guarded().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestRequireAdmin_ExactMatchOnly(t *testing.T) {
	for _, uid := range []string{adminID[:10], adminID + "0", "6F1C2A9E-3B4D-4E5F-8A7B-9C0D1E2F3A4B"} {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req = req.WithContext(WithClaims(req.Context(), auth.Claims{UserID: uid}))
		rec := httptest.NewRecorder()
		guarded().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusTemporaryRedirect, rec.Code, "uid %q", uid)
	}
}

func TestRequireAdmin_AdminPasses(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin/clients", nil)
	req = req.WithContext(WithClaims(req.Context(), auth.Claims{UserID: adminID}))

	rec := httptest.NewRecorder()
	guarded().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdmin_EmptyListDeniesEveryone(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req = req.WithContext(WithClaims(req.Context(), auth.Claims{UserID: adminID}))
	rec := httptest.NewRecorder()

	RequireAdmin(NewAdminList())(http.NotFoundHandler()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
}

func fakeVerifier(claims auth.Claims, err error) auth.AuthVerifier {
	return auth.VerifierFunc(func(context.Context, string) (auth.Claims, error) {
		return claims, err
	})
}

func TestAuthContext(t *testing.T) {
	var got auth.Claims
	var ok bool
	h := func(v auth.AuthVerifier) http.Handler {
		return AuthContext(v)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			got, ok = GetClaims(r.Context())
		}))
	}

	t.Run("dev header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(DebugUserHeader, "u-1")
		h(nil).ServeHTTP(httptest.NewRecorder(), req)
		assert.True(t, ok)
		assert.Equal(t, "u-1", got.UserID)
	})

	t.Run("bearer verified", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer tok")
		h(fakeVerifier(auth.Claims{UserID: "u-2"}, nil)).ServeHTTP(httptest.NewRecorder(), req)
		assert.True(t, ok)
		assert.Equal(t, "u-2", got.UserID)
	})

	t.Run("bearer rejected stays anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer tok")
		h(fakeVerifier(auth.Claims{}, errors.New("expired"))).ServeHTTP(httptest.NewRecorder(), req)
		assert.False(t, ok)
	})

	t.Run("static tokens", func(t *testing.T) {
		v := auth.StaticTokens(map[string]auth.Claims{"tok": {UserID: "u-3"}})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "bearer tok")
		h(v).ServeHTTP(httptest.NewRecorder(), req)
		assert.True(t, ok)
		assert.Equal(t, "u-3", got.UserID)

		req = httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer other")
		h(v).ServeHTTP(httptest.NewRecorder(), req)
		assert.False(t, ok)
	})

	t.Run("session cookie", func(t *testing.T) {
		v := auth.StaticTokens(map[string]auth.Claims{"cookie-tok": {UserID: "u-4"}})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "cookie-tok"})
		h(v).ServeHTTP(httptest.NewRecorder(), req)
		assert.True(t, ok)
		assert.Equal(t, "u-4", got.UserID)
	})

	t.Run("debug header ignored with verifier", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(DebugUserHeader, "u-1")
		h(fakeVerifier(auth.Claims{UserID: "u-2"}, nil)).ServeHTTP(httptest.NewRecorder(), req)
		assert.False(t, ok)
	})
}

func TestRecover(t *testing.T) {
	h := Recover(logger.Nop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
