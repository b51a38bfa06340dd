package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, status int, body string) *Client {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "anon", r.Header.Get("apikey"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)

	c, err := NewWithBaseURL(ts.URL, 0)
	require.NoError(t, err)
	c.Headers = map[string]string{"apikey": "anon"}
	return c
}

type agenda struct {
	ID string `json:"id"`
}

func TestFetchEnvelope_Success(t *testing.T) {
	c := newTestClient(t, http.StatusOK, `{"success":true,"agendas":[{"id":"a"},{"id":"b"}]}`)

	got, err := FetchEnvelope[[]agenda](context.Background(), c, http.MethodGet, "/api/google/events", "agendas")
	require.NoError(t, err)
	assert.Equal(t, []agenda{{ID: "a"}, {ID: "b"}}, got)
}

func TestFetchEnvelope_FailureUsesBackendMessage(t *testing.T) {
	c := newTestClient(t, http.StatusOK, `{"success":false,"error":"X"}`)

	_, err := FetchEnvelope[[]agenda](context.Background(), c, http.MethodGet, "/api/google/events", "agendas")

	var envErr *EnvelopeError
	require.True(t, errors.As(err, &envErr))
	assert.Equal(t, "X", err.Error())
}

func TestEnvelope_UnwrapKeepsMessageVerbatim(t *testing.T) {
	_, err := Fail[int]("  X  ").Unwrap()

	var envErr *EnvelopeError
	require.True(t, errors.As(err, &envErr))
	assert.Equal(t, "  X  ", envErr.Message)

	_, err = Fail[int]("   ").Unwrap()
	require.Error(t, err)
	assert.Equal(t, FallbackMessage, err.Error())
}

func TestFetchEnvelope_FailureWithoutMessageUsesFallback(t *testing.T) {
	c := newTestClient(t, http.StatusOK, `{"success":false}`)

	_, err := FetchEnvelope[[]agenda](context.Background(), c, http.MethodGet, "/api/google/events", "agendas")
	require.Error(t, err)
	assert.Equal(t, FallbackMessage, err.Error())
}

func TestFetchEnvelope_Non2xxWithEnvelope(t *testing.T) {
	c := newTestClient(t, http.StatusForbidden, `{"success":false,"error":"forbidden"}`)

	_, err := FetchEnvelope[[]agenda](context.Background(), c, http.MethodGet, "/api/google/events", "agendas")
	require.Error(t, err)
	assert.Equal(t, "forbidden", err.Error())
}

func TestFetchEnvelope_Non2xxWithoutEnvelope(t *testing.T) {
	c := newTestClient(t, http.StatusBadGateway, `upstream down`)

	_, err := FetchEnvelope[[]agenda](context.Background(), c, http.MethodGet, "/api/google/events", "agendas")

	var herr *HTTPError
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, http.StatusBadGateway, herr.StatusCode)
	assert.Equal(t, "upstream down", herr.Body)
}

func TestFetchEnvelope_NotAnEnvelope(t *testing.T) {
	c := newTestClient(t, http.StatusOK, `{"agendas":[]}`)

	_, err := FetchEnvelope[[]agenda](context.Background(), c, http.MethodGet, "/api/google/events", "agendas")
	assert.ErrorIs(t, err, ErrNotEnvelope)
}

func TestFetch_DecodesBody(t *testing.T) {
	c := newTestClient(t, http.StatusOK, `{"id":"x"}`)

	got, err := Fetch[agenda](context.Background(), c, http.MethodGet, "/thing", nil)
	require.NoError(t, err)
	assert.Equal(t, "x", got.ID)
}

func TestEnvelope_EncodeRoundTrip(t *testing.T) {
	ok := Succeed([]agenda{{ID: "a"}}).Encode("agendas")
	assert.Equal(t, true, ok["success"])
	assert.Contains(t, ok, "agendas")
	assert.NotContains(t, ok, "error")

	bad := Fail[[]agenda]("nope").Encode("agendas")
	assert.Equal(t, false, bad["success"])
	assert.Equal(t, "nope", bad["error"])
	assert.NotContains(t, bad, "agendas")
}

func TestResolveURL(t *testing.T) {
	c := New(0)
	_, err := c.resolveURL("/x")
	require.Error(t, err)

	u, err := c.resolveURL("https://example.com/x")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/x", u)

	require.NoError(t, c.SetBaseURL("https://example.com/"))
	u, err = c.resolveURL("api/y")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/api/y", u)
}
