package calendar

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-care-portal/internal/middleware"
	"pet-care-portal/internal/platform/httpclient"
	"pet-care-portal/internal/platform/logger"
)

const adminID = "9d0e1f2a-3b4c-4d5e-8f6a-7b8c9d0e1f2a"

func newTestServer(t *testing.T, src Source) *httptest.Server {
	t.Helper()
	svc := NewService(src, testCalendars[:2], 2)
	t.Cleanup(svc.Close)

	r := chi.NewRouter()
	r.Use(middleware.AuthContext(nil))
	RegisterRoutes(r, svc, middleware.NewAdminList(adminID), logger.Nop())

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T, srv *httptest.Server, uid string) *httpclient.Client {
	t.Helper()
	c, err := httpclient.NewWithHTTPClient(srv.Client(), srv.URL)
	require.NoError(t, err)
	if uid != "" {
		c.Headers = map[string]string{middleware.DebugUserHeader: uid}
	}
	return c
}

func TestFetchEvents_Admin(t *testing.T) {
	srv := newTestServer(t, &fakeSource{events: map[string][]Event{
		"osteo@group.calendar.google.com": {{ID: "e1", Summary: "Luna"}},
	}})

	agendas, err := FetchEvents(context.Background(), newClient(t, srv, adminID))
	require.NoError(t, err)
	require.Len(t, agendas, 2)
	assert.Equal(t, "e1", agendas[0].Events[0].ID)
}

func TestFetchEvents_EnvelopeErrors(t *testing.T) {
	srv := newTestServer(t, &fakeSource{})

	cases := map[string]string{
		"":                                     "unauthorized",
		"11111111-2222-4333-8444-555555555555": "forbidden",
	}
	for uid, msg := range cases {
		_, err := FetchEvents(context.Background(), newClient(t, srv, uid))

		var envErr *httpclient.EnvelopeError
		require.ErrorAs(t, err, &envErr, "uid %q", uid)
		assert.Equal(t, msg, envErr.Error())
	}
}

func TestFetchEvents_UpstreamFailure(t *testing.T) {
	srv := newTestServer(t, &fakeSource{fail: map[string]error{
		"osteo@group.calendar.google.com": errors.New("google: 403 rate limited"),
	}})

	_, err := FetchEvents(context.Background(), newClient(t, srv, adminID))

	var envErr *httpclient.EnvelopeError
	require.ErrorAs(t, err, &envErr)
	assert.Contains(t, envErr.Error(), "rate limited")
}

func TestEventsHandler_BadRange(t *testing.T) {
	srv := newTestServer(t, &fakeSource{})

	req, err := http.NewRequest(http.MethodGet, srv.URL+EventsPath+"?from=yesterday", nil)
	require.NoError(t, err)
	req.Header.Set(middleware.DebugUserHeader, adminID)

	res, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}
