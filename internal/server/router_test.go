package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/diewo77/go-devis/internal/config"
	"github.com/diewo77/go-devis/internal/services"
	"github.com/diewo77/go-devis/internal/storage"
)

func newTestServer(t *testing.T, rateLimit int) (http.Handler, *services.Workspace) {
	t.Helper()
	ws := services.NewWorkspace(storage.NewSnapshots(storage.NewMemoryBackend(), storage.DefaultKey, storage.DefaultMaxBytes))
	require.NoError(t, ws.Load(context.Background()))
	cfg := config.Defaults()
	cfg.App.RateLimit = rateLimit
	return New(ws, cfg, zap.NewNop()), ws
}

func send(h http.Handler, method, path, accept string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealthzIsPublic(t *testing.T) {
	h, _ := newTestServer(t, 0)
	rr := send(h, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestSessionGate(t *testing.T) {
	h, _ := newTestServer(t, 0)
	for _, path := range []string{"/dashboard", "/quotes", "/invoices", "/draft", "/profile"} {
		rr := send(h, http.MethodGet, path, "application/json")
		assert.Equal(t, http.StatusUnauthorized, rr.Code, path)

		rr = send(h, http.MethodGet, path, "text/html")
		assert.Equal(t, http.StatusSeeOther, rr.Code, path)
		assert.Equal(t, "/login", rr.Header().Get("Location"))
	}

	rr := send(h, http.MethodPost, "/login", "application/json")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = send(h, http.MethodGet, "/dashboard", "application/json")
	assert.Equal(t, http.StatusOK, rr.Code)
	var dash map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dash))
	assert.Contains(t, dash, "recent_quotes")

	send(h, http.MethodPost, "/logout", "application/json")
	rr = send(h, http.MethodGet, "/dashboard", "application/json")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRootRedirects(t *testing.T) {
	h, ws := newTestServer(t, 0)
	rr := send(h, http.MethodGet, "/", "")
	assert.Equal(t, "/login", rr.Header().Get("Location"))
	require.NoError(t, ws.Login(context.Background()))
	rr = send(h, http.MethodGet, "/", "")
	assert.Equal(t, "/dashboard", rr.Header().Get("Location"))
}

func TestSecurityHeadersAndLanguage(t *testing.T) {
	h, ws := newTestServer(t, 0)
	require.NoError(t, ws.Login(context.Background()))
	rr := send(h, http.MethodGet, "/dashboard?lang=en", "text/html")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.True(t, strings.Contains(rr.Body.String(), "Dashboard"))
	assert.Contains(t, rr.Header().Get("Set-Cookie"), "lang=en")
}

func TestRateLimit(t *testing.T) {
	h, _ := newTestServer(t, 2)
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, send(h, http.MethodGet, "/healthz", "").Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
