package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"local-auth-service/cmd/api/di"
	"local-auth-service/internal/adapter/storage/memory"
	"local-auth-service/internal/config"
)

func newTestServer(t *testing.T) *Server {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)
	cfg.Storage.Driver = config.DriverMemory
	cfg.App.HTTPPort = "0"

	l := zaptest.NewLogger(t)
	return New(cfg, l, di.NewWithStore(cfg, l, memory.New()))
}

func TestSetupGinServer_RoutesSignupAndMe(t *testing.T) {
	srv := newTestServer(t)
	assert.Equal(t, ":0", srv.HTTP.Addr)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/signup",
		strings.NewReader(`{"name":"Ana","email":"ana@example.com","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	srv.HTTP.Handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	srv.HTTP.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ana@example.com", body["email"])
}

func TestServer_StartAndShutdown(t *testing.T) {
	srv := newTestServer(t)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(context.Background()) }()

	// Give the listener a moment to bind.
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
