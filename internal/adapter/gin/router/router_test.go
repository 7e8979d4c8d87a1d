package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"local-auth-service/internal/adapter/gin/handler"
	"local-auth-service/internal/adapter/gin/middleware"
	"local-auth-service/internal/adapter/repository/session"
	"local-auth-service/internal/adapter/repository/userstore"
	"local-auth-service/internal/adapter/storage/memory"
	domaintheme "local-auth-service/internal/domain/theme"
	"local-auth-service/internal/usecase/auth"
	"local-auth-service/internal/usecase/theme"
	"local-auth-service/pkg/logger"
)

func setupRouter(t *testing.T, client *redis.Client, rl middleware.RateLimiterConfig) *gin.Engine {
	log := zaptest.NewLogger(t)
	kv := memory.New()

	authUC := auth.New(userstore.New(kv, log), session.New(kv, log), log, auth.Config{})
	themeUC := theme.New(kv, domaintheme.Light, log)

	return SetupRouter(Deps{
		Auth:        handler.NewAuthHandler(authUC, log),
		Theme:       handler.NewThemeHandler(themeUC, log),
		RedisClient: client,
		RateLimit:   rl,
		ServiceName: "local-auth-service",
		Log:         log,
	})
}

func call(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_AuthFlow(t *testing.T) {
	r := setupRouter(t, nil, middleware.RateLimiterConfig{})

	w := call(r, http.MethodGet, "/v1/auth/me", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = call(r, http.MethodPost, "/v1/auth/signup", `{"name":"Jane Doe","email":"jane@example.com","password":"password123"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var signedUp handler.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &signedUp))
	assert.NotEmpty(t, signedUp.ID)
	assert.NotEmpty(t, w.Header().Get(logger.RequestIDHeader))

	w = call(r, http.MethodPost, "/v1/auth/signup", `{"name":"Jane Again","email":"jane@example.com","password":"x"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = call(r, http.MethodPost, "/v1/auth/logout", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = call(r, http.MethodGet, "/v1/auth/me", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = call(r, http.MethodPost, "/v1/auth/login", `{"email":"jane@example.com","password":"password123"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var loggedIn handler.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loggedIn))
	assert.Equal(t, signedUp, loggedIn)

	w = call(r, http.MethodGet, "/v1/auth/me", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = call(r, http.MethodPost, "/v1/auth/login", `{"email":"nonexistent@example.com","password":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_Theme(t *testing.T) {
	r := setupRouter(t, nil, middleware.RateLimiterConfig{})

	w := call(r, http.MethodGet, "/v1/theme", "")
	assert.JSONEq(t, `{"mode":"light","is_dark":false}`, w.Body.String())

	w = call(r, http.MethodPost, "/v1/theme/toggle", "")
	assert.JSONEq(t, `{"mode":"dark","is_dark":true}`, w.Body.String())

	w = call(r, http.MethodPut, "/v1/theme", `{"mode":"light"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = call(r, http.MethodGet, "/v1/theme", "")
	assert.JSONEq(t, `{"mode":"light","is_dark":false}`, w.Body.String())
}

func TestRouter_Health(t *testing.T) {
	r := setupRouter(t, nil, middleware.RateLimiterConfig{})

	w := call(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestRouter_RateLimitsOnlyCredentialRoutes(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	r := setupRouter(t, client, middleware.RateLimiterConfig{
		Enabled:           true,
		RequestsPerSecond: 0.001,
		BurstCapacity:     2,
	})

	body := `{"email":"nobody@example.com","password":"x"}`
	assert.Equal(t, http.StatusUnauthorized, call(r, http.MethodPost, "/v1/auth/login", body).Code)
	assert.Equal(t, http.StatusUnauthorized, call(r, http.MethodPost, "/v1/auth/login", body).Code)
	assert.Equal(t, http.StatusTooManyRequests, call(r, http.MethodPost, "/v1/auth/login", body).Code)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusNotFound, call(r, http.MethodGet, "/v1/auth/me", "").Code)
	}
}
