package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"local-auth-service/cmd/api/di"
	ginrouter "local-auth-service/internal/adapter/gin/router"
)

// SetupGinServer creates and configures the Gin REST API server
func SetupGinServer(c *di.Container, addr string, l *zap.Logger) *http.Server {
	router := ginrouter.SetupRouter(ginrouter.Deps{
		Auth:        c.AuthHandler,
		Theme:       c.ThemeHandler,
		RedisClient: c.Redis(),
		RateLimit:   c.RateLimit(),
		ServiceName: c.Config.Logger.ServiceName,
		Log:         l,
	})

	l.Info("Gin REST API configured", zap.String("address", addr))

	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
