package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"local-auth-service/internal/adapter/gin/handler"
	"local-auth-service/internal/adapter/gin/middleware"
	"local-auth-service/pkg/logger"
)

// Deps groups everything the router needs.
type Deps struct {
	Auth        *handler.AuthHandler
	Theme       *handler.ThemeHandler
	RedisClient *redis.Client // optional; nil disables rate limiting
	RateLimit   middleware.RateLimiterConfig
	ServiceName string
	Log         *zap.Logger
}

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(d Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware
	router.Use(logger.RequestID())
	router.Use(logger.AccessLog(d.Log))
	router.Use(logger.Recovery(d.Log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": d.ServiceName,
		})
	})

	v1 := router.Group("/v1")
	{
		// Only credential endpoints are rate limited
		authGroup := v1.Group("/auth")
		{
			limited := authGroup.Group("", middleware.RateLimiter(d.RedisClient, d.RateLimit, d.Log))
			limited.POST("/signup", d.Auth.Signup)
			limited.POST("/login", d.Auth.Login)

			authGroup.POST("/logout", d.Auth.Logout)
			authGroup.GET("/me", d.Auth.Me)
		}

		themeGroup := v1.Group("/theme")
		{
			themeGroup.GET("", d.Theme.Get)
			themeGroup.PUT("", d.Theme.Set)
			themeGroup.POST("/toggle", d.Theme.Toggle)
		}
	}

	return router
}
