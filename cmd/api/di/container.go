package di

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"local-auth-service/cmd/api/infrastructure"
	ginhandler "local-auth-service/internal/adapter/gin/handler"
	"local-auth-service/internal/adapter/gin/middleware"
	"local-auth-service/internal/adapter/repository/session"
	"local-auth-service/internal/adapter/repository/userstore"
	"local-auth-service/internal/adapter/storage/coalesced"
	"local-auth-service/internal/adapter/storage/memory"
	"local-auth-service/internal/adapter/storage/redisstore"
	"local-auth-service/internal/adapter/storage/sqlstore"
	"local-auth-service/internal/config"
	domaintheme "local-auth-service/internal/domain/theme"
	"local-auth-service/internal/usecase/auth"
	"local-auth-service/internal/usecase/theme"
	"local-auth-service/pkg/kvstore"
	redisclient "local-auth-service/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *zap.Logger
	DB           *gorm.DB
	RedisClient  *redisclient.Client
	Store        kvstore.Store
	AuthUC       auth.Service
	ThemeUC      theme.Service
	AuthHandler  *ginhandler.AuthHandler
	ThemeHandler *ginhandler.ThemeHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(ctx context.Context, cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	c := &Container{Config: cfg, Logger: l}

	if cfg.UsesRedis() {
		rdb, err := infrastructure.NewRedisClient(ctx, cfg, l)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
		c.RedisClient = rdb
	}

	store, err := c.newStore(ctx)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.Store = store

	return c.wire(), nil
}

// NewWithStore builds a container around an existing store, skipping all
// infrastructure. Close releases nothing.
func NewWithStore(cfg *config.Config, l *zap.Logger, store kvstore.Store) *Container {
	c := &Container{Config: cfg, Logger: l, Store: store}
	return c.wire()
}

func (c *Container) newStore(ctx context.Context) (kvstore.Store, error) {
	cfg := c.Config
	l := c.Logger

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		l.Warn("using in-memory storage; state is lost on exit")
		return memory.New(), nil

	case config.DriverSQLite, config.DriverPostgres:
		db, err := infrastructure.NewDatabase(cfg, l)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		c.DB = db

		store := sqlstore.New(db, l)
		if err := store.Migrate(ctx); err != nil {
			return nil, err
		}
		if cfg.Storage.Driver == config.DriverPostgres {
			return coalesced.New(store, l), nil
		}
		return store, nil

	case config.DriverRedis:
		return coalesced.New(redisstore.New(c.RedisClient.Client, cfg.Redis.KeyPrefix, l), l), nil
	}

	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

func (c *Container) wire() *Container {
	cfg := c.Config
	l := c.Logger

	users := userstore.New(c.Store, l)
	sessions := session.New(c.Store, l)

	authUC := auth.New(users, sessions, l, auth.Config{
		VerifyPassword: cfg.Auth.VerifyPassword,
		BcryptCost:     cfg.Auth.BcryptCost,
	})
	themeUC := theme.New(c.Store, domaintheme.Mode(cfg.Theme.DefaultMode), l)

	c.AuthUC = authUC
	c.ThemeUC = themeUC
	c.AuthHandler = ginhandler.NewAuthHandler(authUC, l)
	c.ThemeHandler = ginhandler.NewThemeHandler(themeUC, l)
	return c
}

// RateLimit returns the rate limiter settings for the router.
func (c *Container) RateLimit() middleware.RateLimiterConfig {
	return middleware.RateLimiterConfig{
		RequestsPerSecond: c.Config.RateLimit.RequestsPerSecond,
		BurstCapacity:     c.Config.RateLimit.BurstCapacity,
		Enabled:           c.Config.RateLimit.Enabled,
	}
}

// Redis returns the raw client, or nil when Redis is not configured.
func (c *Container) Redis() *goredis.Client {
	if c.RedisClient == nil {
		return nil
	}
	return c.RedisClient.Client
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	return errors.Join(errs...)
}
