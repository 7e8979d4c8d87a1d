package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"local-auth-service/pkg/kvstore"
)

// Store implements kvstore.Store on top of Redis strings.
// Entries are written without expiry; the session and the user list must outlive restarts.
type Store struct {
	client *redis.Client
	prefix string
	log    *zap.Logger
}

// New creates a Redis-backed store. Every key is namespaced with prefix.
func New(client *redis.Client, prefix string, log *zap.Logger) kvstore.Store {
	return &Store{
		client: client,
		prefix: prefix,
		log:    log,
	}
}

func (s *Store) redisKey(key string) string {
	return s.prefix + key
}

// Get retrieves the value for key from Redis.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		s.log.Debug("key not found", zap.String("key", key))
		return nil, nil
	}
	if err != nil {
		s.log.Error("failed to get key from redis", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("failed to get %q: %w", key, err)
	}

	return data, nil
}

// Set writes value under key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.redisKey(key), value, 0).Err(); err != nil {
		s.log.Error("failed to set key in redis", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to set %q: %w", key, err)
	}

	s.log.Debug("stored key", zap.String("key", key), zap.Int("bytes", len(value)))
	return nil
}

// Remove deletes key from Redis.
func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.redisKey(key)).Err(); err != nil {
		s.log.Error("failed to delete key from redis", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to remove %q: %w", key, err)
	}

	s.log.Debug("removed key", zap.String("key", key))
	return nil
}
