package coalesced

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"local-auth-service/pkg/kvstore"
)

// Store wraps a remote kvstore.Store and collapses concurrent reads of the
// same key into a single backend call.
type Store struct {
	next  kvstore.Store
	log   *zap.Logger
	group singleflight.Group
}

// New creates a new coalescing wrapper around next.
func New(next kvstore.Store, log *zap.Logger) kvstore.Store {
	return &Store{
		next: next,
		log:  log,
	}
}

// Get reads key from the wrapped store, sharing the result with any
// concurrent callers asking for the same key. The shared read is detached
// from any single caller's cancellation; a caller whose ctx ends stops
// waiting without failing the others.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	ch := s.group.DoChan(key, func() (any, error) {
		data, err := s.next.Get(context.WithoutCancel(ctx), key)
		if err != nil {
			return nil, err
		}
		return data, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if res.Err != nil {
		return nil, res.Err
	}
	if res.Shared {
		s.log.Debug("read coalesced", zap.String("key", key))
	}

	data, _ := res.Val.([]byte)
	if data == nil {
		return nil, nil
	}
	// Callers may mutate what they get back.
	return append([]byte(nil), data...), nil
}

// Set writes through and drops any in-flight read for key so later
// readers observe the new value.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	defer s.group.Forget(key)
	return s.next.Set(ctx, key, value)
}

// Remove deletes through and drops any in-flight read for key.
func (s *Store) Remove(ctx context.Context, key string) error {
	defer s.group.Forget(key)
	return s.next.Remove(ctx, key)
}
