package kvstore

import "context"

// Store is the key-value persistence port used by the user store, the session
// holder and the theme preference. Values are opaque bytes.
type Store interface {
	// Get returns the value stored under key.
	// Returns nil, nil if the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}
