package userstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	domain "local-auth-service/internal/domain/user"
	"local-auth-service/pkg/kvstore"
)

// UsersKey is the storage key holding the JSON array of registered users.
const UsersKey = "users_db"

// Store persists the list of registered users under a single key.
// It does not enforce email uniqueness; the auth usecase does.
type Store struct {
	kv  kvstore.Store
	log *zap.Logger
	mu  sync.Mutex // serializes read-modify-write in AddUser
}

// New creates a user store on top of kv.
func New(kv kvstore.Store, log *zap.Logger) *Store {
	return &Store{kv: kv, log: log}
}

// ListUsers returns every registered user in insertion order.
// Unreadable or undecodable data is logged and reported as an empty list.
func (s *Store) ListUsers(ctx context.Context) []domain.User {
	users, err := s.load(ctx)
	if err != nil {
		s.log.Warn("failed to read users, treating as empty", zap.Error(err))
		return []domain.User{}
	}
	return users
}

// AddUser appends u to the persisted list.
func (s *Store) AddUser(ctx context.Context, u domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Unlike ListUsers, a failed read aborts here: rewriting the key from an
	// empty list would drop every existing account.
	users, err := s.load(ctx)
	if err != nil {
		s.log.Error("failed to read users before append", zap.String("email", u.Email), zap.Error(err))
		return err
	}
	users = append(users, u)

	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to encode users: %w", err)
	}
	if err := s.kv.Set(ctx, UsersKey, data); err != nil {
		s.log.Error("failed to save users", zap.String("id", u.ID), zap.Error(err))
		return err
	}

	s.log.Info("user added to store", zap.String("id", u.ID), zap.Int("total", len(users)))
	return nil
}

func (s *Store) load(ctx context.Context) ([]domain.User, error) {
	data, err := s.kv.Get(ctx, UsersKey)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return []domain.User{}, nil
	}

	var users []domain.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", UsersKey, err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}
