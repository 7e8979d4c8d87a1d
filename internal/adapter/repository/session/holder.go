package session

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	domain "local-auth-service/internal/domain/user"
	"local-auth-service/pkg/kvstore"
)

// Key is the storage key holding the currently logged-in user.
const Key = "user"

// Holder persists at most one logged-in user.
type Holder struct {
	kv  kvstore.Store
	log *zap.Logger
}

// New creates a session holder on top of kv.
func New(kv kvstore.Store, log *zap.Logger) *Holder {
	return &Holder{kv: kv, log: log}
}

// Current returns the persisted session user, or nil when logged out.
// Read and decode errors are logged and reported as no session.
func (h *Holder) Current(ctx context.Context) *domain.User {
	data, err := h.kv.Get(ctx, Key)
	if err != nil {
		h.log.Warn("failed to read session, treating as logged out", zap.Error(err))
		return nil
	}
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	var u domain.User
	if err := json.Unmarshal(data, &u); err != nil {
		h.log.Warn("failed to decode session, treating as logged out", zap.Error(err))
		return nil
	}
	return &u
}

// Set replaces the session with a copy of u.
func (h *Holder) Set(ctx context.Context, u domain.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := h.kv.Set(ctx, Key, data); err != nil {
		h.log.Error("failed to save session", zap.String("id", u.ID), zap.Error(err))
		return err
	}

	h.log.Debug("session saved", zap.String("id", u.ID))
	return nil
}

// Clear removes the session. Clearing an empty session succeeds.
func (h *Holder) Clear(ctx context.Context) error {
	if err := h.kv.Remove(ctx, Key); err != nil {
		h.log.Error("failed to clear session", zap.Error(err))
		return err
	}

	h.log.Debug("session cleared")
	return nil
}
