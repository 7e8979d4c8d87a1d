package theme

import (
	"context"
	"sync"

	"go.uber.org/zap"

	domain "local-auth-service/internal/domain/theme"
	apperrors "local-auth-service/pkg/errors"
	"local-auth-service/pkg/kvstore"
)

// ModeKey is the storage key holding the persisted theme mode.
const ModeKey = "theme_mode"

// Service defines the interface for theme preference operations.
type Service interface {
	Get(ctx context.Context) domain.Mode
	Set(ctx context.Context, mode domain.Mode) error
	Toggle(ctx context.Context) (domain.Mode, error)
}

// Usecase persists the light/dark preference.
type Usecase struct {
	kv       kvstore.Store
	fallback domain.Mode
	log      *zap.Logger
	mu       sync.Mutex // serializes Toggle's read-flip-write
}

var _ Service = (*Usecase)(nil)

// New creates a theme usecase. fallback is returned while nothing valid is stored.
func New(kv kvstore.Store, fallback domain.Mode, log *zap.Logger) *Usecase {
	if !fallback.Valid() {
		fallback = domain.Light
	}
	return &Usecase{kv: kv, fallback: fallback, log: log}
}

// Get returns the stored mode. Missing, invalid or unreadable data yields the fallback.
func (uc *Usecase) Get(ctx context.Context) domain.Mode {
	data, err := uc.kv.Get(ctx, ModeKey)
	if err != nil {
		uc.log.Warn("failed to read theme mode, using fallback", zap.String("fallback", string(uc.fallback)), zap.Error(err))
		return uc.fallback
	}
	if data == nil {
		return uc.fallback
	}

	mode, err := domain.ParseMode(string(data))
	if err != nil {
		uc.log.Warn("ignoring stored theme mode", zap.Error(err))
		return uc.fallback
	}
	return mode
}

// Set persists mode.
func (uc *Usecase) Set(ctx context.Context, mode domain.Mode) error {
	if !mode.Valid() {
		return apperrors.NewValidationError("mode", "must be one of light, dark")
	}

	if err := uc.kv.Set(ctx, ModeKey, []byte(mode)); err != nil {
		uc.log.Error("failed to save theme mode", zap.String("mode", string(mode)), zap.Error(err))
		return err
	}

	uc.log.Info("theme mode saved", zap.String("mode", string(mode)))
	return nil
}

// Toggle flips the current mode, persists it and returns the new value.
func (uc *Usecase) Toggle(ctx context.Context) (domain.Mode, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	next := uc.Get(ctx).Toggle()
	if err := uc.Set(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}
