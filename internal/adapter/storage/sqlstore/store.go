package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"local-auth-service/pkg/kvstore"
	"local-auth-service/pkg/logger"
)

// Store implements kvstore.Store using a single GORM table.
// It works with any dialect GORM supports; the service wires SQLite and PostgreSQL.
type Store struct {
	db  *gorm.DB    // GORM database connection
	log *zap.Logger // Structured logger for database operations
}

var _ kvstore.Store = (*Store)(nil)

// New creates a new instance of Store.
func New(db *gorm.DB, log *zap.Logger) *Store {
	return &Store{db: db, log: log}
}

// EntrySchema represents the database schema for the kv_entries table.
type EntrySchema struct {
	Key       string    `gorm:"column:entry_key;primaryKey;size:191"` // Storage key
	Value     []byte    `gorm:"not null"`                             // Opaque value
	UpdatedAt time.Time // Last write time
}

// TableName specifies the table name for the EntrySchema model.
func (EntrySchema) TableName() string {
	return "kv_entries"
}

// Migrate creates or updates the kv_entries table.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&EntrySchema{}); err != nil {
		return fmt.Errorf("failed to migrate kv_entries: %w", err)
	}
	return nil
}

// Get retrieves the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	ctx = logger.WithKVKey(ctx, key)
	var model EntrySchema
	if err := s.db.WithContext(ctx).Where("entry_key = ?", key).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Debug("key not found", zap.String("key", key))
			return nil, nil
		}
		s.log.Error("failed to get key from db", zap.Error(err), zap.String("key", key))
		return nil, fmt.Errorf("failed to get %q: %w", key, err)
	}

	return model.Value, nil
}

// Set inserts or replaces the value stored under key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	ctx = logger.WithKVKey(ctx, key)
	model := EntrySchema{
		Key:   key,
		Value: value,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&model).Error
	if err != nil {
		s.log.Error("failed to set key in db", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("failed to set %q: %w", key, err)
	}

	s.log.Debug("key stored in db", zap.String("key", key), zap.Int("bytes", len(value)))
	return nil
}

// Remove deletes the row for key, if any.
func (s *Store) Remove(ctx context.Context, key string) error {
	ctx = logger.WithKVKey(ctx, key)
	if err := s.db.WithContext(ctx).Where("entry_key = ?", key).Delete(&EntrySchema{}).Error; err != nil {
		s.log.Error("failed to remove key from db", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("failed to remove %q: %w", key, err)
	}

	s.log.Debug("key removed from db", zap.String("key", key))
	return nil
}
