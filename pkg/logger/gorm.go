package logger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const maxLoggedSQL = 512

// GormLogger traces key-value statements through zap. Failed and slow
// statements are always logged; routine ones only when debug is enabled.
type GormLogger struct {
	log    *zap.Logger
	slow   time.Duration
	silent bool
}

var _ gormlogger.Interface = (*GormLogger)(nil)

// NewGormLogger creates a GORM logger. A zero slow threshold disables slow
// statement warnings.
func NewGormLogger(l *zap.Logger, slow time.Duration) *GormLogger {
	return &GormLogger{
		log:  l.With(zap.String("component", "kvstore.sql")),
		slow: slow,
	}
}

// LogMode implements gormlogger.Interface. Only Silent changes behavior;
// other levels follow the zap logger.
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *l
	cp.silent = level == gormlogger.Silent
	return &cp
}

// Info implements gormlogger.Interface
func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	if !l.silent {
		WithContext(ctx, l.log).Sugar().Debugf(msg, data...)
	}
}

// Warn implements gormlogger.Interface
func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if !l.silent {
		WithContext(ctx, l.log).Sugar().Warnf(msg, data...)
	}
}

// Error implements gormlogger.Interface
func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	if !l.silent {
		WithContext(ctx, l.log).Sugar().Errorf(msg, data...)
	}
}

// Trace implements gormlogger.Interface. fc is only evaluated when the
// statement is going to be logged.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.silent {
		return
	}

	elapsed := time.Since(begin)
	log := WithContext(ctx, l.log)
	if key := GetKVKey(ctx); key != "" {
		log = log.With(zap.String("key", key))
	}

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		log.Error("kv statement failed", append(statementFields(fc, elapsed), zap.Error(err))...)
	case l.slow > 0 && elapsed > l.slow:
		log.Warn("kv statement slow", append(statementFields(fc, elapsed), zap.Duration("threshold", l.slow))...)
	case log.Core().Enabled(zapcore.DebugLevel):
		log.Debug("kv statement", statementFields(fc, elapsed)...)
	}
}

func statementFields(fc func() (string, int64), elapsed time.Duration) []zap.Field {
	sql, rows := fc()
	fields := []zap.Field{
		zap.Int64("rows", rows),
		zap.Duration("elapsed", elapsed),
	}
	if len(sql) > maxLoggedSQL {
		return append(fields, zap.String("sql", sql[:maxLoggedSQL]+"..."), zap.Bool("sql_truncated", true))
	}
	return append(fields, zap.String("sql", sql))
}
