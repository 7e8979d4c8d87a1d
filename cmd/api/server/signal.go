package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

// ErrShutdownSignal is the cancel cause of a context ended by WithSignal.
var ErrShutdownSignal = errors.New("shutdown signal received")

var shutdownSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}

// WithSignal returns a context that ends on SIGINT or SIGTERM. The signal is
// logged and carried in context.Cause. stop releases the signal handler.
func WithSignal(parent context.Context, l *zap.Logger) (ctx context.Context, stop func()) {
	ctx, cancel := context.WithCancelCause(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals...)

	go func() {
		select {
		case sig := <-sigCh:
			l.Info("received shutdown signal", zap.Stringer("signal", sig))
			cancel(fmt.Errorf("%w: %s", ErrShutdownSignal, sig))
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigCh)
		cancel(context.Canceled)
	}
}
