package logging

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// FromContext extracts the logger from ctx. It returns a discarding logger
// if none is stored or ctx is nil.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return Discard()
	}
	if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return logger
	}
	return Discard()
}

// WithContext stores logger in ctx.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}
