package logging

import (
	"context"

	"go.uber.org/zap"
)

type ctxLoggerKey struct{}

// FromContext returns the request-scoped logger if present, otherwise the
// process logger.
func FromContext(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return Logger()
	}
	if l, ok := ctx.Value(ctxLoggerKey{}).(*zap.Logger); ok && l != nil {
		return l
	}
	return Logger()
}

// FromContextOr returns the request-scoped logger if present, otherwise fallback.
func FromContextOr(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxLoggerKey{}).(*zap.Logger); ok && l != nil {
			return l
		}
	}
	if fallback == nil {
		return Logger()
	}
	return fallback
}

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxLoggerKey{}, logger)
}

// Info writes an informational message using the request-aware logger.
func Info(ctx context.Context, msg string, fields ...zap.Field) {
	FromContext(ctx).Info(msg, fields...)
}

// Warn writes a warning using the request-aware logger.
func Warn(ctx context.Context, msg string, fields ...zap.Field) {
	FromContext(ctx).Warn(msg, fields...)
}

// Error writes an error message and appends err when it is non-nil.
func Error(ctx context.Context, msg string, err error, fields ...zap.Field) {
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	FromContext(ctx).Error(msg, fields...)
}
