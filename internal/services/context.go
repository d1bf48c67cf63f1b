package services

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	stockIDKey   contextKey = "stock_id"
	stageKey     contextKey = "stage"
	requestIDKey contextKey = "request_id"
)

// WithStockID annotates context with the stock identifier being operated on.
func WithStockID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, stockIDKey, id)
}

// StockIDFromContext extracts the stock identifier if present.
func StockIDFromContext(ctx context.Context) (int64, bool) {
	v := ctx.Value(stockIDKey)
	if v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case int64:
		return val, true
	case int:
		return int64(val), true
	default:
		return 0, false
	}
}

// WithStage annotates context with a stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	if str, ok := ctx.Value(stageKey).(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// EnsureRequestID returns a context that carries a correlation identifier,
// minting a fresh one when the context has none.
func EnsureRequestID(ctx context.Context) context.Context {
	if _, ok := RequestIDFromContext(ctx); ok {
		return ctx
	}
	return WithRequestID(ctx, uuid.NewString())
}
