package logging

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

type correlationKey struct{}

// NewCorrelationID returns a fresh identifier for one CLI invocation.
func NewCorrelationID() string {
	return uuid.NewString()
}

// WithCorrelationID stores id on ctx.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, correlationKey{}, strings.TrimSpace(id))
}

// CorrelationIDFromContext returns the identifier stored by WithCorrelationID.
func CorrelationIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(correlationKey{}).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	id, ok := CorrelationIDFromContext(ctx)
	if !ok {
		return logger
	}
	return logger.With(String(FieldCorrelationID, id))
}
