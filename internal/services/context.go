package services

import "context"

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	attributeKey contextKey = "attribute"
	sourceKey    contextKey = "source"
)

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

// WithAttribute annotates context with the query attribute (title, actor, ...).
func WithAttribute(ctx context.Context, attribute string) context.Context {
	if attribute == "" {
		return ctx
	}
	return context.WithValue(ctx, attributeKey, attribute)
}

// AttributeFromContext returns the query attribute if present.
func AttributeFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(attributeKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithSource annotates context with the result provenance (local/remote).
func WithSource(ctx context.Context, source string) context.Context {
	if source == "" {
		return ctx
	}
	return context.WithValue(ctx, sourceKey, source)
}

// SourceFromContext returns the result provenance if present.
func SourceFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(sourceKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}
