package services

import "context"

type contextKey string

const runIDKey contextKey = "run_id"

// WithRunID attaches a run correlation identifier to the context.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run correlation identifier, if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(runIDKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
