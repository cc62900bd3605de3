package logging

import (
	"context"
	"maps"

	"github.com/google/uuid"
)

type contextKey string

const contextFieldsKey contextKey = "nb2hugo.logging.fields"

const fieldRunID = "run_id"

// ContextWithFields stores structured fields on ctx. Console loggers merge
// them into every entry written with that context. Fields already on ctx are
// kept unless overridden.
func ContextWithFields(ctx context.Context, fields map[string]any) context.Context {
	if ctx == nil || len(fields) == 0 {
		return ctx
	}

	existing := ContextFields(ctx)
	merged := make(map[string]any, len(existing)+len(fields))
	maps.Copy(merged, existing)
	maps.Copy(merged, fields)
	return context.WithValue(ctx, contextFieldsKey, merged)
}

// ContextFields returns a copy of the fields stored on ctx.
func ContextFields(ctx context.Context) map[string]any {
	if ctx == nil {
		return nil
	}
	fields, ok := ctx.Value(contextFieldsKey).(map[string]any)
	if !ok || len(fields) == 0 {
		return nil
	}
	return maps.Clone(fields)
}

// ContextWithRunID tags ctx with a fresh run id unless one is already set.
// The id is returned so callers can surface it in results.
func ContextWithRunID(ctx context.Context) (context.Context, string) {
	if ctx == nil {
		ctx = context.Background()
	}
	if existing, ok := ContextFields(ctx)[fieldRunID].(string); ok && existing != "" {
		return ctx, existing
	}
	id := uuid.NewString()
	return ContextWithFields(ctx, map[string]any{fieldRunID: id}), id
}
