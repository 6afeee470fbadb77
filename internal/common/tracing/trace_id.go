package tracing

import (
	"context"

	"github.com/google/uuid"
)

type traceIDCtxKeyType struct{}

var traceIDCtxKey = traceIDCtxKeyType{}

// WithTraceID tags ctx with a fresh trace id unless it already has one. One
// probe invocation is one trace.
func WithTraceID(ctx context.Context) context.Context {
	if _, ok := ctx.Value(traceIDCtxKey).(string); ok {
		return ctx
	}

	return context.WithValue(ctx, traceIDCtxKey, generateTraceID())
}

func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(traceIDCtxKey).(string)
	if !ok {
		return ""
	}

	return traceID
}

func generateTraceID() string {
	v, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v.String()
}
