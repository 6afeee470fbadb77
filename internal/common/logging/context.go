package logging

import (
	"context"
	"log/slog"

	"github.com/khmm12/snmp-probe/internal/common/tracing"
)

type attrsCtxKeyType struct{}

var attrsCtxKey = attrsCtxKeyType{}

// WithAttrs returns a context whose log records carry attrs in addition to
// the ones already stored in ctx.
func WithAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	prev, _ := ctx.Value(attrsCtxKey).([]slog.Attr)

	merged := make([]slog.Attr, 0, len(prev)+len(attrs))
	merged = append(merged, prev...)
	merged = append(merged, attrs...)

	return context.WithValue(ctx, attrsCtxKey, merged)
}

var _ slog.Handler = (*ContextHandler)(nil)

// ContextHandler adds the trace id and any WithAttrs attributes found in the
// record's context.
type ContextHandler struct {
	w slog.Handler
}

func NewContextHandler(handler slog.Handler) *ContextHandler {
	return &ContextHandler{w: handler}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.w.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if traceID := tracing.GetTraceID(ctx); traceID != "" {
		r.Add(slog.String("trace_id", traceID))
	}

	if attrs, ok := ctx.Value(attrsCtxKey).([]slog.Attr); ok {
		r.AddAttrs(attrs...)
	}

	return h.w.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.clone(h.w.WithAttrs(attrs))
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return h.clone(h.w.WithGroup(name))
}

func (h *ContextHandler) clone(handler slog.Handler) *ContextHandler {
	return &ContextHandler{w: handler}
}
