package appctx

import (
	"context"
)

// Trace carries request correlation identifiers.
type Trace struct {
	TraceID   string
	RequestID string
}

type traceKey struct{}

// WithTrace adds Trace to context.
func WithTrace(ctx context.Context, t *Trace) context.Context {
	return context.WithValue(ctx, traceKey{}, t)
}

// GetTrace returns Trace from context, or nil.
func GetTrace(ctx context.Context) *Trace {
	if v, ok := ctx.Value(traceKey{}).(*Trace); ok {
		return v
	}
	return nil
}
