// Package context carries request-scoped identifiers through context.Context.
package context

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// TraceContext identifies one request and the trace it belongs to.
type TraceContext struct {
	TraceID   string
	RequestID string
}

type traceContextKey struct{}

// WithTrace adds TraceContext to context.
func WithTrace(ctx context.Context, tc *TraceContext) context.Context {
	return context.WithValue(ctx, traceContextKey{}, tc)
}

// GetTrace returns the TraceContext stored in ctx, or nil.
func GetTrace(ctx context.Context) *TraceContext {
	tc, _ := ctx.Value(traceContextKey{}).(*TraceContext)
	return tc
}

// GetRequestID returns the request id or "".
func GetRequestID(ctx context.Context) string {
	if tc := GetTrace(ctx); tc != nil {
		return tc.RequestID
	}
	return ""
}

// NewTraceContext fills in whichever ids the caller did not receive.
// A missing trace id is taken from the active span when there is one.
func NewTraceContext(ctx context.Context, traceID, requestID string) *TraceContext {
	if traceID == "" {
		if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
			traceID = sc.TraceID().String()
		} else {
			traceID = uuid.NewString()
		}
	}
	if requestID == "" {
		requestID = uuid.NewString()
	}
	return &TraceContext{TraceID: traceID, RequestID: requestID}
}
