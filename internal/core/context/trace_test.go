package context

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace"
)

func TestNewTraceContext_KeepsGivenIDs(t *testing.T) {
	tc := NewTraceContext(context.Background(), "trace-1", "req-1")
	assert.Equal(t, "trace-1", tc.TraceID)
	assert.Equal(t, "req-1", tc.RequestID)
}

func TestNewTraceContext_UsesSpanTraceID(t *testing.T) {
	tid := trace.TraceID{0x01, 0x02, 0x03}
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: tid, SpanID: trace.SpanID{0x01}})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	tc := NewTraceContext(ctx, "", "")
	assert.Equal(t, tid.String(), tc.TraceID)
	assert.Len(t, tc.RequestID, 36)
}

func TestGetRequestID(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))

	ctx := WithTrace(context.Background(), &TraceContext{TraceID: "t", RequestID: "r"})
	assert.Equal(t, "r", GetRequestID(ctx))
}
