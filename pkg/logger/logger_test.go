package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	appctx "facturador/internal/core/context"
)

func observed() (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return &Logger{zap.New(core).Sugar()}, logs
}

func TestFromContext_AddsTraceFields(t *testing.T) {
	l, logs := observed()

	ctx := appctx.WithTrace(context.Background(), &appctx.TraceContext{TraceID: "t-1", RequestID: "r-1"})
	ctx = WithLogger(ctx, l.WithComponent("ledger"))
	Info(ctx, "invoice authorized", "number", "00001-00000001")

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "t-1", fields["trace_id"])
		assert.Equal(t, "r-1", fields["request_id"])
		assert.Equal(t, "ledger", fields["component"])
		assert.Equal(t, "00001-00000001", fields["number"])
	}
}

func TestWithContext_NoTrace(t *testing.T) {
	l, logs := observed()

	l.WithContext(context.Background()).Infow("plain")
	assert.Empty(t, logs.All()[0].ContextMap())
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	l, err := New(Config{Level: "loud", OutputPaths: []string{"stderr"}, Fields: map[string]any{"app": "facturador"}})
	assert.NoError(t, err)
	assert.False(t, l.Desugar().Core().Enabled(zap.DebugLevel))
	assert.True(t, l.Desugar().Core().Enabled(zap.InfoLevel))
}
