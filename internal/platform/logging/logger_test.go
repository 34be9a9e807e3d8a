package logging

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved(level zapcore.Level) (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return FromZap(zap.New(core)), logs
}

func TestLogger_KeyValueFields(t *testing.T) {
	logger, logs := newObserved(zapcore.DebugLevel)

	logger.Info("stats computed", "team_id", int64(5), "role", "home", "error", errors.New("boom"), "dangling")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, int64(5), fields["team_id"])
	assert.Equal(t, "home", fields["role"])
	assert.Equal(t, "boom", fields["error"])
	assert.Contains(t, fields, "dangling")
	assert.Nil(t, fields["dangling"])
}

func TestLogger_NonStringKeyFallsBack(t *testing.T) {
	logger, logs := newObserved(zapcore.DebugLevel)

	logger.Warn("odd key", 42, "value")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "value", logs.All()[0].ContextMap()["arg"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger, logs := newObserved(zapcore.WarnLevel)

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Error("shown")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "shown", logs.All()[0].Message)
}

func TestLogger_WithAndNamed(t *testing.T) {
	logger, logs := newObserved(zapcore.InfoLevel)

	logger.Named("assistant").With("service", "betfinder").Info("ready")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "assistant", entry.LoggerName)
	assert.Equal(t, "betfinder", entry.ContextMap()["service"])
}

func TestLogger_ContextAddsTraceFields(t *testing.T) {
	logger, logs := newObserved(zapcore.InfoLevel)

	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.InfoContext(ctx, "traced")
	logger.InfoContext(context.Background(), "untraced")

	require.Equal(t, 2, logs.Len())
	traced := logs.All()[0].ContextMap()
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", traced["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", traced["span_id"])
	assert.NotContains(t, logs.All()[1].ContextMap(), "trace_id")
}

func TestLogger_NilSafe(t *testing.T) {
	var logger *Logger

	assert.NotPanics(t, func() {
		logger.Info("nil receiver")
		_ = logger.With("k", "v")
		_ = logger.Named("x")
		assert.NoError(t, logger.Sync())
	})
	assert.NotNil(t, logger.Zap())
}

func TestDefault_FallsBackToNop(t *testing.T) {
	SetDefault(nil)
	assert.NotNil(t, Default())
}
