package observability

import (
	"context"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/embedded"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/riskibarqy/betfinder/internal/platform/logging"
)

type recordingLogger struct {
	embedded.Logger

	mu      sync.Mutex
	records []otellog.Record
	spans   []trace.SpanContext
}

func (l *recordingLogger) Emit(ctx context.Context, record otellog.Record) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, record.Clone())
	l.spans = append(l.spans, trace.SpanContextFromContext(ctx))
}

func (l *recordingLogger) Enabled(context.Context, otellog.EnabledParameters) bool {
	return true
}

func attributesOf(record otellog.Record) map[string]otellog.Value {
	out := make(map[string]otellog.Value)
	record.WalkAttributes(func(kv otellog.KeyValue) bool {
		out[kv.Key] = kv.Value
		return true
	})
	return out
}

func TestOTelLogCore_EmitsRecords(t *testing.T) {
	recorder := &recordingLogger{}
	logger := logging.FromZap(zap.New(newOTelLogCore(recorder, logging.LevelInfo))).Named("assistant")

	logger.Debug("below level")
	logger.Warn("assistant sql rejected", "keyword", "DROP", "error", errors.New("dangerous operation"), "rows", 3)

	require.Len(t, recorder.records, 1)
	record := recorder.records[0]
	assert.Equal(t, "assistant sql rejected", record.Body().AsString())
	assert.Equal(t, otellog.SeverityWarn, record.Severity())
	assert.Equal(t, "WARN", record.SeverityText())

	attrs := attributesOf(record)
	assert.Equal(t, "assistant", attrs["logger"].AsString())
	assert.Equal(t, "DROP", attrs["keyword"].AsString())
	assert.Equal(t, "dangerous operation", attrs["error"].AsString())
	assert.Equal(t, int64(3), attrs["rows"].AsInt64())
}

func TestOTelLogCore_CorrelatesTraceFields(t *testing.T) {
	recorder := &recordingLogger{}
	logger := logging.FromZap(zap.New(newOTelLogCore(recorder, logging.LevelDebug)))

	logger.Info("match list served",
		"trace_id", "4bf92f3577b34da6a3ce929d0e0e4736",
		"span_id", "00f067aa0ba902b7",
	)

	require.Len(t, recorder.spans, 1)
	span := recorder.spans[0]
	require.True(t, span.IsValid())
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", span.TraceID().String())
	assert.Equal(t, "00f067aa0ba902b7", span.SpanID().String())
}

func TestOTelLogCore_SkipsHealthChecks(t *testing.T) {
	recorder := &recordingLogger{}
	logger := logging.FromZap(zap.New(newOTelLogCore(recorder, logging.LevelDebug)))

	logger.Info("http_request", "http_path", "/healthz", "status", 200)
	logger.Info("http_request", "http_path", "/v1/matches", "status", 200)

	require.Len(t, recorder.records, 1)
	assert.Equal(t, "/v1/matches", attributesOf(recorder.records[0])["http_path"].AsString())
}

func TestOTelLogCore_WithKeepsFields(t *testing.T) {
	recorder := &recordingLogger{}
	logger := logging.FromZap(zap.New(newOTelLogCore(recorder, logging.LevelDebug))).With("component", "stats")

	logger.Error("stats computation failed")

	require.Len(t, recorder.records, 1)
	assert.Equal(t, "stats", attributesOf(recorder.records[0])["component"].AsString())
}
