package observability

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
	"time"

	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap/zapcore"
)

const (
	healthPath       = "/healthz"
	maxLogValueDepth = 3
)

// otelLogCore is a zap core that emits every enabled entry as an OTel log record,
// correlated with the span named by the trace_id/span_id fields.
type otelLogCore struct {
	zapcore.LevelEnabler
	logger otellog.Logger
	fields []zapcore.Field
}

func newOTelLogCore(logger otellog.Logger, level zapcore.LevelEnabler) *otelLogCore {
	return &otelLogCore{LevelEnabler: level, logger: logger}
}

func (c *otelLogCore) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	clone.fields = append(append([]zapcore.Field(nil), c.fields...), fields...)
	return &clone
}

func (c *otelLogCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *otelLogCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	enc := zapcore.NewMapObjectEncoder()
	for _, field := range c.fields {
		field.AddTo(enc)
	}
	for _, field := range fields {
		field.AddTo(enc)
	}
	if shouldSkipUptraceLog(entry.Message, enc.Fields) {
		return nil
	}

	ctx := spanContextFromFields(enc.Fields)
	severity := toOTelSeverity(entry.Level)
	if !c.logger.Enabled(ctx, otellog.EnabledParameters{Severity: severity, EventName: entry.Message}) {
		return nil
	}

	record := otellog.Record{}
	record.SetTimestamp(entry.Time.UTC())
	record.SetObservedTimestamp(time.Now().UTC())
	record.SetSeverity(severity)
	record.SetSeverityText(strings.ToUpper(entry.Level.String()))
	record.SetEventName(entry.Message)
	record.SetBody(otellog.StringValue(entry.Message))
	if entry.LoggerName != "" {
		record.AddAttributes(otellog.String("logger", entry.LoggerName))
	}
	if attrs := buildOTelLogAttributes(enc.Fields); len(attrs) > 0 {
		record.AddAttributes(attrs...)
	}

	c.logger.Emit(ctx, record)
	return nil
}

func (c *otelLogCore) Sync() error {
	return nil
}

func shouldSkipUptraceLog(msg string, fields map[string]any) bool {
	if msg != "http_request" {
		return false
	}
	path, ok := fields["http_path"].(string)
	return ok && path == healthPath
}

func spanContextFromFields(fields map[string]any) context.Context {
	ctx := context.Background()
	rawTrace, _ := fields["trace_id"].(string)
	rawSpan, _ := fields["span_id"].(string)
	if rawTrace == "" || rawSpan == "" {
		return ctx
	}

	traceID, err := trace.TraceIDFromHex(rawTrace)
	if err != nil {
		return ctx
	}
	spanID, err := trace.SpanIDFromHex(rawSpan)
	if err != nil {
		return ctx
	}
	return trace.ContextWithSpanContext(ctx, trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))
}

func buildOTelLogAttributes(fields map[string]any) []otellog.KeyValue {
	if len(fields) == 0 {
		return nil
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	attrs := make([]otellog.KeyValue, 0, len(keys))
	for _, key := range keys {
		attrs = append(attrs, otellog.KeyValue{
			Key:   key,
			Value: toOTelLogValue(fields[key], 0),
		})
	}
	return attrs
}

func toOTelSeverity(level zapcore.Level) otellog.Severity {
	switch {
	case level <= zapcore.DebugLevel:
		return otellog.SeverityDebug
	case level == zapcore.InfoLevel:
		return otellog.SeverityInfo
	case level == zapcore.WarnLevel:
		return otellog.SeverityWarn
	case level >= zapcore.DPanicLevel:
		return otellog.SeverityFatal
	default:
		return otellog.SeverityError
	}
}

func toOTelLogValue(value any, depth int) otellog.Value {
	if depth >= maxLogValueDepth {
		return otellog.StringValue(fmt.Sprint(value))
	}
	if value == nil {
		return otellog.Value{}
	}

	switch v := value.(type) {
	case string:
		return otellog.StringValue(v)
	case bool:
		return otellog.BoolValue(v)
	case int:
		return otellog.IntValue(v)
	case int32:
		return otellog.Int64Value(int64(v))
	case int64:
		return otellog.Int64Value(v)
	case uint32:
		return otellog.Int64Value(int64(v))
	case uint64:
		if v > math.MaxInt64 {
			return otellog.StringValue(fmt.Sprint(v))
		}
		return otellog.Int64Value(int64(v))
	case float32:
		return otellog.Float64Value(float64(v))
	case float64:
		return otellog.Float64Value(v)
	case []byte:
		return otellog.BytesValue(append([]byte(nil), v...))
	case time.Time:
		return otellog.StringValue(v.UTC().Format(time.RFC3339Nano))
	case time.Duration:
		return otellog.StringValue(v.String())
	case error:
		return otellog.StringValue(v.Error())
	case fmt.Stringer:
		return otellog.StringValue(v.String())
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return otellog.Value{}
		}
		return toOTelLogValue(rv.Elem().Interface(), depth+1)
	case reflect.Slice, reflect.Array:
		items := make([]otellog.Value, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			items = append(items, toOTelLogValue(rv.Index(i).Interface(), depth+1))
		}
		return otellog.SliceValue(items...)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return otellog.StringValue(fmt.Sprint(value))
		}
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return keys[i].String() < keys[j].String()
		})
		kvs := make([]otellog.KeyValue, 0, len(keys))
		for _, key := range keys {
			kvs = append(kvs, otellog.KeyValue{
				Key:   key.String(),
				Value: toOTelLogValue(rv.MapIndex(key).Interface(), depth+1),
			})
		}
		return otellog.MapValue(kvs...)
	default:
		return otellog.StringValue(fmt.Sprint(value))
	}
}
