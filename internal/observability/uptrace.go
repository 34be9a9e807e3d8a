package observability

import (
	"context"
	"strings"

	"github.com/uptrace/uptrace-go/uptrace"
	otellog "go.opentelemetry.io/otel/log"
	otelglobal "go.opentelemetry.io/otel/log/global"
	"go.uber.org/zap/zapcore"

	"github.com/riskibarqy/betfinder/internal/config"
	"github.com/riskibarqy/betfinder/internal/platform/logging"
)

const uptraceLogInstrumentation = "betfinder/internal/platform/logging"

// InitUptrace configures global OpenTelemetry providers for Uptrace. When log export is
// enabled the returned core forwards log entries as OTel records; otherwise it is nil.
func InitUptrace(cfg config.Config, logger *logging.Logger) (zapcore.Core, func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	noop := func(context.Context) error { return nil }

	if !cfg.UptraceEnabled {
		logger.Info("uptrace disabled", "reason", "UPTRACE_ENABLED=false")
		return nil, noop, nil
	}
	if strings.TrimSpace(cfg.UptraceDSN) == "" {
		logger.Info("uptrace disabled", "reason", "UPTRACE_DSN empty")
		return nil, noop, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithLoggingEnabled(cfg.UptraceLogsEnabled),
	)

	var core zapcore.Core
	if cfg.UptraceLogsEnabled {
		core = newOTelLogCore(
			otelglobal.Logger(uptraceLogInstrumentation, otellog.WithInstrumentationVersion(cfg.ServiceVersion)),
			cfg.LogLevel,
		)
	}

	logger.Info("uptrace enabled",
		"service_name", cfg.ServiceName,
		"service_version", cfg.ServiceVersion,
		"environment", cfg.AppEnv,
		"logs_enabled", cfg.UptraceLogsEnabled,
	)

	return core, uptrace.Shutdown, nil
}
