package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/riskibarqy/betfinder/internal/app"
	"github.com/riskibarqy/betfinder/internal/config"
	"github.com/riskibarqy/betfinder/internal/observability"
	"github.com/riskibarqy/betfinder/internal/platform/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	bootLogger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(bootLogger)

	uptraceCore, shutdownUptrace, err := observability.InitUptrace(cfg, bootLogger)
	if err != nil {
		return fmt.Errorf("init uptrace: %w", err)
	}
	betterStackCore, closeBetterStack, err := observability.InitBetterStackCore(cfg, bootLogger)
	if err != nil {
		return fmt.Errorf("init betterstack: %w", err)
	}

	logger := logging.NewJSON(cfg.LogLevel, uptraceCore, betterStackCore).With(
		"service", cfg.ServiceName,
		"version", cfg.ServiceVersion,
		"env", cfg.AppEnv,
	)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	stopPyroscope, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Warn("pyroscope start failed", "error", err)
		stopPyroscope = func() error { return nil }
	}
	pprofServer, err := observability.StartPprofServer(cfg, logger)
	if err != nil {
		logger.Warn("pprof start failed", "error", err)
	}

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		return err
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Warn("close database", "error", err)
		}
	}()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := application.Ping(pingCtx); err != nil {
		logger.Warn("database not reachable at startup", "error", err)
	}
	cancelPing()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "addr", cfg.HTTPAddr)
		if err := application.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
	case err, ok := <-serverErr:
		if ok {
			logger.Error("http server failed", "error", err)
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := application.Server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	if err := observability.StopPprofServer(pprofServer, logger, shutdownTimeout); err != nil {
		logger.Warn("stop pprof", "error", err)
	}
	if err := stopPyroscope(); err != nil {
		logger.Warn("stop pyroscope", "error", err)
	}
	if err := shutdownUptrace(shutdownCtx); err != nil {
		logger.Warn("shutdown uptrace", "error", err)
	}
	if err := closeBetterStack(shutdownCtx); err != nil {
		logger.Warn("close betterstack", "error", err)
	}

	logger.Info("http server stopped")
	return nil
}
