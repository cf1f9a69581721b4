package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	apihttp "todoapi/internal/adapter/http"
	"todoapi/internal/shared"
	"todoapi/pkg/config"
	"todoapi/pkg/tracing"
)

const serviceName = "todoapi"

func main() {
	cfg := config.Load()

	logger, err := shared.NewLogger(serviceName)

	if err != nil {
		os.Exit(1)
	}

	defer logger.Sync()

	telemetry, err := tracing.InitTelemetry(tracing.TelemetryConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		MetricsPort:    cfg.MetricsPort,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Environment:    cfg.Environment,
	})
	if err != nil {
		logger.Logger.Fatal("Failed to init telemetry", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := shared.NewAppMetrics(telemetry.PrometheusRegistry)
	metrics.StartSystemMetrics(ctx)

	errCh := make(chan error, 1)

	go func() {
		errCh <- apihttp.StartServer(ctx, cfg, metrics, logger)
	}()

	logger.Logger.Info("Server starting",
		zap.String("port", cfg.Port),
		zap.String("metrics_port", cfg.MetricsPort),
		zap.String("environment", cfg.Environment),
	)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Logger.Info("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error("Telemetry shutdown failed", zap.Error(err))
	}
}
