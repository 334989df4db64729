package server

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/FACorreiaa/go-tripplanner/internal/app/observability/metrics"
	"github.com/FACorreiaa/go-tripplanner/internal/app/observability/tracer"
	"github.com/FACorreiaa/go-tripplanner/internal/pkg/config"
)

// ObservabilityShutdownFunc is the function type returned by InitObservability
type ObservabilityShutdownFunc func(context.Context) error

// InitObservability initializes OpenTelemetry and application metrics
func InitObservability(cfg config.ObservabilityConfig, logger *zap.Logger) (ObservabilityShutdownFunc, error) {
	otelShutdown, err := tracer.InitOtelProviders(cfg.ServiceName, cfg.MetricsAddr, cfg.OTLPEndpoint, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	// Instruments must be created after the Prometheus-backed provider is set.
	metrics.InitAppMetrics()
	logger.Info("Observability initialized",
		zap.String("metrics_endpoint", cfg.MetricsAddr+"/metrics"),
		zap.Bool("otlp_export", cfg.OTLPEndpoint != ""))

	return otelShutdown, nil
}
