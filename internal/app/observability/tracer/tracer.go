package tracer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.uber.org/zap"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

const serviceVersion = "1.0.0"

// Settings selects where telemetry goes. An empty OTLPEndpoint keeps spans
// in-process; MetricsAddr is where /metrics is served.
type Settings struct {
	ServiceName  string
	MetricsAddr  string
	OTLPEndpoint string
}

// Providers owns the global trace and meter providers and the metrics listener.
type Providers struct {
	tp      *sdktrace.TracerProvider
	mp      *sdkmetric.MeterProvider
	metrics *http.Server
	addr    string
}

// Start installs the providers globally and begins serving /metrics.
func Start(ctx context.Context, s Settings, logger *zap.Logger) (*Providers, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := logger.With(zap.String("service", s.ServiceName))
	res := resource.NewWithAttributes(semconv.SchemaURL,
		semconv.ServiceName(s.ServiceName),
		semconv.ServiceVersion(serviceVersion),
	)

	ln, err := net.Listen("tcp", s.MetricsAddr)
	if err != nil {
		return nil, fmt.Errorf("listen for metrics on %s: %w", s.MetricsAddr, err)
	}
	mp, err := newMeterProvider(res)
	if err != nil {
		_ = ln.Close()
		return nil, err
	}
	tp := newTraceProvider(ctx, res, s.OTLPEndpoint, l)

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)

	p := &Providers{tp: tp, mp: mp, metrics: metricsServer(), addr: ln.Addr().String()}
	go func() {
		l.Info("Serving Prometheus metrics", zap.String("addr", p.addr))
		if err := p.metrics.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error("Metrics server stopped", zap.Error(err))
		}
	}()
	return p, nil
}

// MetricsAddr is the address /metrics is bound to.
func (p *Providers) MetricsAddr() string { return p.addr }

// Shutdown stops the metrics listener then flushes both providers.
func (p *Providers) Shutdown(ctx context.Context) error {
	return errors.Join(
		wrap("metrics server", p.metrics.Shutdown(ctx)),
		wrap("meter provider", p.mp.Shutdown(ctx)),
		wrap("tracer provider", p.tp.Shutdown(ctx)),
	)
}

// InitOtelProviders starts the providers and returns their shutdown func.
func InitOtelProviders(serviceName, metricsAddr, otlpEndpoint string, logger *zap.Logger) (func(context.Context) error, error) {
	p, err := Start(context.Background(), Settings{
		ServiceName:  serviceName,
		MetricsAddr:  metricsAddr,
		OTLPEndpoint: otlpEndpoint,
	}, logger)
	if err != nil {
		return nil, err
	}
	return p.Shutdown, nil
}

// newTraceProvider keeps spans local when the exporter cannot be built.
func newTraceProvider(ctx context.Context, res *resource.Resource, endpoint string, l *zap.Logger) *sdktrace.TracerProvider {
	if endpoint == "" {
		l.Debug("OTLP export disabled")
		return sdktrace.NewTracerProvider(sdktrace.WithResource(res))
	}
	exp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
	if err != nil {
		l.Warn("OTLP trace exporter unavailable, spans stay local", zap.String("endpoint", endpoint), zap.Error(err))
		return sdktrace.NewTracerProvider(sdktrace.WithResource(res))
	}
	l.Info("Exporting spans over OTLP", zap.String("endpoint", endpoint))
	return sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(sdktrace.NewBatchSpanProcessor(exp)),
	)
}

func newMeterProvider(res *resource.Resource) (*sdkmetric.MeterProvider, error) {
	exp, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("prometheus exporter: %w", err)
	}
	return sdkmetric.NewMeterProvider(sdkmetric.WithResource(res), sdkmetric.WithReader(exp)), nil
}

func metricsServer() *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
}

func wrap(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s shutdown: %w", what, err)
}
