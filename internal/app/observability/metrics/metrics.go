package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	HTTPRequestsTotal        metric.Int64Counter
	HTTPRequestDuration      metric.Float64Histogram
	GeocodeRequestsTotal     metric.Int64Counter
	GeocodeDuration          metric.Float64Histogram
	EnrichmentItemsTotal     metric.Int64Counter
	EnrichmentDuration       metric.Float64Histogram
	PlanGenerationsTotal     metric.Int64Counter
	StaleEnrichmentsDiscards metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider, so it must
// run after the tracer package has installed the Prometheus-backed provider
// for the instruments to be exported.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("trip-planner")
		var err error
		m := &AppMetrics{}

		m.HTTPRequestsTotal, err = meter.Int64Counter(
			"http_requests_total",
			metric.WithDescription("Total number of HTTP requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create http_requests_total: %v", err)
		}

		m.HTTPRequestDuration, err = meter.Float64Histogram(
			"http_request_duration_seconds",
			metric.WithDescription("Duration of HTTP requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create http_request_duration_seconds: %v", err)
		}

		m.GeocodeRequestsTotal, err = meter.Int64Counter(
			"geocode_requests_total",
			metric.WithDescription("Geocoding provider lookups by outcome"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create geocode_requests_total: %v", err)
		}

		m.GeocodeDuration, err = meter.Float64Histogram(
			"geocode_duration_seconds",
			metric.WithDescription("Latency of geocoding provider lookups"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create geocode_duration_seconds: %v", err)
		}

		m.EnrichmentItemsTotal, err = meter.Int64Counter(
			"enrichment_items_total",
			metric.WithDescription("Items considered by coordinate enrichment, by outcome"),
			metric.WithUnit("{item}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create enrichment_items_total: %v", err)
		}

		m.EnrichmentDuration, err = meter.Float64Histogram(
			"enrichment_duration_seconds",
			metric.WithDescription("Duration of a whole plan enrichment"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create enrichment_duration_seconds: %v", err)
		}

		m.PlanGenerationsTotal, err = meter.Int64Counter(
			"plan_generations_total",
			metric.WithDescription("LLM plan, item and alternative generations by outcome"),
			metric.WithUnit("{generation}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create plan_generations_total: %v", err)
		}

		m.StaleEnrichmentsDiscards, err = meter.Int64Counter(
			"enrichment_stale_total",
			metric.WithDescription("Enrichment results discarded because a newer request superseded them"),
			metric.WithUnit("{result}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create enrichment_stale_total: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the global AppMetrics, initialising it against the current
// MeterProvider on first use. Without an SDK provider (tests, CLI) the
// instruments are no-ops.
func Get() *AppMetrics {
	InitAppMetrics()
	return appMetrics
}
