package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const (
	ServiceName    = "ventas-report-service"
	ServiceVersion = "1.0.0"
	MeterName      = "ventascli"
)

// Metrics holds the OpenTelemetry instruments for the report pipeline,
// exported in Prometheus format.
type Metrics struct {
	provider *sdkmetric.MeterProvider
	handler  http.Handler

	reportDuration metric.Float64Histogram
	sourceLoads    metric.Int64Counter
	cacheHits      metric.Int64Counter
}

// InitializeMetrics sets up the OTel meter provider with a Prometheus
// exporter and registers the pipeline instruments.
func InitializeMetrics(logger *slog.Logger) (*Metrics, error) {
	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(ServiceVersion),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create otel resource: %w", err)
	}

	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)
	meter := provider.Meter(MeterName)

	reportDuration, err := meter.Float64Histogram(
		"ventas_report_run_duration_seconds",
		metric.WithDescription("Wall-clock duration of one full report pipeline run"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create report duration histogram: %w", err)
	}

	sourceLoads, err := meter.Int64Counter(
		"ventas_source_loads_total",
		metric.WithDescription("Source fetch attempts by outcome and accepted encoding"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create source load counter: %w", err)
	}

	cacheHits, err := meter.Int64Counter(
		"ventas_load_cache_hits_total",
		metric.WithDescription("Loads served from the bounded-time cache"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache hit counter: %w", err)
	}

	logger.Info("metrics initialized",
		slog.String("service", ServiceName),
		slog.String("exporter", "prometheus"))

	return &Metrics{
		provider:       provider,
		handler:        promhttp.Handler(),
		reportDuration: reportDuration,
		sourceLoads:    sourceLoads,
		cacheHits:      cacheHits,
	}, nil
}

// Handler returns the Prometheus scrape handler.
func (m *Metrics) Handler() http.Handler {
	return m.handler
}

// RecordReportRun records the duration of one pipeline run.
func (m *Metrics) RecordReportRun(ctx context.Context, elapsed time.Duration, empty bool) {
	m.reportDuration.Record(ctx, elapsed.Seconds(),
		metric.WithAttributes(attribute.Bool("empty_result", empty)))
}

// RecordSourceLoad records a source fetch attempt.
func (m *Metrics) RecordSourceLoad(ctx context.Context, outcome, encoding string) {
	m.sourceLoads.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
		attribute.String("encoding", encoding),
	))
}

// RecordCacheHit records a load served from cache.
func (m *Metrics) RecordCacheHit(ctx context.Context) {
	m.cacheHits.Add(ctx, 1)
}

// Shutdown flushes and stops the meter provider.
func (m *Metrics) Shutdown(ctx context.Context) error {
	return m.provider.Shutdown(ctx)
}
