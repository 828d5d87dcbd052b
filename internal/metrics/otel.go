package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

const defaultServiceName = "footstats-collector"

var (
	promReaderFactory = prometheusComponents
	otlpReaderFactory = buildOTLPReader
	instrumentFactory = newOtelInstruments
)

// TelemetryConfig controls how metrics are exported.
type TelemetryConfig struct {
	Enabled      bool
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
	// Textfile receives a Prometheus text dump on shutdown when set.
	Textfile string
}

// Setup configures OpenTelemetry metrics with a Prometheus exporter and optional OTLP exporter.
// It returns a Recorder, the Prometheus HTTP handler, and a shutdown function.
func Setup(ctx context.Context, cfg TelemetryConfig) (*Recorder, http.Handler, func(context.Context) error, error) {
	if !cfg.Enabled {
		return NewRecorder(), nil, func(context.Context) error { return nil }, nil
	}

	if cfg.ServiceName == "" {
		cfg.ServiceName = defaultServiceName
	}

	promReader, promHandler, gatherer, err := promReaderFactory()
	if err != nil {
		return nil, nil, nil, err
	}

	opts := []sdkmetric.Option{sdkmetric.WithReader(promReader)}

	if cfg.OtlpEndpoint != "" {
		otlpReader, err := otlpReaderFactory(ctx, cfg.OtlpEndpoint, cfg.OtlpInsecure)
		if err != nil {
			return nil, nil, nil, err
		}
		opts = append(opts, sdkmetric.WithReader(otlpReader))
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	opts = append(opts, sdkmetric.WithResource(res))

	provider := sdkmetric.NewMeterProvider(opts...)

	otelInst, err := instrumentFactory(provider)
	if err != nil {
		return nil, nil, nil, err
	}

	rec := newRecorder(otelInst)
	shutdown := func(c context.Context) error {
		var textErr error
		if cfg.Textfile != "" {
			textErr = prometheus.WriteToTextfile(cfg.Textfile, gatherer)
		}
		return errors.Join(textErr, provider.Shutdown(c))
	}

	return rec, promHandler, shutdown, nil
}

func buildOTLPReader(ctx context.Context, endpoint string, insecure bool) (sdkmetric.Reader, error) {
	otlpOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
	if insecure {
		otlpOpts = append(otlpOpts, otlpmetrichttp.WithInsecure())
	}
	otlpExp, err := otlpmetrichttp.New(ctx, otlpOpts...)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(otlpExp, sdkmetric.WithInterval(15*time.Second)), nil
}

func prometheusComponents() (sdkmetric.Reader, http.Handler, prometheus.Gatherer, error) {
	reg := prometheus.NewRegistry()
	promExp, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, nil, err
	}
	return promExp, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), reg, nil
}

type otelInstruments struct {
	ctx            context.Context
	fetchAttempts  metric.Int64Counter
	fetchErrors    metric.Int64Counter
	fetchLatencyMs metric.Float64Histogram
	rateLimitHits  metric.Int64Counter
	retryAfterMs   metric.Float64Histogram
	targets        metric.Int64Counter
	targetLatency  metric.Float64Histogram
	filesWritten   metric.Int64Counter
	rowsWritten    metric.Int64Counter
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	meter := provider.Meter(defaultServiceName)

	fetchAttempts, err := meter.Int64Counter("fetch_attempts_total")
	if err != nil {
		return nil, err
	}
	fetchErrors, err := meter.Int64Counter("fetch_errors_total")
	if err != nil {
		return nil, err
	}
	fetchLatency, err := meter.Float64Histogram("fetch_duration_ms")
	if err != nil {
		return nil, err
	}
	rateLimitHits, err := meter.Int64Counter("fetch_rate_limit_hits_total")
	if err != nil {
		return nil, err
	}
	retryAfter, err := meter.Float64Histogram("fetch_retry_after_ms")
	if err != nil {
		return nil, err
	}
	targets, err := meter.Int64Counter("collector_targets_total")
	if err != nil {
		return nil, err
	}
	targetLatency, err := meter.Float64Histogram("collector_target_duration_ms")
	if err != nil {
		return nil, err
	}
	filesWritten, err := meter.Int64Counter("collector_files_written_total")
	if err != nil {
		return nil, err
	}
	rowsWritten, err := meter.Int64Counter("collector_rows_written_total")
	if err != nil {
		return nil, err
	}

	return &otelInstruments{
		ctx:            context.Background(),
		fetchAttempts:  fetchAttempts,
		fetchErrors:    fetchErrors,
		fetchLatencyMs: fetchLatency,
		rateLimitHits:  rateLimitHits,
		retryAfterMs:   retryAfter,
		targets:        targets,
		targetLatency:  targetLatency,
		filesWritten:   filesWritten,
		rowsWritten:    rowsWritten,
	}, nil
}

func (o *otelInstruments) recordFetchAttempt(provider string, duration time.Duration, err error) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String(AttrProvider, provider)}
	o.recordCounter(o.fetchAttempts, 1, attrs...)
	o.recordHistogram(o.fetchLatencyMs, float64(duration.Milliseconds()), attrs...)
	if err != nil {
		o.recordCounter(o.fetchErrors, 1, attrs...)
	}
}

func (o *otelInstruments) recordRateLimit(provider string, retryAfter time.Duration) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String(AttrProvider, provider)}
	o.recordCounter(o.rateLimitHits, 1, attrs...)
	if retryAfter > 0 {
		o.recordHistogram(o.retryAfterMs, float64(retryAfter.Milliseconds()), attrs...)
	}
}

func (o *otelInstruments) recordTarget(job, outcome string, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String(AttrJob, job),
		attribute.String(AttrOutcome, outcome),
	}
	o.recordCounter(o.targets, 1, attrs...)
	o.recordHistogram(o.targetLatency, float64(duration.Milliseconds()), attrs...)
}

func (o *otelInstruments) recordFileWritten(job string, rows int) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String(AttrJob, job)}
	o.recordCounter(o.filesWritten, 1, attrs...)
	o.recordCounter(o.rowsWritten, int64(rows), attrs...)
}

func (o *otelInstruments) recordCounter(counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	counter.Add(o.ctx, value, metric.WithAttributes(attrs...))
}

func (o *otelInstruments) recordHistogram(hist metric.Float64Histogram, value float64, attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	hist.Record(o.ctx, value, metric.WithAttributes(attrs...))
}
