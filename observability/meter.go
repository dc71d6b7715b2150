package observability

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/stripefdw/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment.
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows plain HTTP to the collector.
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// MeterConfigFromTracer derives a meter config that exports to the same
// collector as the tracer.
func MeterConfigFromTracer(tc TracerConfig) MeterConfig {
	mc := DefaultMeterConfig(tc.ServiceName)
	mc.ServiceVersion = tc.ServiceVersion
	mc.Environment = tc.Environment
	mc.Endpoint = tc.Endpoint
	mc.Insecure = tc.Insecure
	return mc
}

// InitMeter installs an OTLP/HTTP meter provider as the global provider.
// The returned provider must be shut down on exit to flush metrics.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(ctx, config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Get("observability").Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// ScanMetrics holds the instruments recorded by a scan.
type ScanMetrics struct {
	fetchTotal    metric.Int64Counter
	fetchDuration metric.Float64Histogram
	rowsDecoded   metric.Int64Counter
	scanErrors    metric.Int64Counter
}

// NewScanMetrics creates the scan instruments on meter.
func NewScanMetrics(meter metric.Meter) (*ScanMetrics, error) {
	fetchTotal, err := meter.Int64Counter("stripe.fetch.total",
		metric.WithDescription("Remote fetches by object and final HTTP status"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stripe.fetch.total counter: %w", err)
	}

	fetchDuration, err := meter.Float64Histogram("stripe.fetch.duration",
		metric.WithDescription("Duration of remote fetches, retries included"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stripe.fetch.duration histogram: %w", err)
	}

	rowsDecoded, err := meter.Int64Counter("stripe.rows.decoded",
		metric.WithDescription("Rows produced by the response decoder"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stripe.rows.decoded counter: %w", err)
	}

	scanErrors, err := meter.Int64Counter("stripe.scan.errors",
		metric.WithDescription("Failed scans by error code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stripe.scan.errors counter: %w", err)
	}

	return &ScanMetrics{
		fetchTotal:    fetchTotal,
		fetchDuration: fetchDuration,
		rowsDecoded:   rowsDecoded,
		scanErrors:    scanErrors,
	}, nil
}

// RecordFetch records one remote fetch. status is 0 when no response arrived.
func (m *ScanMetrics) RecordFetch(ctx context.Context, object string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	statusLabel := "none"
	if status > 0 {
		statusLabel = strconv.Itoa(status)
	}
	m.fetchTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("object", object),
		attribute.String("status", statusLabel),
	))
	m.fetchDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("object", object),
	))
}

// RecordRows records decoded rows.
func (m *ScanMetrics) RecordRows(ctx context.Context, object string, n int) {
	if m == nil {
		return
	}
	m.rowsDecoded.Add(ctx, int64(n), metric.WithAttributes(attribute.String("object", object)))
}

// RecordError records a failed scan.
func (m *ScanMetrics) RecordError(ctx context.Context, object, code string) {
	if m == nil {
		return
	}
	m.scanErrors.Add(ctx, 1, metric.WithAttributes(
		attribute.String("object", object),
		attribute.String("code", code),
	))
}
