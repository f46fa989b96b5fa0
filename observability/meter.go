package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/ekarabulut/failover/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service embedding the engine.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
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

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
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

// Metrics holds the metric instruments recorded by the failover engine.
type Metrics struct {
	callTotal       metric.Int64Counter
	callDuration    metric.Float64Histogram
	attemptTotal    metric.Int64Counter
	attemptDuration metric.Float64Histogram
	failoverTotal   metric.Int64Counter
	backoffDelay    metric.Float64Histogram
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	callTotal, err := meter.Int64Counter("failover.call.total",
		metric.WithDescription("Total number of orchestrated calls"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating call.total counter: %w", err)
	}

	callDuration, err := meter.Float64Histogram("failover.call.duration",
		metric.WithDescription("Duration of orchestrated calls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating call.duration histogram: %w", err)
	}

	attemptTotal, err := meter.Int64Counter("failover.attempt.total",
		metric.WithDescription("Total number of provider attempts"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating attempt.total counter: %w", err)
	}

	attemptDuration, err := meter.Float64Histogram("failover.attempt.duration",
		metric.WithDescription("Duration of provider attempts in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating attempt.duration histogram: %w", err)
	}

	failoverTotal, err := meter.Int64Counter("failover.failover.total",
		metric.WithDescription("Times execution moved past an exhausted provider"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating failover.total counter: %w", err)
	}

	backoffDelay, err := meter.Float64Histogram("failover.backoff.delay",
		metric.WithDescription("Computed backoff delays in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating backoff.delay histogram: %w", err)
	}

	return &Metrics{
		callTotal:       callTotal,
		callDuration:    callDuration,
		attemptTotal:    attemptTotal,
		attemptDuration: attemptDuration,
		failoverTotal:   failoverTotal,
		backoffDelay:    backoffDelay,
	}, nil
}

// RecordCall records one orchestrated call.
func (m *Metrics) RecordCall(ctx context.Context, operation, strategy, status string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("strategy", strategy),
		attribute.String("status", status),
	)
	m.callTotal.Add(ctx, 1, attrs)
	m.callDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("strategy", strategy),
	))
}

// RecordAttempt records one provider attempt.
func (m *Metrics) RecordAttempt(ctx context.Context, provider, operation, status string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("operation", operation),
		attribute.String("status", status),
	)
	m.attemptTotal.Add(ctx, 1, attrs)
	m.attemptDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("operation", operation),
	))
}

// RecordFailover records that execution moved past an exhausted provider.
func (m *Metrics) RecordFailover(ctx context.Context, fromProvider, operation string) {
	m.failoverTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", fromProvider),
		attribute.String("operation", operation),
	))
}

// RecordBackoff records a computed backoff delay.
func (m *Metrics) RecordBackoff(ctx context.Context, provider, operation string, delay time.Duration) {
	m.backoffDelay.Record(ctx, delay.Seconds(), metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("operation", operation),
	))
}
