// Package observability provides OpenTelemetry tracing and metrics for
// the failover engine.
//
// InitTracer and InitMeter configure global OTLP HTTP exporters; both are
// optional. When neither is initialized the engine's span and metric
// recording degrades to the OpenTelemetry no-op providers, so telemetry
// never becomes a correctness concern for callers.
package observability
