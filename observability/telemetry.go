// Package observability provides OpenTelemetry integration and audit
// logging for tool invocations.
package observability

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Telemetry provides metrics and tracing. It satisfies the executor's
// Telemetry interface and the discovery Counter interface.
type Telemetry interface {
	// StartSpan starts a trace span; the returned func ends it.
	StartSpan(ctx context.Context, name string) (context.Context, func())

	// RecordCounter increments the named counter.
	RecordCounter(name string, labels map[string]string)

	// RecordDuration records a duration in seconds on the named
	// histogram.
	RecordDuration(name string, seconds float64, labels map[string]string)
}

// TelemetryConfig configures telemetry.
type TelemetryConfig struct {
	// ServiceName is the service name for tracing.
	ServiceName string

	// EnableTracing enables distributed tracing.
	EnableTracing bool

	// EnableMetrics enables metrics collection.
	EnableMetrics bool

	// MetricsPrefix is the prefix for all metric names.
	MetricsPrefix string
}

// DefaultTelemetryConfig returns default configuration.
func DefaultTelemetryConfig() TelemetryConfig {
	return TelemetryConfig{
		ServiceName:   "bazelshim",
		EnableTracing: true,
		EnableMetrics: true,
		MetricsPrefix: "bazelshim_",
	}
}

// telemetry implements Telemetry on the global OTel providers.
type telemetry struct {
	config TelemetryConfig
	tracer trace.Tracer
	meter  metric.Meter

	mu         sync.Mutex
	counters   map[string]metric.Int64Counter
	histograms map[string]metric.Float64Histogram
}

// NewTelemetry creates a new telemetry instance.
func NewTelemetry(config TelemetryConfig) Telemetry {
	return &telemetry{
		config:     config,
		tracer:     otel.Tracer(config.ServiceName),
		meter:      otel.Meter(config.ServiceName),
		counters:   make(map[string]metric.Int64Counter),
		histograms: make(map[string]metric.Float64Histogram),
	}
}

// StartSpan implements Telemetry.StartSpan.
func (t *telemetry) StartSpan(ctx context.Context, name string) (context.Context, func()) {
	if !t.config.EnableTracing {
		return ctx, func() {}
	}
	ctx, span := t.tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
	return ctx, func() { span.End() }
}

// RecordCounter implements Telemetry.RecordCounter.
func (t *telemetry) RecordCounter(name string, labels map[string]string) {
	if !t.config.EnableMetrics {
		return
	}
	counter, err := t.counter(name)
	if err != nil {
		return
	}
	counter.Add(context.Background(), 1, metric.WithAttributes(labelsToAttributes(labels)...))
}

// RecordDuration implements Telemetry.RecordDuration.
func (t *telemetry) RecordDuration(name string, seconds float64, labels map[string]string) {
	if !t.config.EnableMetrics {
		return
	}
	histogram, err := t.histogram(name)
	if err != nil {
		return
	}
	histogram.Record(context.Background(), seconds, metric.WithAttributes(labelsToAttributes(labels)...))
}

func (t *telemetry) counter(name string) (metric.Int64Counter, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if c, ok := t.counters[name]; ok {
		return c, nil
	}
	c, err := t.meter.Int64Counter(t.config.MetricsPrefix + name)
	if err != nil {
		return nil, err
	}
	t.counters[name] = c
	return c, nil
}

func (t *telemetry) histogram(name string) (metric.Float64Histogram, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if h, ok := t.histograms[name]; ok {
		return h, nil
	}
	h, err := t.meter.Float64Histogram(t.config.MetricsPrefix + name)
	if err != nil {
		return nil, err
	}
	t.histograms[name] = h
	return h, nil
}

func labelsToAttributes(labels map[string]string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(labels))
	for k, v := range labels {
		attrs = append(attrs, attribute.String(k, v))
	}
	return attrs
}
