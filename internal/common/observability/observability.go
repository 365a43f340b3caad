package observability

import (
	"context"
	"log"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Observability bundles the meter and tracer providers of one process.
type Observability struct {
	meterProvider  *metric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
	meter          otelmetric.Meter
	tracer         trace.Tracer
	callCounter    otelmetric.Int64Counter
	callDuration   otelmetric.Float64Histogram
}

// New wires an otel meter provider backed by a prometheus exporter registered
// on reg (the default registerer when nil) and an SDK tracer provider.
func New(serviceName string, reg promclient.Registerer) *Observability {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSampler(sdktrace.AlwaysSample()))
	otel.SetTracerProvider(tp)

	o := &Observability{
		tracerProvider: tp,
		tracer:         tp.Tracer(serviceName),
	}

	opts := []prometheus.Option{}
	if reg != nil {
		opts = append(opts, prometheus.WithRegisterer(reg))
	}
	exporter, err := prometheus.New(opts...)
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return o
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	callCounter, _ := meter.Int64Counter(
		"backend.calls",
		otelmetric.WithDescription("Number of backend calls"),
	)

	callDuration, _ := meter.Float64Histogram(
		"backend.calls.duration",
		otelmetric.WithDescription("Backend call duration"),
		otelmetric.WithUnit("ms"),
	)

	o.meterProvider = provider
	o.meter = meter
	o.callCounter = callCounter
	o.callDuration = callDuration
	return o
}

// StartSpan starts a span named name. Callers must End the returned span.
func (o *Observability) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if o == nil || o.tracer == nil {
		return otel.Tracer("krixo-panel").Start(ctx, name, trace.WithAttributes(attrs...))
	}
	return o.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// RecordCall records one backend call with its outcome.
func (o *Observability) RecordCall(ctx context.Context, endpoint, status string, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := otelmetric.WithAttributes(
		attribute.String("endpoint", endpoint),
		attribute.String("status", status),
	)
	if o.callCounter != nil {
		o.callCounter.Add(ctx, 1, attrs)
	}
	if o.callDuration != nil {
		o.callDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
	}
}

// EndSpan marks span failed when err is non-nil and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (o *Observability) Shutdown() {
	if o == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if o.meterProvider != nil {
		_ = o.meterProvider.Shutdown(ctx)
	}
	if o.tracerProvider != nil {
		_ = o.tracerProvider.Shutdown(ctx)
	}
}
