package observability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the instruments recorded by the provider middleware and the
// HTTP server.
type Metrics struct {
	requests        metric.Int64Counter
	requestSeconds  metric.Float64Histogram
	inFlight        metric.Int64UpDownCounter
	invocations     metric.Int64Counter
	invokeSeconds   metric.Float64Histogram
	invocationError metric.Int64Counter
}

// instruments joins creation errors so NewMetrics reads as a plain list.
type instruments struct {
	meter metric.Meter
	err   error
}

func (b *instruments) check(name string, err error) {
	if err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("instrument %s: %w", name, err))
	}
}

func (b *instruments) counter(name, desc string) metric.Int64Counter {
	c, err := b.meter.Int64Counter(name, metric.WithDescription(desc))
	b.check(name, err)
	return c
}

func (b *instruments) seconds(name, desc string) metric.Float64Histogram {
	h, err := b.meter.Float64Histogram(name, metric.WithDescription(desc), metric.WithUnit("s"))
	b.check(name, err)
	return h
}

// NewMetrics creates the instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	b := &instruments{meter: meter}
	m := &Metrics{
		requests:        b.counter("endpoints.http.requests", "HTTP requests served"),
		requestSeconds:  b.seconds("endpoints.http.duration", "HTTP request latency"),
		invocations:     b.counter("endpoints.invocations", "Backend invocations by backend and outcome"),
		invokeSeconds:   b.seconds("endpoints.invocation.duration", "Backend invocation latency"),
		invocationError: b.counter("endpoints.invocation.errors", "Failed backend invocations by error kind"),
	}
	inFlight, err := meter.Int64UpDownCounter("endpoints.http.in_flight",
		metric.WithDescription("HTTP requests being served"))
	b.check("endpoints.http.in_flight", err)
	m.inFlight = inFlight

	if b.err != nil {
		return nil, b.err
	}
	return m, nil
}

// RecordRequestStart marks an HTTP request as in flight.
func (m *Metrics) RecordRequestStart(ctx context.Context) {
	m.inFlight.Add(ctx, 1)
}

// RecordRequestEnd records a finished HTTP request.
func (m *Metrics) RecordRequestEnd(ctx context.Context, method, route string, status int, elapsed time.Duration) {
	m.inFlight.Add(ctx, -1)
	rt := attribute.String("route", route)
	m.requests.Add(ctx, 1, metric.WithAttributes(attribute.String("method", method), rt, attribute.Int("status", status)))
	m.requestSeconds.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attribute.String("method", method), rt))
}

// RecordInvocation records one backend invocation; status is "ok" or
// "error".
func (m *Metrics) RecordInvocation(ctx context.Context, backend, status string, elapsed time.Duration) {
	be := attribute.String("backend", backend)
	m.invocations.Add(ctx, 1, metric.WithAttributes(be, attribute.String("status", status)))
	m.invokeSeconds.Record(ctx, elapsed.Seconds(), metric.WithAttributes(be))
}

// RecordError counts a failed invocation of backend by error kind.
func (m *Metrics) RecordError(ctx context.Context, kind, backend string) {
	m.invocationError.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("backend", backend),
	))
}
