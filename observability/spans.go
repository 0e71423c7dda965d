package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentation = "github.com/kbukum/endpoints"

// Span names.
const (
	SpanInvoke      = "endpoints.invoke"
	SpanHTTPRequest = "http.request"
)

// Attribute keys.
const (
	AttrService    = attribute.Key("service.name")
	AttrRequestID  = attribute.Key("request.id")
	AttrBackend    = attribute.Key("endpoints.backend")
	AttrTransport  = attribute.Key("endpoints.transport")
	AttrFallback   = attribute.Key("endpoints.fallback")
	AttrDurationMs = attribute.Key("duration_ms")
	AttrHTTPMethod = attribute.Key("http.method")
	AttrHTTPRoute  = attribute.Key("http.route")
	AttrHTTPStatus = attribute.Key("http.status_code")
)

// StartSpan starts a span on the global tracer provider.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return otel.Tracer(instrumentation).Start(ctx, name, opts...)
}

// SetAttributes annotates the span in ctx, if it is recording.
func SetAttributes(ctx context.Context, attrs ...attribute.KeyValue) {
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(attrs...)
	}
}

// RecordError marks the span in ctx failed with err.
func RecordError(ctx context.Context, err error) {
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}
