package middleware

import (
	"net/http"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/endpoints/observability"
)

// Tracing opens a server span per request. With no tracer provider
// installed the span is a no-op.
func Tracing() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := observability.StartSpan(r.Context(), observability.SpanHTTPRequest,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					observability.AttrHTTPMethod.String(r.Method),
					observability.AttrHTTPRoute.String(r.URL.Path),
				))
			defer span.End()
			if id := r.Header.Get(HeaderRequestID); id != "" {
				span.SetAttributes(observability.AttrRequestID.String(id))
			}

			rec := record(w)
			next.ServeHTTP(rec, r.WithContext(ctx))
			span.SetAttributes(observability.AttrHTTPStatus.Int(rec.Status()))
			if status := rec.Status(); status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
			}
		})
	}
}
