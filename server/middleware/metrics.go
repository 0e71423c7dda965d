package middleware

import (
	"net/http"
	"time"

	"github.com/kbukum/endpoints/observability"
)

// Metrics records request count, duration, and in-flight requests.
func Metrics(m *observability.Metrics) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			start := time.Now()
			m.RecordRequestStart(ctx)

			rec := record(w)
			next.ServeHTTP(rec, r)

			m.RecordRequestEnd(ctx, r.Method, r.URL.Path, rec.Status(), time.Since(start))
		})
	}
}
