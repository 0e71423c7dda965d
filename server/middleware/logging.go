package middleware

import (
	"net/http"
	"time"

	"github.com/kbukum/endpoints/logger"
)

// quietPaths are polled by orchestrators and not worth a record each.
var quietPaths = map[string]bool{
	"/health":  true,
	"/version": true,
}

// RequestLogger records method, path, status, latency and response size of
// each request. Bodies are never logged.
func RequestLogger(log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if quietPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			rec := record(w)
			next.ServeHTTP(rec, r)

			fields := logger.Fields(
				"method", r.Method,
				"path", r.URL.Path,
				logger.FieldStatus, rec.Status(),
				logger.FieldDuration, time.Since(start).Milliseconds(),
				"bytes", rec.written,
			)
			logByStatus(log.WithContext(r.Context()), fields, rec.Status())
		})
	}
}

// logByStatus logs at Error for 5xx, Warn for 4xx, Debug otherwise.
func logByStatus(log *logger.Logger, fields map[string]any, status int) {
	const msg = "request served"
	switch {
	case status >= http.StatusInternalServerError:
		log.Error(msg, fields)
	case status >= http.StatusBadRequest:
		log.Warn(msg, fields)
	default:
		log.Debug(msg, fields)
	}
}
