package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"

	apperrors "github.com/kbukum/endpoints/errors"
	"github.com/kbukum/endpoints/logger"
)

// Recovery logs a panicking handler's stack and, unless the response has
// started, answers 500 with the error envelope.
func Recovery(log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := record(w)
			defer func() {
				p := recover()
				if p == nil {
					return
				}
				if p == http.ErrAbortHandler {
					panic(p)
				}
				log.WithContext(r.Context()).Error("handler panicked", logger.Fields(
					logger.FieldError, fmt.Sprint(p),
					"stack", string(debug.Stack()),
					"method", r.Method,
					"path", r.URL.Path,
				))
				if rec.started() {
					// Too late for an error envelope.
					return
				}
				rec.Header().Set("Content-Type", "application/json")
				rec.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(rec).Encode(apperrors.Internal(nil).ToResponse())
			}()
			next.ServeHTTP(rec, r)
		})
	}
}
