package middleware

import (
	"net/http"
	"slices"
)

// Middleware wraps the whole handler, so it also sees requests Gin
// answers with 404 or 405.
type Middleware func(http.Handler) http.Handler

// Chain composes mws with the first as the outermost.
func Chain(mws ...Middleware) Middleware {
	return func(h http.Handler) http.Handler {
		for _, mw := range slices.Backward(mws) {
			h = mw(h)
		}
		return h
	}
}
