package provider

import (
	"context"
	"slices"
)

// Middleware wraps a provider with cross-cutting behavior.
type Middleware[I, O any] func(RequestResponse[I, O]) RequestResponse[I, O]

// Chain composes middlewares so the first one listed is outermost:
// Chain(a, b, c)(p) is a(b(c(p))).
func Chain[I, O any](middlewares ...Middleware[I, O]) Middleware[I, O] {
	return func(p RequestResponse[I, O]) RequestResponse[I, O] {
		for _, mw := range slices.Backward(middlewares) {
			p = mw(p)
		}
		return p
	}
}

// Around runs code around one Execute call. name is the wrapped provider's
// Name and next performs the call.
type Around[I, O any] func(ctx context.Context, name string, input I, next ExecuteFunc[I, O]) (O, error)

// Intercept turns an Around into a Middleware. Name and IsAvailable reach
// the wrapped provider unchanged.
func Intercept[I, O any](around Around[I, O]) Middleware[I, O] {
	return func(p RequestResponse[I, O]) RequestResponse[I, O] {
		return &intercepted[I, O]{RequestResponse: p, around: around}
	}
}

type intercepted[I, O any] struct {
	RequestResponse[I, O]
	around Around[I, O]
}

func (w *intercepted[I, O]) Execute(ctx context.Context, input I) (O, error) {
	return w.around(ctx, w.Name(), input, w.RequestResponse.Execute)
}
