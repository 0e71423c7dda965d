package provider

import "context"

// Provider names a backend and reports whether it can take calls.
type Provider interface {
	Name() string
	IsAvailable(ctx context.Context) bool
}

// RequestResponse answers one input with one output per Execute call. A
// backend invocation is one: a query in, a result out, one round trip in
// between.
type RequestResponse[I, O any] interface {
	Provider
	Execute(ctx context.Context, input I) (O, error)
}

// ExecuteFunc has the signature of RequestResponse.Execute.
type ExecuteFunc[I, O any] func(ctx context.Context, input I) (O, error)
