// Package provider is the call abstraction backends sit behind and the
// middleware that wraps them.
//
// A RequestResponse[I, O] takes one input and returns one output. Both
// llm.Dispatcher and llm.ModelClient are RequestResponse[string, llm.Result].
//
// Middleware is built with Intercept, which only sees the Execute path, and
// composed with Chain, first listed outermost:
//
//	wrapped := provider.Chain(
//	    provider.WithLogging[string, llm.Result](log),
//	    provider.WithMetrics[string, llm.Result](metrics),
//	    provider.WithTracing[string, llm.Result]("endpoints"),
//	)(dispatcher)
//
// Adapt changes a provider's input and output types.
package provider
