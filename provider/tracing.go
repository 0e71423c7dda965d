package provider

import (
	"context"
	"time"

	"github.com/kbukum/endpoints/observability"
)

// WithTracing opens a span named "<service>.<backend>" around each call.
func WithTracing[I, O any](service string) Middleware[I, O] {
	return Intercept(func(ctx context.Context, name string, input I, next ExecuteFunc[I, O]) (O, error) {
		ctx, span := observability.StartSpan(ctx, service+"."+name)
		defer span.End()
		observability.SetAttributes(ctx,
			observability.AttrService.String(service),
			observability.AttrBackend.String(name),
		)

		start := time.Now()
		out, err := next(ctx, input)
		observability.SetAttributes(ctx, observability.AttrDurationMs.Int64(time.Since(start).Milliseconds()))
		if err != nil {
			observability.RecordError(ctx, err)
		}
		return out, err
	})
}
