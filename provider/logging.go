package provider

import (
	"context"
	"time"

	"github.com/kbukum/endpoints/logger"
)

// WithLogging logs each call's backend and duration: failures at Error,
// successes at Debug. Inputs and outputs are never logged.
func WithLogging[I, O any](log *logger.Logger) Middleware[I, O] {
	return Intercept(func(ctx context.Context, name string, input I, next ExecuteFunc[I, O]) (O, error) {
		start := time.Now()
		out, err := next(ctx, input)

		fields := logger.Fields(
			logger.FieldBackend, name,
			logger.FieldDuration, time.Since(start).Milliseconds(),
		)
		if err != nil {
			log.WithContext(ctx).Error("backend call failed", logger.MergeWithError(fields, err))
		} else {
			log.WithContext(ctx).Debug("backend call ok", fields)
		}
		return out, err
	})
}
