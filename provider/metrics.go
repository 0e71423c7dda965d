package provider

import (
	"context"
	"errors"
	"time"

	"github.com/openai/openai-go"

	"github.com/kbukum/endpoints/httpclient"
	"github.com/kbukum/endpoints/httpclient/rest"
	"github.com/kbukum/endpoints/llm"
	"github.com/kbukum/endpoints/observability"
)

// WithMetrics counts and times every call per backend. Failures also bump
// the error counter under errorKind.
func WithMetrics[I, O any](metrics *observability.Metrics) Middleware[I, O] {
	return Intercept(func(ctx context.Context, name string, input I, next ExecuteFunc[I, O]) (O, error) {
		start := time.Now()
		out, err := next(ctx, input)

		status := "ok"
		if err != nil {
			status = "error"
			metrics.RecordError(ctx, errorKind(err), name)
		}
		metrics.RecordInvocation(ctx, name, status, time.Since(start))
		return out, err
	})
}

// errorKind labels a failure for the error counter. Transport failures
// use the httpclient code; a body that arrived but could not be read as
// the backend's envelope is response_shape or decode.
func errorKind(err error) string {
	if llm.IsResponseShape(err) {
		return "response_shape"
	}
	if e, ok := httpclient.AsError(err); ok {
		return e.Code.String()
	}
	var decodeErr *rest.DecodeError
	var apiErr *openai.Error
	switch {
	case errors.As(err, &decodeErr):
		return "decode"
	case errors.As(err, &apiErr):
		return "upstream"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	}
	return "other"
}
