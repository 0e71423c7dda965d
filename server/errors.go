package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/url"

	"github.com/openai/openai-go"

	apperrors "github.com/kbukum/endpoints/errors"
	"github.com/kbukum/endpoints/httpclient"
	"github.com/kbukum/endpoints/httpclient/rest"
	"github.com/kbukum/endpoints/llm"
)

// toAppError maps an invocation failure to the error the client sees.
// Backend failures become 5xx gateway errors naming the backend; the
// underlying cause stays server-side.
func toAppError(backend string, err error) *apperrors.AppError {
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr
	}

	var shape *llm.ResponseShapeError
	if stderrors.As(err, &shape) {
		return apperrors.ResponseShape(shape.Backend, shape.Path, err)
	}

	if httpErr, ok := httpclient.AsError(err); ok {
		switch httpErr.Code {
		case httpclient.ErrCodeTimeout:
			return apperrors.Timeout(backend, err)
		case httpclient.ErrCodeConnection:
			return apperrors.ConnectionFailed(backend, err)
		case httpclient.ErrCodeAuth:
			return apperrors.Unauthorized(backend, err)
		default:
			return apperrors.ExternalServiceError(backend, err).
				WithDetail("upstream_status", httpErr.StatusCode)
		}
	}

	var apiErr *openai.Error
	if stderrors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden {
			return apperrors.Unauthorized(backend, err)
		}
		return apperrors.ExternalServiceError(backend, err).
			WithDetail("upstream_status", apiErr.StatusCode)
	}

	var decodeErr *rest.DecodeError
	if stderrors.As(err, &decodeErr) {
		return apperrors.ExternalServiceError(backend, err)
	}

	if stderrors.Is(err, context.DeadlineExceeded) {
		return apperrors.Timeout(backend, err)
	}

	// The SDK transport reports network failures as *url.Error.
	var urlErr *url.Error
	if stderrors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return apperrors.Timeout(backend, err)
		}
		return apperrors.ConnectionFailed(backend, err)
	}
	return apperrors.Internal(err)
}
