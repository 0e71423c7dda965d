package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the error the host server and config layer hand to callers.
// Cause stays server-side; only code, message, retryable and details are
// serialized.
type AppError struct {
	Code       ErrorCode      `json:"code"`
	Message    string         `json:"message"`
	Retryable  bool           `json:"retryable"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Cause      error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *AppError) Unwrap() error { return e.Cause }

// WithCause attaches the underlying error.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail adds one entry to Details.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = map[string]any{}
	}
	e.Details[key] = value
	return e
}

// New builds an AppError whose status and retryable flag come from code.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		Retryable:  code.Retryable(),
		HTTPStatus: code.HTTPStatus(),
	}
}

// Newf is New with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

// AsAppError finds an AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := stderrors.As(err, &appErr)
	return appErr, ok
}

// IsAppError reports whether err's chain holds an AppError.
func IsAppError(err error) bool {
	_, ok := AsAppError(err)
	return ok
}

func backend(code ErrorCode, name string, cause error, format string) *AppError {
	return Newf(code, format, name).WithDetail("backend", name).WithCause(cause)
}

// ConnectionFailed means the backend could not be reached.
func ConnectionFailed(name string, cause error) *AppError {
	return backend(ErrCodeConnectionFailed, name, cause, "Unable to connect to backend %s.")
}

// Timeout means the backend did not answer in time.
func Timeout(name string, cause error) *AppError {
	return backend(ErrCodeTimeout, name, cause, "Backend %s took too long to answer.")
}

// ExternalServiceError means the backend answered with an error status.
func ExternalServiceError(name string, cause error) *AppError {
	return backend(ErrCodeExternalService, name, cause, "Backend %s returned an error.")
}

// Unauthorized means the backend rejected the configured credential.
func Unauthorized(name string, cause error) *AppError {
	return backend(ErrCodeUnauthorized, name, cause, "Backend %s rejected the configured credential.")
}

// ResponseShape means the backend envelope could not be read at path.
func ResponseShape(name, path string, cause error) *AppError {
	return backend(ErrCodeResponseShape, name, cause, "Backend %s answered with an unexpected response shape.").
		WithDetail("path", path)
}

// InvalidInput rejects field for reason.
func InvalidInput(field, reason string) *AppError {
	e := New(ErrCodeInvalidInput, "Invalid input: "+reason)
	if field != "" {
		e.WithDetail("field", field)
	}
	return e
}

// Validation carries a prepared validation message.
func Validation(message string) *AppError {
	return New(ErrCodeInvalidInput, message)
}

// MissingField names a required field that is empty.
func MissingField(field string) *AppError {
	return New(ErrCodeMissingField, "Missing required field: "+field).WithDetail("field", field)
}

// InvalidFormat names a field that did not parse as expected.
func InvalidFormat(field, expected string) *AppError {
	return Newf(ErrCodeInvalidFormat, "Invalid format for %s. Expected: %s", field, expected).
		WithDetail("field", field).
		WithDetail("expected_format", expected)
}

// NotFound answers a path with no route.
func NotFound(path string) *AppError {
	return Newf(ErrCodeNotFound, "No route for %s.", path).WithDetail("path", path)
}

// Internal hides cause behind a generic message.
func Internal(cause error) *AppError {
	return New(ErrCodeInternal, "An unexpected error occurred.").WithCause(cause)
}
