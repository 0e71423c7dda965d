package errors

import "net/http"

// ErrorCode is the machine-readable code clients switch on.
type ErrorCode string

// Backend failures. The first three are transient.
const (
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	ErrCodeTimeout          ErrorCode = "TIMEOUT"
	ErrCodeExternalService  ErrorCode = "EXTERNAL_SERVICE_ERROR"
	// ErrCodeResponseShape means the backend envelope lacks generated text
	// where its dialect expects it.
	ErrCodeResponseShape ErrorCode = "RESPONSE_SHAPE"
	// ErrCodeUnauthorized means the backend rejected the configured key.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
)

// Caller and configuration mistakes.
const (
	ErrCodeInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrCodeMissingField  ErrorCode = "MISSING_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
)

// ErrCodeInternal stands in for any unexpected failure.
const ErrCodeInternal ErrorCode = "INTERNAL_ERROR"

// traits is what every error of one code shares.
type traits struct {
	status    int
	retryable bool
}

var codeTraits = map[ErrorCode]traits{
	ErrCodeConnectionFailed: {http.StatusBadGateway, true},
	ErrCodeTimeout:          {http.StatusGatewayTimeout, true},
	ErrCodeExternalService:  {http.StatusBadGateway, true},
	ErrCodeResponseShape:    {http.StatusBadGateway, false},
	ErrCodeUnauthorized:     {http.StatusBadGateway, false},
	ErrCodeInvalidInput:     {http.StatusBadRequest, false},
	ErrCodeMissingField:     {http.StatusBadRequest, false},
	ErrCodeInvalidFormat:    {http.StatusBadRequest, false},
	ErrCodeNotFound:         {http.StatusNotFound, false},
	ErrCodeInternal:         {http.StatusInternalServerError, false},
}

// HTTPStatus is the status the host server answers with; 500 for codes it
// does not know.
func (c ErrorCode) HTTPStatus() int {
	if t, ok := codeTraits[c]; ok {
		return t.status
	}
	return http.StatusInternalServerError
}

// Retryable reports whether the same call may succeed later. Nothing in
// this module retries; the flag is advice for callers.
func (c ErrorCode) Retryable() bool {
	return codeTraits[c].retryable
}
