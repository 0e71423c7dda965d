package httpclient

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

// maxBodySnippet caps how much of an error body is quoted in the message.
const maxBodySnippet = 256

// ErrorCode classifies a failed call.
type ErrorCode int

const (
	ErrCodeTimeout ErrorCode = iota
	ErrCodeConnection
	// ErrCodeAuth is a 401 or 403.
	ErrCodeAuth
	ErrCodeNotFound
	ErrCodeRateLimit
	// ErrCodeValidation is any other 4xx, or a request that could not be built.
	ErrCodeValidation
	// ErrCodeServer is a 5xx or an unexpected non-2xx status.
	ErrCodeServer
	// ErrCodeTooLarge is a response over Config.MaxResponseBytes.
	ErrCodeTooLarge
)

var codeNames = map[ErrorCode]string{
	ErrCodeTimeout:    "timeout",
	ErrCodeConnection: "connection",
	ErrCodeAuth:       "auth",
	ErrCodeNotFound:   "not_found",
	ErrCodeRateLimit:  "rate_limit",
	ErrCodeValidation: "validation",
	ErrCodeServer:     "server",
	ErrCodeTooLarge:   "too_large",
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "unknown"
}

// Error is a classified failure. StatusCode is 0 when no response arrived.
type Error struct {
	StatusCode int
	Code       ErrorCode
	Message    string
	// Retryable marks transient failures. The client itself never retries.
	Retryable bool
	// Body is the complete response body, if any.
	Body []byte
	Err  error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("httpclient: HTTP %d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("httpclient: %s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// NewTimeoutError wraps err as a retryable timeout.
func NewTimeoutError(err error) *Error {
	return &Error{Code: ErrCodeTimeout, Message: err.Error(), Retryable: true, Err: err}
}

// NewConnectionError wraps err as a retryable connection failure.
func NewConnectionError(err error) *Error {
	return &Error{Code: ErrCodeConnection, Message: err.Error(), Retryable: true, Err: err}
}

func invalidRequest(stage string, err error) *Error {
	return &Error{Code: ErrCodeValidation, Message: stage + ": " + err.Error(), Err: err}
}

// ClassifyStatusCode returns nil for 2xx and a classified *Error otherwise.
// The message quotes the start of body.
func ClassifyStatusCode(status int, body []byte) *Error {
	if status >= 200 && status < 300 {
		return nil
	}
	code, retryable := classify(status)

	msg := http.StatusText(status)
	if msg == "" {
		msg = fmt.Sprintf("status %d", status)
	}
	if s := snippet(body); s != "" {
		msg += ": " + s
	}
	return &Error{StatusCode: status, Code: code, Message: msg, Retryable: retryable, Body: body}
}

func classify(status int) (ErrorCode, bool) {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return ErrCodeAuth, false
	case status == http.StatusNotFound:
		return ErrCodeNotFound, false
	case status == http.StatusTooManyRequests:
		return ErrCodeRateLimit, true
	case status >= 400 && status < 500:
		return ErrCodeValidation, false
	case status >= 500:
		return ErrCodeServer, true
	}
	return ErrCodeServer, false
}

// snippet trims body and cuts it on a rune boundary.
func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) <= maxBodySnippet {
		return s
	}
	cut := maxBodySnippet
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// AsError finds the *Error in err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether err carries an *Error with the given code.
func Is(err error, code ErrorCode) bool {
	e, ok := AsError(err)
	return ok && e.Code == code
}

// IsRetryable reports whether err is a transient *Error.
func IsRetryable(err error) bool {
	e, ok := AsError(err)
	return ok && e.Retryable
}
