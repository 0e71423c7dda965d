// Package errors defines AppError, the coded error returned at the config
// and HTTP boundaries. Each code fixes the HTTP status and retryable hint,
// and ToResponse renders the envelope clients receive.
package errors
