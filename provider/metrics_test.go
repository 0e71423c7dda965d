package provider

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/openai/openai-go"

	"github.com/kbukum/endpoints/httpclient"
	"github.com/kbukum/endpoints/httpclient/rest"
	"github.com/kbukum/endpoints/llm"
)

func TestErrorKind(t *testing.T) {
	shape := &llm.ResponseShapeError{Backend: "gpt2", Path: "[0].generated_text", Reason: "expected string, got null"}

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"status", httpclient.ClassifyStatusCode(429, nil), "rate_limit"},
		{"wrapped client timeout", fmt.Errorf("invoke: %w", httpclient.NewTimeoutError(errors.New("slow"))), "timeout"},
		{"response shape", fmt.Errorf("invoke: %w", shape), "response_shape"},
		{"decode", &rest.DecodeError{StatusCode: 200, Err: errors.New("invalid character")}, "decode"},
		// *openai.Error formats its request, so it is not wrapped here.
		{"sdk api error", &openai.Error{StatusCode: 500}, "upstream"},
		{"deadline", context.DeadlineExceeded, "timeout"},
		{"canceled", fmt.Errorf("wrapped: %w", context.Canceled), "canceled"},
		{"plain", errors.New("boom"), "other"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorKind(tt.err); got != tt.want {
				t.Errorf("errorKind = %q, want %q", got, tt.want)
			}
		})
	}
}
