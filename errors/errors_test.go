package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestNew_TraitsFollowCode(t *testing.T) {
	tests := []struct {
		code      ErrorCode
		status    int
		retryable bool
	}{
		{ErrCodeConnectionFailed, http.StatusBadGateway, true},
		{ErrCodeTimeout, http.StatusGatewayTimeout, true},
		{ErrCodeExternalService, http.StatusBadGateway, true},
		{ErrCodeResponseShape, http.StatusBadGateway, false},
		{ErrCodeUnauthorized, http.StatusBadGateway, false},
		{ErrCodeMissingField, http.StatusBadRequest, false},
		{ErrCodeNotFound, http.StatusNotFound, false},
		{ErrCodeInternal, http.StatusInternalServerError, false},
		{ErrorCode("SOMETHING_NEW"), http.StatusInternalServerError, false},
	}
	for _, tc := range tests {
		t.Run(string(tc.code), func(t *testing.T) {
			err := New(tc.code, "msg")
			if err.HTTPStatus != tc.status || err.Retryable != tc.retryable {
				t.Errorf("got status %d retryable %v, want %d %v", err.HTTPStatus, err.Retryable, tc.status, tc.retryable)
			}
			if err.Message != "msg" || err.Code != tc.code {
				t.Errorf("got %+v", err)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(ErrCodeInvalidInput, "query %q too long (%d)", "abc", 3)
	if err.Message != `query "abc" too long (3)` {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestBackendConstructors(t *testing.T) {
	cause := fmt.Errorf("boom")
	tests := []struct {
		name string
		err  *AppError
		code ErrorCode
	}{
		{"connection", ConnectionFailed("chat-large", cause), ErrCodeConnectionFailed},
		{"timeout", Timeout("chat-large", cause), ErrCodeTimeout},
		{"external", ExternalServiceError("chat-large", cause), ErrCodeExternalService},
		{"unauthorized", Unauthorized("chat-large", cause), ErrCodeUnauthorized},
		{"shape", ResponseShape("chat-large", "choices[0]", cause), ErrCodeResponseShape},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("Code = %s, want %s", tc.err.Code, tc.code)
			}
			if tc.err.Details["backend"] != "chat-large" {
				t.Errorf("backend detail = %v", tc.err.Details["backend"])
			}
			if !strings.Contains(tc.err.Message, "chat-large") {
				t.Errorf("Message = %q", tc.err.Message)
			}
			if !stderrors.Is(tc.err, cause) {
				t.Error("cause not reachable through errors.Is")
			}
		})
	}
}

func TestResponseShape_Path(t *testing.T) {
	err := ResponseShape("completion-only", "[0].generated_text", nil)
	if err.Details["path"] != "[0].generated_text" {
		t.Errorf("path detail = %v", err.Details["path"])
	}
	if err.Error() != "RESPONSE_SHAPE: Backend completion-only answered with an unexpected response shape." {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestFieldConstructors(t *testing.T) {
	if err := InvalidInput("query", "must be a string"); err.Details["field"] != "query" || err.Code != ErrCodeInvalidInput {
		t.Errorf("InvalidInput = %+v", err)
	}
	if err := InvalidInput("", "bad"); err.Details != nil {
		t.Errorf("InvalidInput without field has details %v", err.Details)
	}
	if err := MissingField("backends.chat-large"); !strings.Contains(err.Message, "backends.chat-large") {
		t.Errorf("MissingField message = %q", err.Message)
	}
	err := InvalidFormat("line", "JSON object")
	if err.Details["field"] != "line" || err.Details["expected_format"] != "JSON object" {
		t.Errorf("InvalidFormat details = %v", err.Details)
	}
	if err := NotFound("/nope"); err.HTTPStatus != http.StatusNotFound || err.Details["path"] != "/nope" {
		t.Errorf("NotFound = %+v", err)
	}
}

func TestError_WithCause(t *testing.T) {
	err := Internal(fmt.Errorf("disk full"))
	if err.Error() != "INTERNAL_ERROR: An unexpected error occurred.: disk full" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestWithDetail(t *testing.T) {
	err := Validation("bad").WithDetail("field", "url").WithDetail("n", 2)
	if err.Details["field"] != "url" || err.Details["n"] != 2 {
		t.Errorf("Details = %v", err.Details)
	}
}

func TestAsAppError(t *testing.T) {
	appErr, ok := AsAppError(fmt.Errorf("wrap: %w", MissingField("key")))
	if !ok || appErr.Code != ErrCodeMissingField {
		t.Fatalf("AsAppError = %v, %v", appErr, ok)
	}
	if IsAppError(fmt.Errorf("plain")) || IsAppError(nil) {
		t.Error("plain and nil errors are not AppErrors")
	}
}

func TestToResponse_OmitsCause(t *testing.T) {
	resp := ExternalServiceError("gpt2", fmt.Errorf("upstream said: secret body")).ToResponse()
	if resp.Error.Code != ErrCodeExternalService || !resp.Error.Retryable {
		t.Errorf("body = %+v", resp.Error)
	}
	if strings.Contains(fmt.Sprint(resp), "secret body") {
		t.Errorf("cause leaked into response: %+v", resp)
	}
}
