package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/endpoints/errors"
)

func TestValidator_Required(t *testing.T) {
	tests := map[string]bool{
		"https://example.test": false,
		"":                     true,
		"   ":                  true,
	}
	for value, wantErr := range tests {
		if got := New().Required("endpoint", value).HasErrors(); got != wantErr {
			t.Errorf("Required(%q) error = %v, want %v", value, got, wantErr)
		}
	}
}

func TestValidator_URL(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{"", false},
		{"https://example.test/v1/chat/completions", false},
		{"http://localhost:8080", false},
		{"example.test/path", true},
		{"ftp://example.test", true},
		{"https://", true},
		{"://bad", true},
	}
	for _, tc := range tests {
		t.Run(tc.value, func(t *testing.T) {
			v := New().URL("endpoint", tc.value)
			if v.HasErrors() != tc.wantErr {
				t.Errorf("URL(%q) errors = %v, want error %v", tc.value, v.Errors(), tc.wantErr)
			}
		})
	}
}

func TestValidator_CheckAndChain(t *testing.T) {
	v := New()
	got := v.Check(true, "model", "unused").
		Check(false, "provider", "is required with model").
		Required("key", "k")
	if got != v {
		t.Error("checks should return the same validator")
	}
	fields := v.Errors()
	if len(fields) != 1 || fields[0] != (FieldError{Field: "provider", Message: "is required with model"}) {
		t.Errorf("Errors() = %+v", fields)
	}
}

func TestValidator_Err(t *testing.T) {
	if err := New().Required("endpoint", "x").Err(); err != nil {
		t.Errorf("expected nil, got %v", err)
	}

	err := New().Required("endpoint", "").Required("key", "").Err()
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("Code = %s", appErr.Code)
	}
	if appErr.Message != "endpoint: is required; key: is required" {
		t.Errorf("Message = %q", appErr.Message)
	}
	if fields, ok := appErr.Details["fields"].([]FieldError); !ok || len(fields) != 2 {
		t.Errorf("Details[fields] = %#v", appErr.Details["fields"])
	}
}

func TestRequired(t *testing.T) {
	if err := Required("model", "Phi-4"); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if err := Required("model", ""); err == nil {
		t.Error("expected error for empty value")
	}
}

type testEndpoint struct {
	URL string `mapstructure:"endpoint" validate:"required,url"`
	Key string `json:"-" mapstructure:"key" validate:"required,notblank"`
}

func TestValidate_Struct(t *testing.T) {
	if err := Validate(testEndpoint{URL: "https://example.test/v1", Key: "k"}); err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	tests := []struct {
		name string
		ep   testEndpoint
		want []FieldError
	}{
		{
			"missing both",
			testEndpoint{URL: "not a url"},
			[]FieldError{{"endpoint", "must be a valid URL"}, {"key", "is required"}},
		},
		{
			"blank key",
			testEndpoint{URL: "https://example.test", Key: "  \t"},
			[]FieldError{{"key", "must not be blank"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr, ok := errors.AsAppError(Validate(tt.ep))
			if !ok {
				t.Fatal("expected AppError")
			}
			fields, _ := appErr.Details["fields"].([]FieldError)
			if len(fields) != len(tt.want) {
				t.Fatalf("fields = %+v, want %+v", fields, tt.want)
			}
			for i := range fields {
				if fields[i] != tt.want[i] {
					t.Errorf("field %d = %+v, want %+v", i, fields[i], tt.want[i])
				}
			}
		})
	}
}

func TestValidate_JSONNames(t *testing.T) {
	type request struct {
		Query *string `json:"query" validate:"required"`
	}
	err := Validate(request{})
	if err == nil || !strings.Contains(err.Error(), "query: is required") {
		t.Errorf("err = %v", err)
	}

	empty := ""
	if err := Validate(request{Query: &empty}); err != nil {
		t.Errorf("present but empty query should pass, got %v", err)
	}
}

func TestSnakeCase(t *testing.T) {
	tests := map[string]string{"MaxTokens": "max_tokens", "Key": "key", "URL": "u_r_l", "query": "query"}
	for in, want := range tests {
		if got := snakeCase(in); got != want {
			t.Errorf("snakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
