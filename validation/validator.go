package validation

import (
	"net/url"
	"strings"

	"github.com/kbukum/endpoints/errors"
)

// FieldError is one failed check.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator collects field errors from programmatic checks. Every check
// returns the Validator so checks chain.
type Validator struct {
	fields []FieldError
}

func New() *Validator {
	return &Validator{}
}

// Add records a failure.
func (v *Validator) Add(field, message string) *Validator {
	v.fields = append(v.fields, FieldError{Field: field, Message: message})
	return v
}

// Check records message for field unless ok.
func (v *Validator) Check(ok bool, field, message string) *Validator {
	if !ok {
		v.Add(field, message)
	}
	return v
}

// Required fails on an empty or all-whitespace value.
func (v *Validator) Required(field, value string) *Validator {
	return v.Check(strings.TrimSpace(value) != "", field, "is required")
}

// URL fails unless a non-empty value is an absolute http(s) URL.
func (v *Validator) URL(field, value string) *Validator {
	if value == "" {
		return v
	}
	u, err := url.Parse(value)
	return v.Check(err == nil && u.Host != "" && (u.Scheme == "http" || u.Scheme == "https"), field, "must be a valid URL")
}

func (v *Validator) HasErrors() bool { return len(v.fields) > 0 }

func (v *Validator) Errors() []FieldError { return v.fields }

// Err returns nil, or an INVALID_INPUT AppError whose message lists each
// "field: message" and whose Details["fields"] holds the []FieldError.
func (v *Validator) Err() error {
	if !v.HasErrors() {
		return nil
	}
	parts := make([]string, len(v.fields))
	for i, f := range v.fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return errors.Validation(strings.Join(parts, "; ")).WithDetail("fields", v.fields)
}

// Required checks a single value.
func Required(field, value string) error {
	return New().Required(field, value).Err()
}
