package validation

import (
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/kbukum/endpoints/errors"
)

var engine = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return v
})

// fieldName names a field the way its caller spelled it: the json tag,
// else the mapstructure tag, else the Go name in snake_case.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "mapstructure"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			break
		}
		if name != "" {
			return name
		}
	}
	return snakeCase(f.Name)
}

// Validate checks s against its `validate` struct tags. Failures come back
// as one INVALID_INPUT AppError listing every field.
func Validate(s any) error {
	err := engine().Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Validation("validation failed").WithCause(err)
	}

	v := New()
	for _, fe := range verrs {
		v.Add(fe.Field(), describe(fe))
	}
	return v.Err()
}

var tagMessages = map[string]func(param string) string{
	"required": func(string) string { return "is required" },
	"notblank": func(string) string { return "must not be blank" },
	"url":      func(string) string { return "must be a valid URL" },
	"http_url": func(string) string { return "must be a valid URL" },
	"min":      func(p string) string { return "must be at least " + p },
	"max":      func(p string) string { return "must be at most " + p },
	"gt":       func(p string) string { return "must be greater than " + p },
	"oneof":    func(p string) string { return "must be one of: " + strings.ReplaceAll(p, " ", ", ") },
}

func describe(fe validator.FieldError) string {
	if msg, ok := tagMessages[fe.Tag()]; ok {
		return msg(fe.Param())
	}
	return "is invalid"
}

func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
