package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ResponseShapeError reports a response body that does not have the shape
// a backend's extractor expects: a missing key, a missing index, or a
// value of the wrong type.
type ResponseShapeError struct {
	Backend string
	Path    string
	Reason  string
}

func (e *ResponseShapeError) Error() string {
	return fmt.Sprintf("llm: %s response: %s: %s", e.Backend, e.Path, e.Reason)
}

// IsResponseShape reports whether err is or wraps a *ResponseShapeError.
func IsResponseShape(err error) bool {
	var se *ResponseShapeError
	return errors.As(err, &se)
}

// Path segments for extract.
type (
	key   string
	index int
)

// Extraction paths shared by the built-in dialects.
var (
	choicesContentPath = []any{key("choices"), index(0), key("message"), key("content")}
	generatedTextPath  = []any{index(0), key("generated_text")}
)

// extract walks raw along path and returns the string at its end.
func extract(backend string, raw json.RawMessage, path ...any) (string, error) {
	fail := func(depth int, reason string) error {
		return &ResponseShapeError{Backend: backend, Path: formatPath(path[:depth]), Reason: reason}
	}

	if len(raw) == 0 {
		return "", fail(0, "empty body")
	}

	cur := raw
	for i, seg := range path {
		switch s := seg.(type) {
		case key:
			var obj map[string]json.RawMessage
			if err := json.Unmarshal(cur, &obj); err != nil || obj == nil {
				return "", fail(i, "expected object")
			}
			next, ok := obj[string(s)]
			if !ok {
				return "", fail(i+1, "missing key")
			}
			cur = next
		case index:
			var arr []json.RawMessage
			if err := json.Unmarshal(cur, &arr); err != nil || arr == nil {
				return "", fail(i, "expected array")
			}
			if int(s) >= len(arr) {
				return "", fail(i+1, fmt.Sprintf("index out of range (len %d)", len(arr)))
			}
			cur = arr[s]
		}
	}

	if bytes.Equal(bytes.TrimSpace(cur), []byte("null")) {
		return "", fail(len(path), "expected string, got null")
	}
	var text string
	if err := json.Unmarshal(cur, &text); err != nil {
		return "", fail(len(path), "expected string")
	}
	return text, nil
}

// formatPath renders a path as "choices[0].message.content".
func formatPath(path []any) string {
	var b strings.Builder
	for _, seg := range path {
		switch s := seg.(type) {
		case key:
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			b.WriteString(string(s))
		case index:
			b.WriteString("[" + strconv.Itoa(int(s)) + "]")
		}
	}
	if b.Len() == 0 {
		return "$"
	}
	return b.String()
}
