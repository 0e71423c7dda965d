package httpclient

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// Request is one outbound call.
type Request struct {
	Method string
	// URL is absolute, or relative to Config.BaseURL.
	URL string
	// Headers override the client's default headers.
	Headers map[string]string
	// Body may be an io.Reader, []byte, json.RawMessage, string, or any
	// value to encode as JSON.
	Body any
	// Auth replaces Config.Auth for this request.
	Auth *AuthConfig
}

// Response is a fully read response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// encodeBody returns the body reader and the content type it implies.
func encodeBody(body any) (io.Reader, string, error) {
	switch v := body.(type) {
	case nil:
		return nil, "", nil
	case io.Reader:
		return v, "", nil
	case json.RawMessage:
		return bytes.NewReader(v), "application/json", nil
	case []byte:
		return bytes.NewReader(v), "", nil
	case string:
		return strings.NewReader(v), "text/plain; charset=utf-8", nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, "", err
	}
	return bytes.NewReader(data), "application/json", nil
}
