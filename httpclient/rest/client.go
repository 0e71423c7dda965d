package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"net/http"

	"github.com/kbukum/endpoints/httpclient"
)

var jsonHeaders = map[string]string{
	"Content-Type": "application/json",
	"Accept":       "application/json",
}

// Client speaks JSON over an httpclient.Client.
type Client struct {
	http *httpclient.Client
}

// New builds the underlying client with JSON content headers added to
// cfg.Headers. Headers the caller already set are kept.
func New(cfg httpclient.Config) (*Client, error) {
	headers := maps.Clone(jsonHeaders)
	maps.Copy(headers, cfg.Headers)
	cfg.Headers = headers

	c, err := httpclient.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Client{http: c}, nil
}

// NewFromClient shares an existing client and its default headers.
func NewFromClient(c *httpclient.Client) *Client {
	return &Client{http: c}
}

// HTTP returns the underlying client.
func (c *Client) HTTP() *httpclient.Client {
	return c.http
}

// RequestOption adjusts one request.
type RequestOption func(*httpclient.Request)

// WithHeaders adds per-request headers over the client defaults.
func WithHeaders(headers map[string]string) RequestOption {
	return func(r *httpclient.Request) {
		if r.Headers == nil {
			r.Headers = make(map[string]string, len(headers))
		}
		maps.Copy(r.Headers, headers)
	}
}

// WithAuth replaces the client's auth for one request.
func WithAuth(auth *httpclient.AuthConfig) RequestOption {
	return func(r *httpclient.Request) { r.Auth = auth }
}

// Response is a decoded response.
type Response[T any] struct {
	StatusCode int
	Header     http.Header
	Data       T
}

// DecodeError is a 2xx response whose body does not decode into T.
type DecodeError struct {
	StatusCode int
	Body       []byte
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("rest: decode HTTP %d response: %v", e.StatusCode, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Post sends body as JSON and decodes the response into T. An empty 2xx
// body leaves Data at its zero value. Non-2xx statuses return the
// *httpclient.Error unchanged, body attached.
func Post[T any](ctx context.Context, c *Client, url string, body any, opts ...RequestOption) (*Response[T], error) {
	req := httpclient.Request{
		Method: http.MethodPost,
		URL:    url,
		Body:   body,
	}
	for _, opt := range opts {
		opt(&req)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	out := &Response[T]{StatusCode: resp.StatusCode, Header: resp.Header}
	if len(resp.Body) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(resp.Body, &out.Data); err != nil {
		return nil, &DecodeError{StatusCode: resp.StatusCode, Body: resp.Body, Err: err}
	}
	return out, nil
}
