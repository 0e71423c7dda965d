package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTimeout          = 60 * time.Second
	defaultMaxResponseBytes = 8 << 20
)

// Config configures a Client.
type Config struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	// Timeout bounds one round trip, body included. Defaults to 60s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// MaxResponseBytes caps how much of a response body is read.
	// Defaults to 8 MiB.
	MaxResponseBytes int64             `yaml:"max_response_bytes" mapstructure:"max_response_bytes"`
	Headers          map[string]string `yaml:"headers" mapstructure:"headers"`
	// Auth applies to requests that carry none of their own.
	Auth *AuthConfig `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills unset limits.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxResponseBytes <= 0 {
		c.MaxResponseBytes = defaultMaxResponseBytes
	}
}

// Validate rejects a malformed base URL.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return nil
	}
	if u, err := url.Parse(c.BaseURL); err != nil || !u.IsAbs() {
		return fmt.Errorf("httpclient: base_url %q is not an absolute URL", c.BaseURL)
	}
	return nil
}

// Client makes exactly one round trip per Do call. It never retries.
type Client struct {
	hc  *http.Client
	cfg Config
}

// New builds a client with its own transport.
func New(cfg Config) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		hc: &http.Client{
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
			Timeout:   cfg.Timeout,
		},
		cfg: cfg,
	}, nil
}

// NewFromHTTPClient wraps hc, keeping its transport and timeout.
func NewFromHTTPClient(hc *http.Client, cfg Config) *Client {
	cfg.ApplyDefaults()
	return &Client{hc: hc, cfg: cfg}
}

// Unwrap returns the underlying *http.Client, for SDKs that take one.
func (c *Client) Unwrap() *http.Client {
	return c.hc
}

// Do sends req. A non-2xx status returns the response together with a
// classified *Error; transport failures return only the error.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	hreq, err := c.newRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	hresp, err := c.hc.Do(hreq)
	if err != nil {
		return nil, transportError(ctx, err)
	}
	defer func() { _ = hresp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(hresp.Body, c.cfg.MaxResponseBytes+1))
	if err != nil {
		return nil, transportError(ctx, fmt.Errorf("read body: %w", err))
	}
	if int64(len(body)) > c.cfg.MaxResponseBytes {
		return nil, &Error{
			StatusCode: hresp.StatusCode,
			Code:       ErrCodeTooLarge,
			Message:    fmt.Sprintf("response body exceeds %d bytes", c.cfg.MaxResponseBytes),
		}
	}

	resp := &Response{StatusCode: hresp.StatusCode, Header: hresp.Header, Body: body}
	if e := ClassifyStatusCode(resp.StatusCode, body); e != nil {
		return resp, e
	}
	return resp, nil
}

func (c *Client) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	target, err := c.resolve(req.URL)
	if err != nil {
		return nil, invalidRequest("url", err)
	}
	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, invalidRequest("encode body", err)
	}
	hreq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, invalidRequest("build", err)
	}

	for k, v := range c.cfg.Headers {
		hreq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		hreq.Header.Set(k, v)
	}
	if contentType != "" && hreq.Header.Get("Content-Type") == "" {
		hreq.Header.Set("Content-Type", contentType)
	}

	auth := req.Auth
	if auth == nil {
		auth = c.cfg.Auth
	}
	auth.apply(hreq.Header)
	return hreq, nil
}

// resolve joins a relative target onto the base URL. Absolute targets are
// used as given.
func (c *Client) resolve(target string) (string, error) {
	u, err := url.Parse(target)
	if err != nil {
		return "", err
	}
	if u.IsAbs() || c.cfg.BaseURL == "" {
		return target, nil
	}
	return strings.TrimRight(c.cfg.BaseURL, "/") + "/" + strings.TrimLeft(target, "/"), nil
}

// transportError classifies a failure that produced no response.
func transportError(ctx context.Context, err error) *Error {
	var te interface{ Timeout() bool }
	if ctx.Err() != nil || (errors.As(err, &te) && te.Timeout()) {
		return NewTimeoutError(err)
	}
	return NewConnectionError(err)
}
