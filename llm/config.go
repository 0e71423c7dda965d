package llm

import (
	"net/http"
	"time"

	"github.com/kbukum/endpoints/httpclient"
	"github.com/kbukum/endpoints/logger"
	"github.com/kbukum/endpoints/version"
)

const defaultTimeout = 120 * time.Second

// Config selects a backend and supplies the endpoints of every backend
// the caller may select.
type Config struct {
	// Backend is the identifier of the selected backend (e.g. "chat-large",
	// or a deployment tag such as "gpt-4o"). An unrecognized identifier
	// selects the fallback.
	Backend string `yaml:"backend" mapstructure:"backend"`

	// Backends maps identifiers to endpoints. Only the selected entry
	// is required.
	Backends BackendConfig `yaml:"backends" mapstructure:"backends"`

	// Timeout bounds one round trip. Defaults to 120s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ApplyDefaults sets default values for unset config fields.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// Option configures a Dispatcher or ModelClient.
type Option func(*options)

type options struct {
	registry   *Registry
	log        *logger.Logger
	http       *httpclient.Client
	transports map[TransportKind]Transport
	timeout    time.Duration
}

// WithRegistry replaces the built-in backend table.
func WithRegistry(r *Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithLogger sets the logger used for invocation and fallback records.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithHTTPClient sets the client both REST and SDK transports send through.
func WithHTTPClient(c *httpclient.Client) Option {
	return func(o *options) { o.http = c }
}

// WithStdHTTPClient wraps a plain *http.Client, keeping its transport and timeout.
func WithStdHTTPClient(c *http.Client) Option {
	return func(o *options) { o.http = httpclient.NewFromHTTPClient(c, httpclient.Config{}) }
}

// WithTimeout bounds one round trip when the client is built here. It has
// no effect together with WithHTTPClient.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithTransport replaces the transport used for one transport kind.
func WithTransport(kind TransportKind, t Transport) Option {
	return func(o *options) {
		if o.transports == nil {
			o.transports = make(map[TransportKind]Transport)
		}
		o.transports[kind] = t
	}
}

func newOptions(timeout time.Duration, opts []Option) (*options, error) {
	o := &options{timeout: timeout}
	for _, opt := range opts {
		opt(o)
	}
	if o.registry == nil {
		o.registry = DefaultRegistry()
	}
	if o.log == nil {
		o.log = logger.WithComponent("llm")
	}
	if o.http == nil {
		c, err := httpclient.New(httpclient.Config{
			Timeout: o.timeout,
			Headers: map[string]string{"User-Agent": version.UserAgent()},
		})
		if err != nil {
			return nil, err
		}
		o.http = c
	}

	transports := map[TransportKind]Transport{
		TransportREST: NewRESTTransport(o.http),
		TransportSDK:  NewInferenceTransport(o.http),
		TransportNone: nopTransport{},
	}
	for k, t := range o.transports {
		transports[k] = t
	}
	o.transports = transports
	return o, nil
}
