package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/endpoints/errors"
	"github.com/kbukum/endpoints/logger"
	"github.com/kbukum/endpoints/validation"
)

// Dispatcher sends queries to the backend selected by Config.Backend and
// normalizes every backend's answer into a Result.
//
// A Dispatcher is immutable after New and safe for concurrent use. Each
// Invoke performs at most one round trip and adds no retries.
type Dispatcher struct {
	selected  string
	dialect   Dialect
	endpoint  Endpoint
	backends  BackendConfig
	transport Transport
	fallback  bool
	log       *logger.Logger
}

// New creates a dispatcher for cfg.Backend.
//
// A recognized backend must have a valid entry in cfg.Backends, otherwise
// New returns a validation *errors.AppError. An unrecognized backend selects
// the fallback dialect, which needs no entry.
func New(cfg Config, opts ...Option) (*Dispatcher, error) {
	cfg.ApplyDefaults()
	o, err := newOptions(cfg.Timeout, opts)
	if err != nil {
		return nil, fmt.Errorf("llm: create http client: %w", err)
	}

	d := &Dispatcher{
		selected: cfg.Backend,
		backends: cfg.Backends.clone(),
		log:      o.log,
	}

	dialect, ok := o.registry.Lookup(cfg.Backend)
	if !ok {
		d.dialect = NewFallbackDialect()
		d.fallback = true
		d.log.Warn("unrecognized backend, queries will get the fallback response", logger.Fields(
			"selected", cfg.Backend,
			"known", o.registry.Names(),
		))
	} else {
		ep, found := o.registry.endpointFor(cfg.Backend, dialect, d.backends)
		if !found {
			return nil, errors.MissingField("backends." + cfg.Backend).
				WithDetail(logger.FieldBackend, dialect.Name())
		}
		if err := validation.Validate(ep); err != nil {
			if appErr, ok := errors.AsAppError(err); ok {
				return nil, appErr.WithDetail(logger.FieldBackend, dialect.Name())
			}
			return nil, err
		}
		d.dialect = dialect
		d.endpoint = ep
	}

	t, ok := o.transports[d.dialect.Transport()]
	if !ok {
		return nil, fmt.Errorf("llm: no transport for %s", d.dialect.Transport())
	}
	d.transport = t
	return d, nil
}

// Invoke sends query to the selected backend and returns it paired with
// the generated text. Transport and SDK failures are wrapped and returned;
// a response of the wrong shape returns *ResponseShapeError.
func (d *Dispatcher) Invoke(ctx context.Context, query string) (Result, error) {
	log := d.log.WithContext(ctx).WithFields(logger.Fields(
		logger.FieldInvocationID, uuid.NewString(),
		logger.FieldBackend, d.dialect.Name(),
		logger.FieldTransport, d.dialect.Transport().String(),
	))
	if d.fallback {
		log.Warn("answering with fallback response", logger.Fields("selected", d.selected))
	}

	start := time.Now()
	text, err := invoke(ctx, d.dialect, d.transport, query, d.endpoint)
	elapsed := logger.Fields(logger.FieldDuration, time.Since(start).Milliseconds())
	if err != nil {
		log.Debug("invocation failed", logger.MergeWithError(elapsed, err))
		return Result{}, err
	}
	log.Debug("invocation complete", elapsed)

	return Result{Query: query, Response: text}, nil
}

// Fallback reports whether the selected backend was unrecognized and
// Invoke answers with FallbackResponse.
func (d *Dispatcher) Fallback() bool { return d.fallback }

// Selected returns the backend identifier as configured.
func (d *Dispatcher) Selected() string { return d.selected }

// Backend returns the canonical name of the dialect in use.
func (d *Dispatcher) Backend() string { return d.dialect.Name() }

// Transport returns how the selected backend is reached.
func (d *Dispatcher) Transport() TransportKind { return d.dialect.Transport() }

// --- provider.RequestResponse[string, Result] ---

// Name returns the canonical name of the dialect in use.
func (d *Dispatcher) Name() string { return d.dialect.Name() }

// IsAvailable reports whether the dispatcher can serve queries. Its
// configuration was validated by New, so it always can.
func (d *Dispatcher) IsAvailable(context.Context) bool { return true }

// Execute is Invoke.
func (d *Dispatcher) Execute(ctx context.Context, query string) (Result, error) {
	return d.Invoke(ctx, query)
}

// invoke runs build, send, and extract for one query.
func invoke(ctx context.Context, dialect Dialect, t Transport, query string, ep Endpoint) (string, error) {
	req, err := dialect.BuildRequest(query, ep)
	if err != nil {
		return "", fmt.Errorf("llm: %s: build request: %w", dialect.Name(), err)
	}
	raw, err := t.Send(ctx, req)
	if err != nil {
		return "", fmt.Errorf("llm: %s: %w", dialect.Name(), err)
	}
	return dialect.ParseResponse(raw)
}
