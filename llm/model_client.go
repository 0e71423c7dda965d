package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/endpoints/logger"
	"github.com/kbukum/endpoints/validation"
)

// Fixed sampling parameters of ModelClient.
const (
	ModelTemperature = 0.7
	ModelTopP        = 0.95
	ModelMaxTokens   = 1000
)

// ModelClient sends queries to one managed-inference deployment selected by
// model name. Every request carries the system prompt and the fixed
// sampling parameters. There is no fallback.
type ModelClient struct {
	model     string
	dialect   Dialect
	endpoint  Endpoint
	transport Transport
	log       *logger.Logger
}

// NewModelClient creates a client for model at the deployment creds locate.
// Credentials usually come from config.ResolveInference.
func NewModelClient(model string, creds Credentials, opts ...Option) (*ModelClient, error) {
	if err := validation.Required("model", model); err != nil {
		return nil, err
	}
	if err := validation.Validate(creds); err != nil {
		return nil, err
	}

	o, err := newOptions(defaultTimeout, opts)
	if err != nil {
		return nil, fmt.Errorf("llm: create http client: %w", err)
	}

	temperature, topP := ModelTemperature, ModelTopP
	return &ModelClient{
		model: model,
		dialect: inferenceDialect{
			name:        BackendManagedInference,
			system:      DefaultSystemPrompt,
			maxTokens:   ModelMaxTokens,
			temperature: &temperature,
			topP:        &topP,
		},
		endpoint:  Endpoint{URL: creds.Endpoint, Key: creds.Key, Model: model},
		transport: o.transports[TransportSDK],
		log:       o.log,
	}, nil
}

// Invoke sends query to the model and returns it paired with the
// generated text. Errors propagate as in Dispatcher.Invoke.
func (c *ModelClient) Invoke(ctx context.Context, query string) (Result, error) {
	log := c.log.WithContext(ctx).WithFields(logger.Fields(
		logger.FieldInvocationID, uuid.NewString(),
		logger.FieldBackend, c.dialect.Name(),
		logger.FieldModel, c.model,
	))

	start := time.Now()
	text, err := invoke(ctx, c.dialect, c.transport, query, c.endpoint)
	elapsed := logger.Fields(logger.FieldDuration, time.Since(start).Milliseconds())
	if err != nil {
		log.Debug("invocation failed", logger.MergeWithError(elapsed, err))
		return Result{}, err
	}
	log.Debug("invocation complete", elapsed)

	return Result{Query: query, Response: text}, nil
}

// Model returns the model name requests are sent with.
func (c *ModelClient) Model() string { return c.model }

// Name returns the model name.
func (c *ModelClient) Name() string { return c.model }

// IsAvailable always reports true; credentials were validated by NewModelClient.
func (c *ModelClient) IsAvailable(context.Context) bool { return true }

// Execute is Invoke.
func (c *ModelClient) Execute(ctx context.Context, query string) (Result, error) {
	return c.Invoke(ctx, query)
}
