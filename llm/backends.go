package llm

import (
	"encoding/json"

	"github.com/kbukum/endpoints/httpclient"
)

// Canonical backend identifiers.
const (
	BackendChatLarge        = "chat-large"
	BackendChatSmall        = "chat-small"
	BackendLightweightChat  = "lightweight-chat"
	BackendManagedInference = "managed-inference"
	BackendCompletionOnly   = "completion-only"
	BackendInstructSmall    = "instruct-small"
	BackendFallback         = "fallback"
)

const (
	chatMaxTokens      = 500
	instructMaxTokens  = 50
	inferenceMaxTokens = 1000

	defaultLightweightModel = "TinyLlama/TinyLlama-1.1B-Chat-v1.0"
	defaultInferenceModel   = "Phi-4"

	// DefaultSystemPrompt is the system message sent ahead of SDK queries.
	DefaultSystemPrompt = "You are a helpful assistant."

	apiKeyHeader = "api-key"
)

// FallbackResponse is the fixed response of the fallback dialect.
const FallbackResponse = "Paris"

var jsonHeaders = map[string]string{"Content-Type": "application/json"}

func userMessages(query string) []Message {
	return []Message{{Role: RoleUser, Content: query}}
}

// --- chat-large / chat-small ---

type chatPayload struct {
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens"`
}

type chatDialect struct{ name string }

// NewChatDialect returns the dialect for hosted chat deployments that
// authenticate with an api-key header.
func NewChatDialect(name string) Dialect { return chatDialect{name: name} }

func (d chatDialect) Name() string             { return d.name }
func (d chatDialect) Transport() TransportKind { return TransportREST }

func (d chatDialect) BuildRequest(query string, ep Endpoint) (Request, error) {
	return Request{
		URL:     ep.URL,
		Headers: jsonHeaders,
		Auth:    httpclient.APIKeyAuthHeader(ep.Key, apiKeyHeader),
		Body:    chatPayload{Messages: userMessages(query), MaxTokens: chatMaxTokens},
	}, nil
}

func (d chatDialect) ParseResponse(raw json.RawMessage) (string, error) {
	return extract(d.name, raw, choicesContentPath...)
}

// --- lightweight-chat ---

type lightweightPayload struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens"`
	Stream    bool      `json:"stream"`
}

type lightweightChatDialect struct{}

// NewLightweightChatDialect returns the dialect for the small
// OpenAI-compatible chat server. Endpoint.Model overrides its model.
func NewLightweightChatDialect() Dialect { return lightweightChatDialect{} }

func (lightweightChatDialect) Name() string             { return BackendLightweightChat }
func (lightweightChatDialect) Transport() TransportKind { return TransportREST }

func (lightweightChatDialect) BuildRequest(query string, ep Endpoint) (Request, error) {
	model := ep.Model
	if model == "" {
		model = defaultLightweightModel
	}
	return Request{
		URL:     ep.URL,
		Headers: jsonHeaders,
		Auth:    httpclient.BearerAuth(ep.Key),
		Body: lightweightPayload{
			Model:     model,
			Messages:  userMessages(query),
			MaxTokens: chatMaxTokens,
			Stream:    false,
		},
	}, nil
}

func (lightweightChatDialect) ParseResponse(raw json.RawMessage) (string, error) {
	return extract(BackendLightweightChat, raw, choicesContentPath...)
}

// --- instruct-small ---

// instructMessage orders content before role on the wire.
type instructMessage struct {
	Content string `json:"content"`
	Role    string `json:"role"`
}

type instructPayload struct {
	Messages  []instructMessage `json:"messages"`
	MaxTokens int               `json:"max_tokens"`
}

type instructDialect struct{}

// NewInstructDialect returns the dialect for the small instruction-tuned
// model deployment.
func NewInstructDialect() Dialect { return instructDialect{} }

func (instructDialect) Name() string             { return BackendInstructSmall }
func (instructDialect) Transport() TransportKind { return TransportREST }

func (instructDialect) BuildRequest(query string, ep Endpoint) (Request, error) {
	return Request{
		URL:     ep.URL,
		Headers: jsonHeaders,
		Auth:    httpclient.BearerAuth(ep.Key),
		Body: instructPayload{
			Messages:  []instructMessage{{Content: query, Role: RoleUser}},
			MaxTokens: instructMaxTokens,
		},
	}, nil
}

func (instructDialect) ParseResponse(raw json.RawMessage) (string, error) {
	return extract(BackendInstructSmall, raw, choicesContentPath...)
}

// --- completion-only ---

type completionPayload struct {
	Inputs string `json:"inputs"`
}

type completionDialect struct{}

// NewCompletionDialect returns the dialect for plain text-completion
// inference endpoints, which take no chat roles and answer with a list.
func NewCompletionDialect() Dialect { return completionDialect{} }

func (completionDialect) Name() string             { return BackendCompletionOnly }
func (completionDialect) Transport() TransportKind { return TransportREST }

func (completionDialect) BuildRequest(query string, ep Endpoint) (Request, error) {
	return Request{
		URL:     ep.URL,
		Headers: jsonHeaders,
		Auth:    httpclient.BearerAuth(ep.Key),
		Body:    completionPayload{Inputs: query},
	}, nil
}

func (completionDialect) ParseResponse(raw json.RawMessage) (string, error) {
	return extract(BackendCompletionOnly, raw, generatedTextPath...)
}

// --- managed-inference ---

type inferenceDialect struct {
	name        string
	system      string
	maxTokens   int64
	temperature *float64
	topP        *float64
}

// NewInferenceDialect returns the dialect for the managed-inference SDK
// backend. Endpoint.Model overrides its model.
func NewInferenceDialect() Dialect {
	return inferenceDialect{
		name:      BackendManagedInference,
		system:    DefaultSystemPrompt,
		maxTokens: inferenceMaxTokens,
	}
}

func (d inferenceDialect) Name() string           { return d.name }
func (inferenceDialect) Transport() TransportKind { return TransportSDK }

func (d inferenceDialect) BuildRequest(query string, ep Endpoint) (Request, error) {
	model := ep.Model
	if model == "" {
		model = defaultInferenceModel
	}
	return Request{
		URL:  ep.URL,
		Auth: httpclient.APIKeyAuthHeader(ep.Key, apiKeyHeader),
		Body: InferenceCall{
			Model: model,
			Messages: []Message{
				{Role: RoleSystem, Content: d.system},
				{Role: RoleUser, Content: query},
			},
			MaxTokens:   d.maxTokens,
			Temperature: d.temperature,
			TopP:        d.topP,
		},
	}, nil
}

func (d inferenceDialect) ParseResponse(raw json.RawMessage) (string, error) {
	return extract(d.name, raw, choicesContentPath...)
}

// --- fallback ---

type fallbackDialect struct{}

// NewFallbackDialect returns the dialect used for unrecognized backend
// identifiers. It needs no endpoint and always answers FallbackResponse.
func NewFallbackDialect() Dialect { return fallbackDialect{} }

func (fallbackDialect) Name() string             { return BackendFallback }
func (fallbackDialect) Transport() TransportKind { return TransportNone }

func (fallbackDialect) BuildRequest(string, Endpoint) (Request, error) {
	return Request{}, nil
}

func (fallbackDialect) ParseResponse(json.RawMessage) (string, error) {
	return FallbackResponse, nil
}
