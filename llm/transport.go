package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/kbukum/endpoints/httpclient"
	"github.com/kbukum/endpoints/httpclient/rest"
)

// Transport sends one built Request and returns the raw response body.
// Implementations perform a single round trip and never retry.
type Transport interface {
	Send(ctx context.Context, req Request) (json.RawMessage, error)
}

// RESTTransport POSTs the request body as JSON.
type RESTTransport struct {
	rest *rest.Client
}

// NewRESTTransport creates a REST transport over c.
func NewRESTTransport(c *httpclient.Client) *RESTTransport {
	return &RESTTransport{rest: rest.NewFromClient(c)}
}

// Send implements Transport. A non-2xx status returns *httpclient.Error;
// a body that is not JSON returns *rest.DecodeError.
func (t *RESTTransport) Send(ctx context.Context, req Request) (json.RawMessage, error) {
	resp, err := rest.Post[json.RawMessage](ctx, t.rest, req.URL, req.Body,
		rest.WithHeaders(req.Headers),
		rest.WithAuth(req.Auth),
	)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// InferenceTransport calls the chat completions operation of the
// managed-inference SDK. Each call builds a client for the request's
// endpoint on top of the shared HTTP client.
type InferenceTransport struct {
	http *httpclient.Client
}

// NewInferenceTransport creates an SDK transport over c.
func NewInferenceTransport(c *httpclient.Client) *InferenceTransport {
	return &InferenceTransport{http: c}
}

// Send implements Transport. Req.Body must be an InferenceCall.
// Failures are returned as the SDK reports them (*openai.Error for
// non-2xx responses).
func (t *InferenceTransport) Send(ctx context.Context, req Request) (json.RawMessage, error) {
	call, ok := req.Body.(InferenceCall)
	if !ok {
		return nil, fmt.Errorf("llm: sdk transport: body is %T, want InferenceCall", req.Body)
	}

	client := openai.NewClient(t.clientOptions(req)...)
	completion, err := client.Chat.Completions.New(ctx, inferenceParams(call))
	if err != nil {
		return nil, err
	}
	return json.RawMessage(completion.RawJSON()), nil
}

func (t *InferenceTransport) clientOptions(req Request) []option.RequestOption {
	key := req.Auth.Credential()
	opts := []option.RequestOption{
		option.WithBaseURL(req.URL),
		option.WithAPIKey(key),
		option.WithHeader(apiKeyHeader, key),
		option.WithMaxRetries(0),
		option.WithHTTPClient(t.http.Unwrap()),
	}
	for k, v := range req.Headers {
		opts = append(opts, option.WithHeader(k, v))
	}
	return opts
}

func inferenceParams(call InferenceCall) openai.ChatCompletionNewParams {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(call.Messages))
	for _, m := range call.Messages {
		if m.Role == RoleSystem {
			messages = append(messages, openai.SystemMessage(m.Content))
		} else {
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(call.Model),
		Messages: messages,
	}
	if call.MaxTokens > 0 {
		params.MaxTokens = openai.Int(call.MaxTokens)
	}
	if call.Temperature != nil {
		params.Temperature = openai.Float(*call.Temperature)
	}
	if call.TopP != nil {
		params.TopP = openai.Float(*call.TopP)
	}
	return params
}

// nopTransport serves TransportNone.
type nopTransport struct{}

func (nopTransport) Send(context.Context, Request) (json.RawMessage, error) {
	return nil, nil
}
