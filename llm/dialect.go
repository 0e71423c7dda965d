package llm

import (
	"encoding/json"

	"github.com/kbukum/endpoints/httpclient"
)

// TransportKind identifies how a dialect's request reaches its backend.
type TransportKind int

const (
	// TransportREST sends one JSON POST and returns the decoded body.
	TransportREST TransportKind = iota
	// TransportSDK calls the managed-inference chat completions client.
	TransportSDK
	// TransportNone performs no I/O.
	TransportNone
)

// String returns the transport kind name.
func (k TransportKind) String() string {
	switch k {
	case TransportREST:
		return "rest"
	case TransportSDK:
		return "sdk"
	case TransportNone:
		return "none"
	default:
		return "unknown"
	}
}

// Request is a backend request ready for a Transport.
type Request struct {
	// URL is the absolute endpoint URL.
	URL string
	// Headers are sent in addition to the transport defaults.
	Headers map[string]string
	// Auth carries the backend credential.
	Auth *httpclient.AuthConfig
	// Body is the JSON payload for REST, an InferenceCall for the SDK,
	// and nil for TransportNone.
	Body any
}

// InferenceCall is the body of an SDK request.
type InferenceCall struct {
	Model       string
	Messages    []Message
	MaxTokens   int64
	Temperature *float64
	TopP        *float64
}

// Dialect maps a plain query to one backend's request shape and
// extracts the generated text from that backend's response shape.
//
// BuildRequest and ParseResponse are pure: they do no I/O and hold no state,
// so a Dialect is safe for concurrent use.
type Dialect interface {
	// Name returns the canonical backend identifier (e.g. "chat-large").
	Name() string

	// Transport returns the transport kind that sends this dialect's requests.
	Transport() TransportKind

	// BuildRequest builds the backend request for query.
	BuildRequest(query string, ep Endpoint) (Request, error)

	// ParseResponse extracts the generated text from a raw response body.
	// A body of the wrong shape fails with *ResponseShapeError.
	ParseResponse(raw json.RawMessage) (string, error)
}
