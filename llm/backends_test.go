package llm

import (
	"encoding/json"
	"testing"

	"github.com/kbukum/endpoints/httpclient"
)

// payloadJSON marshals a request body the way the REST transport does.
func payloadJSON(t *testing.T, body any) string {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return string(b)
}

func TestRESTDialects_BuildRequest(t *testing.T) {
	ep := Endpoint{URL: "https://backend.example/score", Key: "k-123"}

	tests := []struct {
		dialect  Dialect
		query    string
		wantBody string
		wantAuth httpclient.AuthConfig
	}{
		{
			dialect:  NewChatDialect(BackendChatLarge),
			query:    "hi",
			wantBody: `{"messages":[{"role":"user","content":"hi"}],"max_tokens":500}`,
			wantAuth: httpclient.AuthConfig{Type: httpclient.AuthAPIKey, Secret: "k-123", Header: "api-key"},
		},
		{
			dialect:  NewChatDialect(BackendChatSmall),
			query:    "hi",
			wantBody: `{"messages":[{"role":"user","content":"hi"}],"max_tokens":500}`,
			wantAuth: httpclient.AuthConfig{Type: httpclient.AuthAPIKey, Secret: "k-123", Header: "api-key"},
		},
		{
			dialect:  NewLightweightChatDialect(),
			query:    "2+2?",
			wantBody: `{"model":"TinyLlama/TinyLlama-1.1B-Chat-v1.0","messages":[{"role":"user","content":"2+2?"}],"max_tokens":500,"stream":false}`,
			wantAuth: httpclient.AuthConfig{Type: httpclient.AuthBearer, Secret: "k-123"},
		},
		{
			dialect:  NewCompletionDialect(),
			query:    "hello",
			wantBody: `{"inputs":"hello"}`,
			wantAuth: httpclient.AuthConfig{Type: httpclient.AuthBearer, Secret: "k-123"},
		},
		{
			dialect:  NewInstructDialect(),
			query:    "why?",
			wantBody: `{"messages":[{"content":"why?","role":"user"}],"max_tokens":50}`,
			wantAuth: httpclient.AuthConfig{Type: httpclient.AuthBearer, Secret: "k-123"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.dialect.Name(), func(t *testing.T) {
			if tt.dialect.Transport() != TransportREST {
				t.Fatalf("Transport() = %v, want rest", tt.dialect.Transport())
			}
			req, err := tt.dialect.BuildRequest(tt.query, ep)
			if err != nil {
				t.Fatalf("BuildRequest: %v", err)
			}
			if req.URL != ep.URL {
				t.Errorf("URL = %q, want %q", req.URL, ep.URL)
			}
			if req.Headers["Content-Type"] != "application/json" {
				t.Errorf("Content-Type = %q", req.Headers["Content-Type"])
			}
			if req.Auth == nil || *req.Auth != tt.wantAuth {
				t.Errorf("Auth = %+v, want %+v", req.Auth, tt.wantAuth)
			}
			if got := payloadJSON(t, req.Body); got != tt.wantBody {
				t.Errorf("body = %s\nwant   %s", got, tt.wantBody)
			}
		})
	}
}

func TestRESTDialects_PayloadRoundTrip(t *testing.T) {
	// Whatever the query, it must come back out of the payload unchanged.
	queries := []string{"", "hello", "quote \" and \\ slash", "line\nbreak", "ünïcödé ✓", "<script>&</script>"}
	ep := Endpoint{URL: "https://backend.example", Key: "k"}

	extractQuery := map[string]func(body []byte) (string, error){
		BackendChatLarge:       chatQuery,
		BackendLightweightChat: chatQuery,
		BackendInstructSmall:   chatQuery,
		BackendCompletionOnly: func(body []byte) (string, error) {
			var p completionPayload
			err := json.Unmarshal(body, &p)
			return p.Inputs, err
		},
	}
	dialects := []Dialect{
		NewChatDialect(BackendChatLarge),
		NewLightweightChatDialect(),
		NewInstructDialect(),
		NewCompletionDialect(),
	}

	for _, d := range dialects {
		for _, q := range queries {
			req, err := d.BuildRequest(q, ep)
			if err != nil {
				t.Fatalf("%s: BuildRequest(%q): %v", d.Name(), q, err)
			}
			got, err := extractQuery[d.Name()]([]byte(payloadJSON(t, req.Body)))
			if err != nil {
				t.Fatalf("%s: decode payload: %v", d.Name(), err)
			}
			if got != q {
				t.Errorf("%s: query round trip = %q, want %q", d.Name(), got, q)
			}
		}
	}
}

func chatQuery(body []byte) (string, error) {
	var p struct {
		Messages []Message `json:"messages"`
	}
	if err := json.Unmarshal(body, &p); err != nil {
		return "", err
	}
	return p.Messages[0].Content, nil
}

func TestLightweightChat_ModelOverride(t *testing.T) {
	req, err := NewLightweightChatDialect().BuildRequest("q", Endpoint{URL: "https://x", Key: "k", Model: "custom/model"})
	if err != nil {
		t.Fatal(err)
	}
	if body := req.Body.(lightweightPayload); body.Model != "custom/model" {
		t.Errorf("Model = %q, want custom/model", body.Model)
	}
}

func TestInferenceDialect_BuildRequest(t *testing.T) {
	d := NewInferenceDialect()
	if d.Transport() != TransportSDK {
		t.Fatalf("Transport() = %v, want sdk", d.Transport())
	}

	tests := []struct {
		name      string
		ep        Endpoint
		wantModel string
	}{
		{"default model", Endpoint{URL: "https://inference.example", Key: "k"}, "Phi-4"},
		{"override", Endpoint{URL: "https://inference.example", Key: "k", Model: "Phi-4-mini"}, "Phi-4-mini"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := d.BuildRequest("capital of France?", tt.ep)
			if err != nil {
				t.Fatal(err)
			}
			call, ok := req.Body.(InferenceCall)
			if !ok {
				t.Fatalf("Body is %T, want InferenceCall", req.Body)
			}
			if call.Model != tt.wantModel {
				t.Errorf("Model = %q, want %q", call.Model, tt.wantModel)
			}
			if call.MaxTokens != 1000 {
				t.Errorf("MaxTokens = %d, want 1000", call.MaxTokens)
			}
			if call.Temperature != nil || call.TopP != nil {
				t.Error("dispatcher SDK calls should leave sampling to the deployment")
			}
			want := []Message{{Role: RoleSystem, Content: DefaultSystemPrompt}, {Role: RoleUser, Content: "capital of France?"}}
			if len(call.Messages) != 2 || call.Messages[0] != want[0] || call.Messages[1] != want[1] {
				t.Errorf("Messages = %+v, want %+v", call.Messages, want)
			}
			if req.Auth.Credential() != "k" {
				t.Error("expected credential to travel with the request")
			}
		})
	}
}

func TestDialects_ParseResponse(t *testing.T) {
	chat := `{"choices":[{"message":{"content":"4"}}]}`
	list := `[{"generated_text":"hello world"}]`

	tests := []struct {
		dialect Dialect
		good    string
		bad     string
		want    string
	}{
		{NewChatDialect(BackendChatLarge), chat, list, "4"},
		{NewChatDialect(BackendChatSmall), chat, list, "4"},
		{NewLightweightChatDialect(), chat, list, "4"},
		{NewInstructDialect(), chat, list, "4"},
		{NewInferenceDialect(), chat, list, "4"},
		{NewCompletionDialect(), list, chat, "hello world"},
	}
	for _, tt := range tests {
		t.Run(tt.dialect.Name(), func(t *testing.T) {
			got, err := tt.dialect.ParseResponse(json.RawMessage(tt.good))
			if err != nil || got != tt.want {
				t.Errorf("ParseResponse(good) = %q, %v; want %q", got, err, tt.want)
			}
			_, err = tt.dialect.ParseResponse(json.RawMessage(tt.bad))
			if !IsResponseShape(err) {
				t.Errorf("ParseResponse(bad) error = %v, want shape error", err)
			}
			if se := err.(*ResponseShapeError); se.Backend != tt.dialect.Name() {
				t.Errorf("shape error backend = %q, want %q", se.Backend, tt.dialect.Name())
			}
		})
	}
}

func TestFallbackDialect(t *testing.T) {
	d := NewFallbackDialect()
	if d.Transport() != TransportNone {
		t.Errorf("Transport() = %v, want none", d.Transport())
	}
	req, err := d.BuildRequest("anything", Endpoint{})
	if err != nil || req.Body != nil || req.URL != "" {
		t.Errorf("BuildRequest = %+v, %v; want empty request", req, err)
	}
	for _, raw := range []string{"", "null", `{"choices":[]}`} {
		got, err := d.ParseResponse(json.RawMessage(raw))
		if err != nil || got != FallbackResponse {
			t.Errorf("ParseResponse(%q) = %q, %v; want %q", raw, got, err, FallbackResponse)
		}
	}
}

func TestTransportKind_String(t *testing.T) {
	tests := map[TransportKind]string{
		TransportREST:     "rest",
		TransportSDK:      "sdk",
		TransportNone:     "none",
		TransportKind(42): "unknown",
	}
	for k, want := range tests {
		if k.String() != want {
			t.Errorf("%d.String() = %q, want %q", k, k.String(), want)
		}
	}
}
