package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/kbukum/endpoints/errors"
	"github.com/kbukum/endpoints/llm"
)

// writeConfig writes a config.yml that keeps logs quiet and points the
// completion-only backend at url.
func writeConfig(t *testing.T, backend, url string) string {
	t.Helper()
	yml := fmt.Sprintf(`name: endpoints-test
logging:
  level: error
  format: json
endpoints:
  backend: %s
  backends:
    gpt2:
      endpoint: %s
      key: test-key
`, backend, url)
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func completionServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var p struct {
			Inputs string `json:"inputs"`
		}
		_ = json.NewDecoder(r.Body).Decode(&p)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]map[string]string{{"generated_text": p.Inputs + " world"}})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRun_Query(t *testing.T) {
	srv := completionServer(t)
	cfg := writeConfig(t, "gpt2", srv.URL)

	var out bytes.Buffer
	if err := run(context.Background(), []string{"--config", cfg, "--query", "hello"}, nil, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	var res llm.Result
	if err := json.Unmarshal(out.Bytes(), &res); err != nil {
		t.Fatalf("decode %q: %v", out.String(), err)
	}
	if res != (llm.Result{Query: "hello", Response: "hello world"}) {
		t.Errorf("result = %+v", res)
	}
}

func TestRun_BackendFlagOverridesConfig(t *testing.T) {
	cfg := writeConfig(t, "gpt2", "http://127.0.0.1:1")

	var out bytes.Buffer
	args := []string{"--config", cfg, "--endpoints.backend", "unknown-xyz", "--query", "capital?"}
	if err := run(context.Background(), args, nil, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), `"response": "Paris"`) {
		t.Errorf("output = %s, want the fallback response", out.String())
	}
}

func TestRun_Batch(t *testing.T) {
	srv := completionServer(t)
	cfg := writeConfig(t, "completion-only", srv.URL)

	in := strings.NewReader("{\"query\":\"a\"}\n{\"query\":\"b\"}\n")
	var out bytes.Buffer
	if err := run(context.Background(), []string{"--config", cfg, "--queries", "-"}, in, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := "{\"query\":\"a\",\"response\":\"a world\"}\n{\"query\":\"b\",\"response\":\"b world\"}\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRun_BatchMissingFile(t *testing.T) {
	cfg := writeConfig(t, "unknown-xyz", "http://127.0.0.1:1")
	err := run(context.Background(), []string{"--config", cfg, "--queries", filepath.Join(t.TempDir(), "nope.jsonl")}, nil, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "open queries") {
		t.Errorf("err = %v", err)
	}
}

func TestRun_MissingBackendEntry(t *testing.T) {
	cfg := writeConfig(t, "chat-large", "http://127.0.0.1:1")
	err := run(context.Background(), []string{"--config", cfg, "--query", "q"}, nil, &bytes.Buffer{})
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodeMissingField {
		t.Errorf("err = %v, want MISSING_FIELD", err)
	}
}

func TestRun_NoMode(t *testing.T) {
	cfg := writeConfig(t, "unknown-xyz", "http://127.0.0.1:1")
	if err := run(context.Background(), []string{"--config", cfg}, nil, &bytes.Buffer{}); !errors.Is(err, errNoMode) {
		t.Errorf("err = %v, want errNoMode", err)
	}
}

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), []string{"--version"}, nil, &out); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) == "" {
		t.Error("expected a version line")
	}
}

func TestRun_BadFlag(t *testing.T) {
	if err := run(context.Background(), []string{"--no-such-flag"}, nil, &bytes.Buffer{}); err == nil {
		t.Error("expected a flag error")
	}
}

func TestRun_ModelClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("api-key") != "inference-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c","object":"chat.completion","created":1,"model":"Phi-4",
			"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"Paris."}}]}`))
	}))
	t.Cleanup(srv.Close)
	t.Setenv("TESTPROV_INFERENCE_ENDPOINT", srv.URL)
	t.Setenv("TESTPROV_API_KEY", "inference-key")

	cfg := writeConfig(t, "unknown-xyz", "http://127.0.0.1:1")
	var out bytes.Buffer
	args := []string{"--config", cfg, "--model", "Phi-4", "--provider", "testprov", "--query", "capital?"}
	if err := run(context.Background(), args, nil, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), `"response": "Paris."`) {
		t.Errorf("output = %s", out.String())
	}
	if strings.Contains(out.String(), "inference-key") {
		t.Error("credential leaked into output")
	}
}

func TestRun_ModelClientMissingCredentials(t *testing.T) {
	t.Setenv("NOCREDS_INFERENCE_ENDPOINT", "")
	t.Setenv("NOCREDS_API_KEY", "")

	cfg := writeConfig(t, "unknown-xyz", "http://127.0.0.1:1")
	err := run(context.Background(), []string{"--config", cfg, "--model", "Phi-4", "--provider", "nocreds", "--query", "q"}, nil, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "NOCREDS_INFERENCE_ENDPOINT") {
		t.Errorf("err = %v", err)
	}
}

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	cfg.Environment = "production"
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Name != "endpoints" || cfg.Provider != "azure-openai" {
		t.Errorf("Name = %q, Provider = %q", cfg.Name, cfg.Provider)
	}
	if cfg.Tracing.Enabled || cfg.Tracing.SampleRate != 1 || cfg.Metrics.Interval <= 0 {
		t.Errorf("telemetry defaults = %+v / %+v", cfg.Tracing, cfg.Metrics)
	}
	if cfg.Server.Port != 8080 || cfg.Endpoints.Timeout <= 0 {
		t.Errorf("server/endpoints defaults = %+v / %+v", cfg.Server, cfg.Endpoints)
	}
}

func TestAppConfig_ValidateCrossField(t *testing.T) {
	var cfg AppConfig
	cfg.ApplyDefaults()
	cfg.Metrics.Enabled = true
	cfg.Metrics.Interval = 0
	cfg.Model = "Phi-4"
	cfg.Provider = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, field := range []string{"metrics.interval: must be positive", "provider: is required with model"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q should mention %q", err, field)
		}
	}
}
