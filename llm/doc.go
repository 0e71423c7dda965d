// Package llm gives one query-to-response call over several text-generation
// backends.
//
// A [Dispatcher] selects a backend by identifier and hands each query to
// that backend's [Dialect], which builds the request, names the
// [TransportKind] that sends it, and extracts the generated text from the
// backend's response shape. Every backend's answer comes back as the same
// [Result].
//
// # Backends
//
// The built-in [DefaultRegistry] knows:
//
//	chat-large, chat-small    hosted chat deployments, api-key header
//	lightweight-chat          OpenAI-compatible chat server, bearer token
//	managed-inference         managed-inference SDK (github.com/openai/openai-go)
//	completion-only           text-completion endpoint answering [{"generated_text": ...}]
//	instruct-small            small instruction model, bearer token
//
// The deployment tags (gpt-4o, gpt-4o-mini, tiny_llama, Phi-4,
// gpt2, mistral7b) are registered as aliases. Any other identifier selects
// the fallback dialect, which makes no call and answers [FallbackResponse].
// [Dispatcher.Fallback] reports when that happens.
//
// # Usage
//
//	d, err := llm.New(llm.Config{
//	    Backend: "completion-only",
//	    Backends: llm.BackendConfig{
//	        "completion-only": {URL: "https://example.net/models/gpt2", Key: key},
//	    },
//	})
//	res, err := d.Invoke(ctx, "hello")
//
// [ModelClient] is the SDK-only variant: one managed-inference deployment,
// selected by model name, with fixed sampling parameters.
//
// # Errors
//
// Transport failures come back wrapped: *httpclient.Error for REST
// backends, *openai.Error for the SDK. A response of the wrong shape
// returns [*ResponseShapeError]. Nothing is retried.
//
// Both Dispatcher and ModelClient implement
// provider.RequestResponse[string, Result], so the provider middlewares
// (logging, metrics, tracing) wrap them unchanged.
package llm
