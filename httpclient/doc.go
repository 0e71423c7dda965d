// Package httpclient is the HTTP client REST backends are called through.
// Each request carries its own credential, as a bearer token or a named
// API key header, and every failure comes back classified.
//
// The client never retries. A failed round trip returns an *Error whose
// Code classifies the failure; Is(err, ErrCodeAuth) tests for one code.
// Response bodies are read up to Config.MaxResponseBytes.
//
//	client, err := httpclient.New(httpclient.Config{Timeout: 30 * time.Second})
//	resp, err := client.Do(ctx, httpclient.Request{
//	    Method: http.MethodPost,
//	    URL:    "https://example.test/v1/chat/completions",
//	    Body:   payload,
//	    Auth:   httpclient.APIKeyAuthHeader(key, "api-key"),
//	})
//
// The rest subpackage adds typed JSON decoding on top.
package httpclient
