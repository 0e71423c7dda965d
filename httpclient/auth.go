package httpclient

import "net/http"

// AuthType selects how a secret is attached to a request.
type AuthType int

const (
	AuthNone AuthType = iota
	// AuthBearer sends "Authorization: Bearer <secret>".
	AuthBearer
	// AuthAPIKey sends the secret verbatim in a named header.
	AuthAPIKey
)

const defaultKeyHeader = "X-API-Key"

func (t AuthType) String() string {
	switch t {
	case AuthBearer:
		return "bearer"
	case AuthAPIKey:
		return "api_key"
	default:
		return "none"
	}
}

// AuthConfig carries one credential. Printing it never shows the secret.
type AuthConfig struct {
	Type   AuthType
	Secret string
	// Header names the AuthAPIKey header. Empty means X-API-Key.
	Header string
}

// BearerAuth authenticates with a bearer token.
func BearerAuth(token string) *AuthConfig {
	return &AuthConfig{Type: AuthBearer, Secret: token}
}

// APIKeyAuth sends key in the X-API-Key header.
func APIKeyAuth(key string) *AuthConfig {
	return APIKeyAuthHeader(key, defaultKeyHeader)
}

// APIKeyAuthHeader sends key in the given header, e.g. "api-key".
func APIKeyAuthHeader(key, header string) *AuthConfig {
	return &AuthConfig{Type: AuthAPIKey, Secret: key, Header: header}
}

// String describes the scheme, and the header for API keys.
func (a *AuthConfig) String() string {
	switch {
	case a == nil:
		return AuthNone.String()
	case a.Type == AuthAPIKey:
		return a.Type.String() + "(" + a.header() + ")"
	default:
		return a.Type.String()
	}
}

// Credential returns the raw secret, or "" for a nil config.
func (a *AuthConfig) Credential() string {
	if a == nil {
		return ""
	}
	return a.Secret
}

func (a *AuthConfig) header() string {
	if a.Type == AuthBearer {
		return "Authorization"
	}
	if a.Header == "" {
		return defaultKeyHeader
	}
	return a.Header
}

func (a *AuthConfig) apply(h http.Header) {
	if a == nil {
		return
	}
	switch a.Type {
	case AuthBearer:
		h.Set(a.header(), "Bearer "+a.Secret)
	case AuthAPIKey:
		h.Set(a.header(), a.Secret)
	}
}
