package llm

// Message is a single role-tagged chat message.
type Message struct {
	Role    string `json:"role"` // "system", "user"
	Content string `json:"content"`
}

// Role values used in chat payloads.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Endpoint is the configuration of one backend: where to send requests and
// the credential to send with them.
type Endpoint struct {
	// URL is the absolute endpoint URL requests are POSTed to.
	URL string `yaml:"endpoint" json:"endpoint" mapstructure:"endpoint" validate:"required,url"`
	// Key is the backend credential. It is never logged.
	Key string `yaml:"key" json:"-" mapstructure:"key" validate:"required,notblank"`
	// Model optionally overrides the model name a backend sends.
	Model string `yaml:"model" json:"model,omitempty" mapstructure:"model"`
}

// String describes the endpoint without its key.
func (e Endpoint) String() string {
	if e.Model == "" {
		return e.URL
	}
	return e.URL + " (" + e.Model + ")"
}

// BackendConfig maps backend identifiers to their endpoints.
type BackendConfig map[string]Endpoint

// clone returns an independent copy so later mutation by the caller
// cannot reach a running dispatcher.
func (c BackendConfig) clone() BackendConfig {
	out := make(BackendConfig, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Result pairs a query with the text a backend generated for it.
type Result struct {
	Query    string `json:"query"`
	Response string `json:"response"`
}

// Credentials locate a managed-inference deployment.
type Credentials struct {
	Endpoint string `json:"endpoint" mapstructure:"endpoint" validate:"required,url"`
	Key      string `json:"-" mapstructure:"key" validate:"required,notblank"`
}
