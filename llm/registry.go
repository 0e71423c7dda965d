package llm

import (
	"sort"
	"strings"
	"sync"
)

// Registry maps backend identifiers and their aliases to dialects.
// It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	dialects map[string]Dialect
	aliases  map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		dialects: make(map[string]Dialect),
		aliases:  make(map[string]string),
	}
}

// DefaultRegistry returns a registry holding the built-in backends.
// Every call returns a fresh registry, so registering on it never
// affects other dispatchers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewChatDialect(BackendChatLarge), "gpt-4o")
	r.Register(NewChatDialect(BackendChatSmall), "gpt-4o-mini")
	r.Register(NewLightweightChatDialect(), "tiny_llama")
	r.Register(NewInferenceDialect(), "Phi-4", "phi-4")
	r.Register(NewCompletionDialect(), "gpt2")
	r.Register(NewInstructDialect(), "mistral7b")
	return r
}

// Register adds a dialect under its name and any aliases. A later
// registration of the same name or alias replaces the earlier one.
func (r *Registry) Register(d Dialect, aliases ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := d.Name()
	r.dialects[name] = d
	for _, a := range aliases {
		r.aliases[a] = name
	}
}

// Lookup returns the dialect registered for id, which may be a
// canonical name or an alias.
func (r *Registry) Lookup(id string) (Dialect, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if d, ok := r.dialects[id]; ok {
		return d, true
	}
	if name, ok := r.aliases[id]; ok {
		d, ok := r.dialects[name]
		return d, ok
	}
	return nil, false
}

// Names returns the sorted canonical names of all registered dialects.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.dialects))
	for name := range r.dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// aliasesOf returns the aliases registered for a canonical name, sorted.
func (r *Registry) aliasesOf(name string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	for a, n := range r.aliases {
		if n == name {
			out = append(out, a)
		}
	}
	sort.Strings(out)
	return out
}

// endpointFor finds the config entry for the selected tag. Keys are tried
// as given, then by canonical name, then by each alias, then ignoring case
// (viper lowercases map keys).
func (r *Registry) endpointFor(tag string, d Dialect, cfg BackendConfig) (Endpoint, bool) {
	candidates := append([]string{tag, d.Name()}, r.aliasesOf(d.Name())...)
	for _, k := range candidates {
		if ep, ok := cfg[k]; ok {
			return ep, true
		}
	}
	for _, k := range candidates {
		for key, ep := range cfg {
			if strings.EqualFold(key, k) {
				return ep, true
			}
		}
	}
	return Endpoint{}, false
}
