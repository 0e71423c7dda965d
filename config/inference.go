package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/kbukum/endpoints/errors"
)

// InferenceEnv holds the credentials of a managed-inference provider.
type InferenceEnv struct {
	Endpoint string
	Key      string
}

// InferenceEnvKeys returns the environment variable names read for a provider.
// "azure-openai" maps to AZURE_OPENAI_INFERENCE_ENDPOINT and AZURE_OPENAI_API_KEY.
func InferenceEnvKeys(providerName string) (endpointKey, apiKey string) {
	prefix := strings.ToUpper(strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(providerName))
	return prefix + "_INFERENCE_ENDPOINT", prefix + "_API_KEY"
}

// ResolveInference reads the provider's endpoint and key from the environment
// after loading the first .env file the resolver finds (or the one given by
// WithEnvFile). Both values are required.
func ResolveInference(providerName string, opts ...LoaderOption) (InferenceEnv, error) {
	lc := newLoaderConfig(opts)
	resolver := &Resolver{FileSystem: lc.FileSystem}
	files := resolver.ResolveFiles("", lc)
	if files.EnvFile != "" && lc.FileSystem.Exists(files.EnvFile) {
		if err := lc.FileSystem.LoadEnv(files.EnvFile); err != nil {
			return InferenceEnv{}, errors.InvalidFormat(files.EnvFile, "dotenv").WithCause(err)
		}
	}

	endpointKey, apiKey := InferenceEnvKeys(providerName)
	v := viper.New()
	if err := v.BindEnv("endpoint", endpointKey); err != nil {
		return InferenceEnv{}, errors.Internal(err)
	}
	if err := v.BindEnv("key", apiKey); err != nil {
		return InferenceEnv{}, errors.Internal(err)
	}

	env := InferenceEnv{
		Endpoint: strings.TrimSpace(v.GetString("endpoint")),
		Key:      strings.TrimSpace(v.GetString("key")),
	}
	if env.Endpoint == "" {
		return InferenceEnv{}, errors.MissingField(endpointKey)
	}
	if env.Key == "" {
		return InferenceEnv{}, errors.MissingField(apiKey)
	}
	return env, nil
}
