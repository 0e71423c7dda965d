package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/kbukum/endpoints/logger"
)

// LoaderConfig holds the loader's dependencies and file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string
	EnvFile    string
	// Flags, when set, take precedence over every other source. Only flags
	// the user actually passed override; defaults never shadow file values.
	Flags *pflag.FlagSet
}

// LoaderOption configures LoadConfig and ResolveInference.
type LoaderOption func(*LoaderConfig)

// WithFileSystem replaces the disk with fs.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile skips the config.yml search.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile skips the .env search.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// WithFlags binds a parsed flag set. Flag names are config keys, so a flag
// named "endpoints.backend" overrides the nested endpoints.backend value.
func WithFlags(flags *pflag.FlagSet) LoaderOption {
	return func(lc *LoaderConfig) { lc.Flags = flags }
}

func newLoaderConfig(opts []LoaderOption) LoaderConfig {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = OSFileSystem{}
	}
	return lc
}

// LoadConfig fills cfg from, lowest precedence first: config.yml, the .env
// file, the process environment and flags. A missing or unreadable file is
// logged and skipped.
func LoadConfig(serviceName string, cfg any, opts ...LoaderOption) error {
	lc := newLoaderConfig(opts)
	files := (&Resolver{FileSystem: lc.FileSystem}).ResolveFiles(serviceName, lc)
	log := logger.WithComponent("config")

	v := viper.New()
	if files.ConfigFile != "" && lc.FileSystem.Exists(files.ConfigFile) {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			log.Warn("config file skipped", logger.Fields("file", files.ConfigFile, logger.FieldError, err.Error()))
		} else {
			log.Debug("config file loaded", logger.Fields("file", files.ConfigFile))
		}
	}
	if files.EnvFile != "" && lc.FileSystem.Exists(files.EnvFile) {
		if err := lc.FileSystem.LoadEnv(files.EnvFile); err != nil {
			log.Warn("env file skipped", logger.Fields("file", files.EnvFile, logger.FieldError, err.Error()))
		}
	}

	if err := bindEnvironment(v, os.Environ()); err != nil {
		return fmt.Errorf("config %s: bind environment: %w", serviceName, err)
	}
	if lc.Flags != nil {
		if err := v.BindPFlags(lc.Flags); err != nil {
			return fmt.Errorf("config %s: bind flags: %w", serviceName, err)
		}
	}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("config %s: %w", serviceName, err)
	}
	return nil
}

// bindEnvironment maps every variable onto each key it could address.
// Binding rather than setting keeps flags above the environment.
func bindEnvironment(v *viper.Viper, environ []string) error {
	for _, kv := range environ {
		name, _, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		for _, key := range generateEnvKeyVariants(name) {
			if err := v.BindEnv(key, name); err != nil {
				return err
			}
		}
	}
	return nil
}

// generateEnvKeyVariants lists the config keys an environment variable may
// address: the flat name, every underscore read as nesting, and only the
// first underscore read as nesting.
//
//	ENDPOINTS_BACKENDS_GPT2_KEY -> endpoints_backends_gpt2_key,
//	    endpoints.backends.gpt2.key, endpoints.backends_gpt2_key
//
// Deeper partial splits are left out: they would land string values inside
// maps of structs, such as endpoints.backends, and fail to decode.
func generateEnvKeyVariants(name string) []string {
	flat := strings.ToLower(name)
	parts := strings.Split(flat, "_")
	if len(parts) == 1 || slices.Contains(parts, "") {
		return []string{flat}
	}

	variants := []string{flat, strings.Join(parts, ".")}
	if len(parts) > 2 {
		variants = append(variants, parts[0]+"."+strings.Join(parts[1:], "_"))
	}
	return variants
}
