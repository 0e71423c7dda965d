package config

import (
	"fmt"
	"slices"
	"strings"
)

// Deployment environments accepted in base.environment.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

var environments = []string{EnvDevelopment, EnvStaging, EnvProduction}

// BaseConfig identifies the running host. It is embedded, squashed, at the
// top of the application config.
type BaseConfig struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Environment string `yaml:"environment" mapstructure:"environment"`
	Version     string `yaml:"version" mapstructure:"version"`
	Debug       bool   `yaml:"debug" mapstructure:"debug"`
}

// ApplyDefaults names the host "endpoints" and runs it in development, with
// debug on, unless told otherwise.
func (c *BaseConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "endpoints"
	}
	if c.Environment == "" {
		c.Environment = EnvDevelopment
	}
	c.Debug = c.Debug || c.Environment == EnvDevelopment
}

// Validate requires a name and a known environment.
func (c *BaseConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("base.name is required")
	}
	if !slices.Contains(environments, c.Environment) {
		return fmt.Errorf("base.environment must be one of [%s] (got: %s)", strings.Join(environments, ", "), c.Environment)
	}
	return nil
}

