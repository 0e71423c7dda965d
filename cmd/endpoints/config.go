package main

import (
	"github.com/kbukum/endpoints/config"
	"github.com/kbukum/endpoints/llm"
	"github.com/kbukum/endpoints/logger"
	"github.com/kbukum/endpoints/observability"
	"github.com/kbukum/endpoints/server"
	"github.com/kbukum/endpoints/validation"
)

// AppConfig is the full configuration of the endpoints host.
type AppConfig struct {
	config.BaseConfig `yaml:",inline" mapstructure:",squash"`

	Logging   logger.Config               `yaml:"logging" mapstructure:"logging"`
	Endpoints llm.Config                  `yaml:"endpoints" mapstructure:"endpoints"`
	Server    server.Config               `yaml:"server" mapstructure:"server"`
	Tracing   observability.TracingConfig `yaml:"tracing" mapstructure:"tracing"`
	Metrics   observability.MetricsConfig `yaml:"metrics" mapstructure:"metrics"`

	// Managed-inference model client mode, enabled by setting Model.
	Model    string `yaml:"model" mapstructure:"model"`
	Provider string `yaml:"provider" mapstructure:"provider"`
}

// Base implements bootstrap.Config.
func (c *AppConfig) Base() *config.BaseConfig { return &c.BaseConfig }

// ApplyDefaults fills every section's defaults.
func (c *AppConfig) ApplyDefaults() {
	c.BaseConfig.ApplyDefaults()
	c.Logging.ApplyDefaults()
	c.Endpoints.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Tracing.ApplyDefaults()
	c.Metrics.ApplyDefaults()
	if c.Provider == "" {
		c.Provider = "azure-openai"
	}
}

// Validate checks every section.
func (c *AppConfig) Validate() error {
	if err := c.BaseConfig.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	return validation.New().
		Check(!c.Metrics.Enabled || c.Metrics.Interval > 0, "metrics.interval", "must be positive").
		Check(c.Model == "" || c.Provider != "", "provider", "is required with model").
		Err()
}
