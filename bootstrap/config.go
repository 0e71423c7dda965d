package bootstrap

import (
	"github.com/kbukum/endpoints/config"
)

// Config is the constraint for application configuration types. A struct
// embedding config.BaseConfig gets ApplyDefaults and Validate by promotion
// and only needs to add Base.
//
//	type AppConfig struct {
//	    config.BaseConfig `yaml:",inline" mapstructure:",squash"`
//	    Endpoints llm.Config `yaml:"endpoints" mapstructure:"endpoints"`
//	}
//
//	func (c *AppConfig) Base() *config.BaseConfig { return &c.BaseConfig }
type Config interface {
	Base() *config.BaseConfig
	ApplyDefaults()
	Validate() error
}
