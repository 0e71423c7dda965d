package server

import (
	"net"
	"strconv"
	"time"

	"github.com/kbukum/endpoints/server/middleware"
	"github.com/kbukum/endpoints/validation"
)

// Config is the server section of the host config. Durations accept
// strings such as "15s".
type Config struct {
	Host            string                `yaml:"host" mapstructure:"host"`
	Port            int                   `yaml:"port" mapstructure:"port"`
	ReadTimeout     time.Duration         `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration         `yaml:"write_timeout" mapstructure:"write_timeout"`
	IdleTimeout     time.Duration         `yaml:"idle_timeout" mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration         `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
	MaxBodySize     string                `yaml:"max_body_size" mapstructure:"max_body_size"`
	CORS            middleware.CORSConfig `yaml:"cors" mapstructure:"cors"`
}

// ApplyDefaults fills unset fields. The write timeout outlives a slow
// backend round trip.
func (c *Config) ApplyDefaults() {
	setDefault(&c.ReadTimeout, 15*time.Second)
	setDefault(&c.WriteTimeout, 150*time.Second)
	setDefault(&c.IdleTimeout, time.Minute)
	setDefault(&c.ShutdownTimeout, 5*time.Second)
	setDefault(&c.Port, 8080)
	setDefault(&c.MaxBodySize, "1MB")
	if len(c.CORS.AllowedMethods) == 0 {
		c.CORS.AllowedMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(c.CORS.AllowedHeaders) == 0 {
		c.CORS.AllowedHeaders = []string{"Origin", "Content-Type", "Accept", middleware.HeaderRequestID}
	}
}

func setDefault[T comparable](field *T, def T) {
	var zero T
	if *field == zero {
		*field = def
	}
}

// Validate reports every out-of-range field at once.
func (c *Config) Validate() error {
	return validation.New().
		Check(c.Port >= 0 && c.Port <= 65535, "server.port", "must be between 0 and 65535").
		Check(c.ReadTimeout >= 0, "server.read_timeout", "must not be negative").
		Check(c.WriteTimeout >= 0, "server.write_timeout", "must not be negative").
		Check(c.IdleTimeout >= 0, "server.idle_timeout", "must not be negative").
		Check(c.ShutdownTimeout >= 0, "server.shutdown_timeout", "must not be negative").
		Check(middleware.ParseSize(c.MaxBodySize, -1) > 0, "server.max_body_size", "must be a size such as 512KB or 1MB").
		Err()
}

// Addr is the host:port to listen on.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
