package httpclient

import (
	"fmt"
	"time"
)

const (
	defaultMaxIdleConnsPerHost = 10
	defaultUserAgent           = "audioviz"
)

// Config configures the outbound HTTP client.
type Config struct {
	// Timeout caps a whole request. Zero leaves the bound to the caller's
	// context.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// MaxIdleConnsPerHost limits pooled connections per upstream host.
	MaxIdleConnsPerHost int `yaml:"max_idle_conns_per_host" mapstructure:"max_idle_conns_per_host"`

	// UserAgent is sent when a request sets none.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// TLS configures verification of upstream certificates.
	TLS TLSConfig `yaml:"tls" mapstructure:"tls"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.MaxIdleConnsPerHost <= 0 {
		c.MaxIdleConnsPerHost = defaultMaxIdleConnsPerHost
	}
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("httpclient: timeout must not be negative (got: %s)", c.Timeout)
	}
	return c.TLS.Validate()
}
