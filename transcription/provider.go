package transcription

import (
	"net/http"

	"github.com/kbukum/audioviz/provider"
)

// Provider is the interface that transcription backends implement.
type Provider interface {
	provider.RequestResponse[Request, Response]
}

// Config holds connection settings for a transcription backend. APIKey is
// the server default; per-request keys are applied with WithAPIKey.
type Config struct {
	APIKey     string `yaml:"api_key" mapstructure:"api_key"`
	Model      string `yaml:"model" mapstructure:"model"`
	BaseURL    string `yaml:"base_url" mapstructure:"base_url"`
	APIVersion string `yaml:"api_version" mapstructure:"api_version"`

	HTTPClient *http.Client `yaml:"-" mapstructure:"-"`
}

// WithAPIKey returns a copy of c using key.
func (c Config) WithAPIKey(key string) Config {
	c.APIKey = key
	return c
}
