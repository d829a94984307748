package llm

import "net/http"

// Config holds connection settings for one LLM provider. APIKey is the
// server default; per-request keys are applied with WithAPIKey.
type Config struct {
	APIKey      string  `yaml:"api_key" mapstructure:"api_key"`
	Model       string  `yaml:"model" mapstructure:"model"`
	BaseURL     string  `yaml:"base_url" mapstructure:"base_url"`
	APIVersion  string  `yaml:"api_version" mapstructure:"api_version"`
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`
	MaxTokens   int     `yaml:"max_tokens" mapstructure:"max_tokens"`

	// HTTPClient carries requests to the provider. Nil uses the SDK default.
	HTTPClient *http.Client `yaml:"-" mapstructure:"-"`
}

// WithAPIKey returns a copy of c using key.
func (c Config) WithAPIKey(key string) Config {
	c.APIKey = key
	return c
}

// ModelOr returns the configured model, or def when none is set.
func (c Config) ModelOr(def string) string {
	if c.Model != "" {
		return c.Model
	}
	return def
}
