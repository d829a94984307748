package main

import (
	"fmt"
	"time"

	"github.com/kbukum/audioviz/config"
	"github.com/kbukum/audioviz/httpclient"
	"github.com/kbukum/audioviz/internal/credential"
	"github.com/kbukum/audioviz/internal/upload"
	"github.com/kbukum/audioviz/llm"
	llmgemini "github.com/kbukum/audioviz/llm/gemini"
	llmopenai "github.com/kbukum/audioviz/llm/openai"
	"github.com/kbukum/audioviz/observability"
	"github.com/kbukum/audioviz/server"
	"github.com/kbukum/audioviz/storage"
	"github.com/kbukum/audioviz/transcription"
)

const serviceName = "audioviz"

// ProvidersConfig holds settings shared by all upstream calls.
type ProvidersConfig struct {
	// Timeout bounds each upstream call.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// HTTP configures the client the provider SDKs send requests through.
	HTTP httpclient.Config `yaml:"http" mapstructure:"http"`
}

// AppConfig is the full service configuration. GEMINI_API_KEY and
// OPENAI_API_KEY bind to gemini.api_key and openai.api_key.
type AppConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Gemini        llm.Config           `yaml:"gemini" mapstructure:"gemini"`
	OpenAI        llm.Config           `yaml:"openai" mapstructure:"openai"`
	Providers     ProvidersConfig      `yaml:"providers" mapstructure:"providers"`
	Upload        upload.Config        `yaml:"upload" mapstructure:"upload"`
	Storage       storage.Config       `yaml:"storage" mapstructure:"storage"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

func (c *AppConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	if c.Gemini.Model == "" {
		c.Gemini.Model = llmgemini.DefaultModel
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = llmopenai.DefaultModel
	}
	if c.Providers.Timeout == 0 {
		c.Providers.Timeout = 120 * time.Second
	}
	c.Providers.HTTP.ApplyDefaults()
	c.Upload.ApplyDefaults()
	c.Storage.ApplyDefaults()

	c.Observability.ServiceName = c.Name
	c.Observability.ServiceVersion = c.Version
	c.Observability.Environment = c.Environment
	c.Observability.ApplyDefaults()
}

func (c *AppConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if c.Providers.Timeout < 0 {
		return fmt.Errorf("providers.timeout must be positive (got: %s)", c.Providers.Timeout)
	}
	if err := c.Providers.HTTP.Validate(); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	return c.Observability.Validate()
}

// Transcription derives the transcription backend settings from the gemini
// section. Keys are supplied per request.
func (c *AppConfig) Transcription() transcription.Config {
	return transcription.Config{
		Model:      c.Gemini.Model,
		BaseURL:    c.Gemini.BaseURL,
		APIVersion: c.Gemini.APIVersion,
	}
}

// DefaultKeys returns the server default API keys by provider name.
func (c *AppConfig) DefaultKeys() map[string]string {
	return map[string]string{
		credential.Gemini.Name: c.Gemini.APIKey,
		credential.OpenAI.Name: c.OpenAI.APIKey,
	}
}
