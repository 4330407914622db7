package config

import (
	"fmt"

	"github.com/Surya-sourav/glass/observability"
	"github.com/Surya-sourav/glass/validation"
)

// ServiceName is the name used to locate cmd/<name>/config.yml and .env.<name>.
const ServiceName = "glass"

// Runtime values select the execution context handed to provider handlers.
const (
	RuntimeMain     = "main"
	RuntimeRenderer = "renderer"
)

// Config is the full glass configuration.
type Config struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Runtime   string                      `yaml:"runtime" mapstructure:"runtime" validate:"oneof=main renderer"`
	Server    ServerConfig                `yaml:"server" mapstructure:"server"`
	Providers map[string]ProviderSettings `yaml:"providers" mapstructure:"providers" validate:"dive,keys,provider_id,endkeys"`
	Tracing   observability.Config        `yaml:"tracing" mapstructure:"tracing"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr           string   `yaml:"addr" mapstructure:"addr" validate:"required,hostname_port"`
	MaxBodySize    string   `yaml:"max_body_size" mapstructure:"max_body_size"` // e.g. "25MB"
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// ProviderSettings holds per-provider credentials and overrides.
type ProviderSettings struct {
	APIKey  string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,url"`
	Model   string `yaml:"model" mapstructure:"model"`
}

// Options converts the settings to backend factory options. Empty values are
// left out so backend defaults apply.
func (s ProviderSettings) Options() map[string]any {
	opts := make(map[string]any, 3)
	if s.APIKey != "" {
		opts["api_key"] = s.APIKey
	}
	if s.BaseURL != "" {
		opts["base_url"] = s.BaseURL
	}
	if s.Model != "" {
		opts["model"] = s.Model
	}
	return opts
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	if c.Runtime == "" {
		c.Runtime = RuntimeMain
	}
	if c.Server.Addr == "" {
		c.Server.Addr = "localhost:8080"
	}
	if c.Server.MaxBodySize == "" {
		c.Server.MaxBodySize = "25MB"
	}
	if c.Providers == nil {
		c.Providers = map[string]ProviderSettings{}
	}
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = c.Name
	}
	if c.Tracing.ServiceVersion == "" {
		c.Tracing.ServiceVersion = c.Version
	}
	if c.Tracing.Environment == "" {
		c.Tracing.Environment = c.Environment
	}
	c.Tracing.ApplyDefaults()
}

// Validate checks the base fields, then the struct tags.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	return validation.Validate(c)
}

// Provider returns the settings for id. The openai-glass alias falls
// back to the openai settings when it has none of its own.
func (c *Config) Provider(id string) (ProviderSettings, bool) {
	if s, ok := c.Providers[id]; ok {
		return s, true
	}
	if id == "openai-glass" {
		s, ok := c.Providers["openai"]
		return s, ok
	}
	return ProviderSettings{}, false
}

// ProviderOptions returns backend options for id, never nil.
func (c *Config) ProviderOptions(id string) map[string]any {
	s, _ := c.Provider(id)
	return s.Options()
}

// Load reads, defaults and validates the glass configuration.
func Load(opts ...LoaderOption) (*Config, error) {
	cfg := &Config{}
	if err := LoadConfig(ServiceName, cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
