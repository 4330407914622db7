package httpclient

import (
	"fmt"
	"net/url"
	"time"

	"github.com/Surya-sourav/glass/version"
)

const defaultTimeout = 30 * time.Second

// Config configures a backend's HTTP client.
type Config struct {
	// BaseURL is the vendor API root, e.g. "https://api.openai.com/v1".
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout bounds non-streaming requests. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Auth is the provider API key applied to every request.
	Auth *AuthConfig `yaml:"-" mapstructure:"-"`

	// Headers are sent with every request, e.g. "anthropic-version".
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// UserAgent defaults to "glass/<version>".
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// Retry configures retry behavior. Nil disables retry.
	Retry *RetryConfig `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in the timeout and user agent.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = "glass/" + version.Short()
	}
}

// Validate requires an absolute http(s) base URL and a positive timeout.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("httpclient: base url %q must be an absolute http(s) url", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	return nil
}
