package httpclient

import (
	"fmt"
	"net/url"
	"time"

	"github.com/kbukum/stripefdw/logger"
	"github.com/kbukum/stripefdw/resilience"
)

const (
	defaultTimeout = 30 * time.Second
)

// Config configures the HTTP client.
type Config struct {
	// BaseURL is the base URL prepended to all request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout bounds a single attempt. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Auth is applied to every request. Its header is always treated as
	// sensitive.
	Auth *AuthConfig `yaml:"-" mapstructure:"-"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// SensitiveHeaders are masked in request dumps and logs.
	SensitiveHeaders []string `yaml:"sensitive_headers" mapstructure:"sensitive_headers"`

	// Retry configures retry behavior. Nil means a single attempt.
	Retry *resilience.RetryConfig `yaml:"-" mapstructure:"-"`

	// RateLimiter paces outbound attempts. Nil disables it.
	RateLimiter *resilience.RateLimiterConfig `yaml:"-" mapstructure:"-"`

	// Logger receives retry warnings and debug request dumps.
	// Defaults to the "httpclient" component logger.
	Logger *logger.Logger `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.Logger == nil {
		c.Logger = logger.Get("httpclient")
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("httpclient: invalid base url %q", c.BaseURL)
		}
	}
	return nil
}

// DefaultRetryConfig returns a retry config that retries only transient
// transport failures and 5xx responses.
func DefaultRetryConfig() *resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	cfg.RetryIf = IsRetryable
	return &cfg
}
