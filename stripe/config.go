package stripe

import (
	"net/url"
	"time"

	"github.com/kbukum/stripefdw/errors"
	"github.com/kbukum/stripefdw/fdw"
	"github.com/kbukum/stripefdw/httpclient"
	"github.com/kbukum/stripefdw/validation"
)

// Option names accepted at construction and scan start.
const (
	OptAPIKey         = "api_key"
	OptBaseURL        = "base_url"
	OptTimeout        = "timeout"
	OptMaxRetries     = "max_retries"
	OptInitialBackoff = "initial_backoff"
	OptRateLimit      = "rate_limit"
	OptObject         = "object"
)

const (
	DefaultBaseURL        = "https://api.stripe.com/v1"
	DefaultTimeout        = 30 * time.Second
	DefaultMaxRetries     = 3
	DefaultInitialBackoff = 100 * time.Millisecond
	// DefaultRateLimit is Stripe's documented test-mode read limit, in
	// requests per second.
	DefaultRateLimit = 25.0
)

// Config configures the wrapper's transport.
type Config struct {
	APIKey         httpclient.Secret `yaml:"api_key" mapstructure:"api_key"`
	BaseURL        string            `yaml:"base_url" mapstructure:"base_url" validate:"required,url"`
	Timeout        time.Duration     `yaml:"timeout" mapstructure:"timeout" validate:"gt=0"`
	MaxRetries     int               `yaml:"max_retries" mapstructure:"max_retries" validate:"gte=0,lte=10"`
	InitialBackoff time.Duration     `yaml:"initial_backoff" mapstructure:"initial_backoff" validate:"gt=0"`
	// RateLimit paces requests per second. Zero disables pacing.
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit" validate:"gte=0"`
}

// DefaultConfig returns a config with every optional field set. APIKey is
// left empty.
func DefaultConfig() Config {
	return Config{
		BaseURL:        DefaultBaseURL,
		Timeout:        DefaultTimeout,
		MaxRetries:     DefaultMaxRetries,
		InitialBackoff: DefaultInitialBackoff,
		RateLimit:      DefaultRateLimit,
	}
}

// ApplyDefaults fills zero-value fields. MaxRetries and RateLimit are left
// alone since zero is meaningful for both.
func (c *Config) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.InitialBackoff <= 0 {
		c.InitialBackoff = DefaultInitialBackoff
	}
}

// Validate checks the config. A missing key is MISSING_CREDENTIAL; any
// other problem is INVALID_INPUT. The base URL must use http or https.
func (c Config) Validate() error {
	if c.APIKey.IsZero() {
		return errors.MissingCredential(OptAPIKey)
	}
	if err := validation.Validate(c); err != nil {
		return err
	}
	if err := validation.New().
		Custom(isHTTPURL(c.BaseURL), OptBaseURL, "must be an http or https URL").
		Validate(); err != nil {
		return err
	}
	return nil
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ConfigFromOptions builds a config from host construction options,
// starting from DefaultConfig.
func ConfigFromOptions(opts fdw.Options) (Config, error) {
	cfg := DefaultConfig()

	key, err := opts.Require(OptAPIKey, errors.MissingCredential)
	if err != nil {
		return Config{}, err
	}
	cfg.APIKey = httpclient.Secret(key)

	if v, ok := opts.Get(OptBaseURL); ok {
		cfg.BaseURL = v
	}
	if cfg.Timeout, err = opts.Duration(OptTimeout, cfg.Timeout); err != nil {
		return Config{}, err
	}
	if cfg.MaxRetries, err = opts.Int(OptMaxRetries, cfg.MaxRetries); err != nil {
		return Config{}, err
	}
	if cfg.InitialBackoff, err = opts.Duration(OptInitialBackoff, cfg.InitialBackoff); err != nil {
		return Config{}, err
	}
	if cfg.RateLimit, err = opts.Float(OptRateLimit, cfg.RateLimit); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
