package main

import (
	"github.com/kbukum/stripefdw/config"
	"github.com/kbukum/stripefdw/observability"
	"github.com/kbukum/stripefdw/stripe"
)

const appName = "stripe-scan"

// Config is the stripe-scan configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Stripe  stripe.Config              `yaml:"stripe" mapstructure:"stripe"`
	Tracing observability.TracerConfig `yaml:"tracing" mapstructure:"tracing"`
}

// loadConfig reads config.yml, .env and the environment. path overrides
// the config file lookup when set.
func loadConfig(path string) (*Config, error) {
	opts := []config.LoaderOption{
		config.WithDefault("name", appName),
		config.WithDefault("environment", "development"),
		config.WithDefault("stripe.base_url", stripe.DefaultBaseURL),
		config.WithDefault("stripe.timeout", stripe.DefaultTimeout),
		config.WithDefault("stripe.max_retries", stripe.DefaultMaxRetries),
		config.WithDefault("stripe.initial_backoff", stripe.DefaultInitialBackoff),
		config.WithDefault("stripe.rate_limit", stripe.DefaultRateLimit),
		config.WithDefault("tracing.endpoint", "localhost:4318"),
		config.WithDefault("tracing.insecure", true),
		config.WithDefault("tracing.sample_rate", 1.0),
	}
	if path != "" {
		opts = append(opts, config.WithConfigFile(path))
	}

	cfg := &Config{}
	if err := config.LoadConfig(appName, cfg, opts...); err != nil {
		return nil, err
	}
	cfg.Stripe.ApplyDefaults()
	return cfg, nil
}

// tracerConfig fills the service identity into the tracing section.
func (c *Config) tracerConfig(version string) observability.TracerConfig {
	tc := c.Tracing
	tc.ServiceName = c.Name
	tc.ServiceVersion = version
	tc.Environment = c.Environment
	return tc
}
