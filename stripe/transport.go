package stripe

import (
	"time"

	"github.com/kbukum/stripefdw/httpclient"
	"github.com/kbukum/stripefdw/logger"
	"github.com/kbukum/stripefdw/resilience"
	"github.com/kbukum/stripefdw/version"
)

// NewTransport builds the authenticated, retrying HTTP client a wrapper
// uses for its lifetime. It fails with MISSING_CREDENTIAL before touching
// the network when cfg has no API key.
func NewTransport(cfg Config, log *logger.Logger) (*httpclient.Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Get("stripe")
	}

	retry := httpclient.DefaultRetryConfig().WithMaxRetries(cfg.MaxRetries)
	retry.InitialBackoff = cfg.InitialBackoff

	var limiter *resilience.RateLimiterConfig
	if cfg.RateLimit > 0 {
		limiter = &resilience.RateLimiterConfig{
			Name: "stripe",
			Rate: cfg.RateLimit,
			OnLimit: func(name string, wait time.Duration) {
				log.Debug("rate limited", logger.Fields("limiter", name, "wait_ms", wait.Milliseconds()))
			},
		}
	}

	return httpclient.New(httpclient.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Auth:    httpclient.BearerAuth(cfg.APIKey),
		Headers: map[string]string{
			"Accept":     "application/json",
			"User-Agent": version.UserAgent(),
		},
		SensitiveHeaders: []string{"Stripe-Account"},
		Retry:            &retry,
		RateLimiter:      limiter,
		Logger:           log,
	})
}
