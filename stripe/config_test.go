package stripe

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/stripefdw/errors"
	"github.com/kbukum/stripefdw/fdw"
	"github.com/kbukum/stripefdw/httpclient"
)

func TestConfigFromOptionsDefaults(t *testing.T) {
	cfg, err := ConfigFromOptions(fdw.Options{OptAPIKey: "sk_test_123"})
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 100*time.Millisecond, cfg.InitialBackoff)
	assert.Equal(t, DefaultRateLimit, cfg.RateLimit)
	assert.False(t, cfg.APIKey.IsZero())
}

func TestConfigFromOptionsOverrides(t *testing.T) {
	cfg, err := ConfigFromOptions(fdw.Options{
		OptAPIKey:         "sk_test_123",
		OptBaseURL:        "http://localhost:12111/v1",
		OptTimeout:        "5s",
		OptMaxRetries:     "0",
		OptInitialBackoff: "10ms",
		OptRateLimit:      "0",
	})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:12111/v1", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 0, cfg.MaxRetries)
	assert.Equal(t, 10*time.Millisecond, cfg.InitialBackoff)
	assert.Zero(t, cfg.RateLimit)
}

func TestConfigFromOptionsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts fdw.Options
		code errors.ErrorCode
	}{
		{"no key", fdw.Options{}, errors.ErrCodeMissingCredential},
		{"blank key", fdw.Options{OptAPIKey: "   "}, errors.ErrCodeMissingCredential},
		{"bad timeout", fdw.Options{OptAPIKey: "k", OptTimeout: "soon"}, errors.ErrCodeInvalidInput},
		{"zero timeout", fdw.Options{OptAPIKey: "k", OptTimeout: "0s"}, errors.ErrCodeInvalidInput},
		{"bad retries", fdw.Options{OptAPIKey: "k", OptMaxRetries: "three"}, errors.ErrCodeInvalidInput},
		{"too many retries", fdw.Options{OptAPIKey: "k", OptMaxRetries: "11"}, errors.ErrCodeInvalidInput},
		{"negative retries", fdw.Options{OptAPIKey: "k", OptMaxRetries: "-1"}, errors.ErrCodeInvalidInput},
		{"bad base url", fdw.Options{OptAPIKey: "k", OptBaseURL: "not a url"}, errors.ErrCodeInvalidInput},
		{"bad rate", fdw.Options{OptAPIKey: "k", OptRateLimit: "-1"}, errors.ErrCodeInvalidInput},
		{"non-http base url", fdw.Options{OptAPIKey: "k", OptBaseURL: "ftp://files.stripe.com/v1"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ConfigFromOptions(tt.opts)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.CodeOf(err), "got %v", err)
		})
	}
}

func TestConfigValidateMessages(t *testing.T) {
	cfg := DefaultConfig()
	cfg.APIKey = "k"
	cfg.MaxRetries = 20
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_retries: must be 10 or less")
}

func TestConfigValidateBaseURLScheme(t *testing.T) {
	cfg := DefaultConfig()
	cfg.APIKey = "k"
	cfg.BaseURL = "ftp://files.stripe.com/v1"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base_url: must be an http or https URL")

	cfg.BaseURL = "http://localhost:12111/v1"
	assert.NoError(t, cfg.Validate())
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{APIKey: "k"}
	cfg.ApplyDefaults()
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, DefaultInitialBackoff, cfg.InitialBackoff)
	assert.Zero(t, cfg.MaxRetries)
	assert.NoError(t, cfg.Validate())
}

func TestConfigNeverPrintsKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.APIKey = httpclient.Secret("sk_live_abcdef")

	for _, out := range []string{
		fmt.Sprintf("%v", cfg),
		fmt.Sprintf("%+v", cfg),
		fmt.Sprintf("%#v", cfg),
	} {
		assert.NotContains(t, out, "sk_live_abcdef")
	}
}
