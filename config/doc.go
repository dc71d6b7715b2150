// Package config loads layered configuration with Viper.
//
// Values come from defaults, a config.yml found next to the binary, an
// optional .env file, and the process environment, in that order of
// precedence. Environment variables address nested keys by replacing dots
// with underscores (STRIPE_API_KEY sets stripe.api_key).
//
// # Usage
//
//	var cfg Config
//	err := config.LoadConfig("stripe-scan", &cfg,
//	    config.WithDefault("stripe.timeout", "30s"))
package config
