// Package validation provides input validation helpers.
//
// Struct tag validation (go-playground/validator) is used for configuration
// structs; the programmatic Validator collects errors for ad-hoc checks such
// as command-line flags.
//
//	type Config struct {
//	    BaseURL string `mapstructure:"base_url" validate:"required,url"`
//	}
//	err := validation.Validate(cfg)
//
//	err := validation.New().OneOf("format", format, []string{"text", "json"}).Validate()
package validation
