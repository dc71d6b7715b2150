package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/kbukum/stripefdw/errors"
)

func TestValidatorRequired(t *testing.T) {
	v := New()
	v.Required("object", "balance")
	if v.HasErrors() {
		t.Error("expected no errors for valid input")
	}

	v2 := New()
	v2.Required("object", "")
	if !v2.HasErrors() {
		t.Error("expected error for empty required field")
	}

	v3 := New()
	v3.Required("object", "   ")
	if !v3.HasErrors() {
		t.Error("expected error for whitespace-only required field")
	}
}

func TestValidatorOneOf(t *testing.T) {
	allowed := []string{"text", "json"}

	v := New()
	v.OneOf("format", "json", allowed)
	if v.HasErrors() {
		t.Error("expected no errors for allowed value")
	}

	v2 := New()
	v2.OneOf("format", "xml", allowed)
	if !v2.HasErrors() {
		t.Error("expected error for disallowed value")
	}

	v3 := New()
	v3.OneOf("format", "", allowed)
	if v3.HasErrors() {
		t.Error("expected empty value to be skipped")
	}
}

func TestValidatorCustom(t *testing.T) {
	v := New()
	v.Custom(true, "field", "should not appear")
	if v.HasErrors() {
		t.Error("expected no errors when condition is true")
	}

	v.Custom(false, "field", "custom failure")
	if !v.HasErrors() {
		t.Error("expected error when condition is false")
	}
}

func TestValidatorValidate(t *testing.T) {
	v := New()
	if v.Validate() != nil {
		t.Error("expected nil AppError with no errors")
	}

	v.Required("a", "").Required("b", "")
	appErr := v.Validate()
	if appErr == nil {
		t.Fatal("expected AppError")
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}
	if !strings.Contains(appErr.Message, "a: is required; b: is required") {
		t.Errorf("unexpected message %q", appErr.Message)
	}
}

type testConfig struct {
	BaseURL    string        `mapstructure:"base_url" validate:"required,url"`
	Timeout    time.Duration `mapstructure:"timeout" validate:"gt=0"`
	MaxRetries int           `mapstructure:"max_retries" validate:"gte=0,lte=10"`
}

func TestStructValidateValid(t *testing.T) {
	err := Validate(testConfig{BaseURL: "https://api.stripe.com/v1", Timeout: time.Second, MaxRetries: 3})
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestStructValidateInvalid(t *testing.T) {
	err := Validate(testConfig{BaseURL: "not a url", Timeout: 0, MaxRetries: 11})
	if err == nil {
		t.Fatal("expected validation error")
	}
	errStr := err.Error()
	for _, want := range []string{"base_url: must be a valid URL", "timeout: must be greater than 0", "max_retries: must be 10 or less"} {
		if !strings.Contains(errStr, want) {
			t.Errorf("expected error to contain %q, got %q", want, errStr)
		}
	}
}

func TestToSnakeCase(t *testing.T) {
	if got := toSnakeCase("MaxRetries"); got != "max_retries" {
		t.Errorf("got %q, want max_retries", got)
	}
}
