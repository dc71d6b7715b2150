package fdw

import (
	"strconv"
	"strings"
	"time"

	"github.com/kbukum/stripefdw/errors"
	"github.com/kbukum/stripefdw/util"
)

const redactedValue = "[REDACTED]"

// Options are the string key/value options the host passes at
// construction and at scan start.
type Options map[string]string

// Get returns the option value with whitespace and control characters
// removed. Blank values count as absent.
func (o Options) Get(name string) (string, bool) {
	v, ok := o[name]
	if !ok {
		return "", false
	}
	v = util.SanitizeString(v)
	return v, v != ""
}

// Raw returns the option value exactly as given. Empty values count as
// absent.
func (o Options) Raw(name string) (string, bool) {
	v, ok := o[name]
	return v, ok && v != ""
}

// Require returns the named option, or the error built by missing when it
// is absent or blank.
//
//	key, err := opts.Require("api_key", errors.MissingCredential)
func (o Options) Require(name string, missing func(option string) *errors.AppError) (string, error) {
	v, ok := o.Get(name)
	if !ok {
		return "", missing(name)
	}
	return v, nil
}

// Duration parses a Go duration option, returning def when it is absent.
func (o Options) Duration(name string, def time.Duration) (time.Duration, error) {
	v, ok := o.Get(name)
	if !ok {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, errors.InvalidInput(name, "not a duration: "+v).WithCause(err)
	}
	return d, nil
}

// Int parses an integer option, returning def when it is absent.
func (o Options) Int(name string, def int) (int, error) {
	v, ok := o.Get(name)
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.InvalidInput(name, "not an integer: "+v).WithCause(err)
	}
	return n, nil
}

// Float parses a float option, returning def when it is absent.
func (o Options) Float(name string, def float64) (float64, error) {
	v, ok := o.Get(name)
	if !ok {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.InvalidInput(name, "not a number: "+v).WithCause(err)
	}
	return f, nil
}

// Redacted returns a copy safe to log: values of credential-like options
// are masked.
func (o Options) Redacted() map[string]string {
	out := make(map[string]string, len(o))
	for k, v := range o {
		if isSensitiveOption(k) {
			v = redactedValue
		}
		out[k] = v
	}
	return out
}

func isSensitiveOption(name string) bool {
	name = strings.ToLower(name)
	for _, marker := range []string{"key", "secret", "token", "password"} {
		if strings.Contains(name, marker) {
			return true
		}
	}
	return false
}
