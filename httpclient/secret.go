package httpclient

import (
	"fmt"
	"strings"
)

const redacted = "[REDACTED]"

// Secret holds a credential. Every formatting and marshaling path renders
// it as [REDACTED]; only the auth applier reads the raw value.
type Secret string

// IsZero reports whether the secret is empty or blank.
func (s Secret) IsZero() bool { return strings.TrimSpace(string(s)) == "" }

// String implements fmt.Stringer.
func (s Secret) String() string { return redacted }

// GoString implements fmt.GoStringer.
func (s Secret) GoString() string { return redacted }

// Format implements fmt.Formatter so no verb can print the raw value.
func (s Secret) Format(f fmt.State, _ rune) { _, _ = f.Write([]byte(redacted)) }

// MarshalJSON implements json.Marshaler.
func (s Secret) MarshalJSON() ([]byte, error) { return []byte(`"` + redacted + `"`), nil }

// MarshalText implements encoding.TextMarshaler.
func (s Secret) MarshalText() ([]byte, error) { return []byte(redacted), nil }

func (s Secret) reveal() string { return string(s) }
