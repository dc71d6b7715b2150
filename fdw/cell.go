package fdw

import (
	"encoding/json"
	"strconv"
)

// Kind identifies the type of value a Cell holds.
type Kind int

const (
	// KindInt64 holds a signed 64-bit integer.
	KindInt64 Kind = iota + 1
	// KindString holds text.
	KindString
	// KindBool holds a boolean.
	KindBool
	// KindFloat64 holds a double precision float.
	KindFloat64
)

// String returns the SQL-ish name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInt64:
		return "bigint"
	case KindString:
		return "text"
	case KindBool:
		return "boolean"
	case KindFloat64:
		return "double precision"
	default:
		return "unknown"
	}
}

// Cell is a single typed column value. A nil *Cell is SQL NULL.
type Cell struct {
	kind Kind
	i    int64
	s    string
	b    bool
	f    float64
}

// Int64 returns an integer cell.
func Int64(v int64) *Cell { return &Cell{kind: KindInt64, i: v} }

// String returns a text cell.
func String(v string) *Cell { return &Cell{kind: KindString, s: v} }

// Bool returns a boolean cell.
func Bool(v bool) *Cell { return &Cell{kind: KindBool, b: v} }

// Float64 returns a floating point cell.
func Float64(v float64) *Cell { return &Cell{kind: KindFloat64, f: v} }

// Kind returns the cell kind, 0 for a NULL cell.
func (c *Cell) Kind() Kind {
	if c == nil {
		return 0
	}
	return c.kind
}

// IsNull reports whether the cell is SQL NULL.
func (c *Cell) IsNull() bool { return c == nil }

// AsInt64 returns the integer value and whether the cell holds one.
func (c *Cell) AsInt64() (int64, bool) {
	if c.Kind() != KindInt64 {
		return 0, false
	}
	return c.i, true
}

// AsString returns the text value and whether the cell holds one.
func (c *Cell) AsString() (string, bool) {
	if c.Kind() != KindString {
		return "", false
	}
	return c.s, true
}

// AsBool returns the boolean value and whether the cell holds one.
func (c *Cell) AsBool() (bool, bool) {
	if c.Kind() != KindBool {
		return false, false
	}
	return c.b, true
}

// AsFloat64 returns the float value and whether the cell holds one.
func (c *Cell) AsFloat64() (float64, bool) {
	if c.Kind() != KindFloat64 {
		return 0, false
	}
	return c.f, true
}

// Value returns the cell as a plain Go value, nil for NULL.
func (c *Cell) Value() any {
	switch c.Kind() {
	case KindInt64:
		return c.i
	case KindString:
		return c.s
	case KindBool:
		return c.b
	case KindFloat64:
		return c.f
	default:
		return nil
	}
}

// String renders the cell for display. NULL renders as "NULL".
func (c *Cell) String() string {
	switch c.Kind() {
	case KindInt64:
		return strconv.FormatInt(c.i, 10)
	case KindString:
		return c.s
	case KindBool:
		return strconv.FormatBool(c.b)
	case KindFloat64:
		return strconv.FormatFloat(c.f, 'g', -1, 64)
	default:
		return "NULL"
	}
}

// MarshalJSON encodes the cell as its plain value.
func (c *Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Value())
}
