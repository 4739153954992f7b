package extraction

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ValueKind tags which member of a Value is populated
type ValueKind int

const (
	KindInt ValueKind = iota + 1
	KindFloat
	KindString
	KindDate
)

// Value is a normalized field value. Exactly one of Int, Float or Str is
// meaningful, as selected by Kind. Dates are carried in Str as YYYY-MM-DD.
type Value struct {
	Kind  ValueKind
	Int   int
	Float float64
	Str   string
}

// IntValue wraps a count
func IntValue(n int) Value { return Value{Kind: KindInt, Int: n} }

// FloatValue wraps a decimal number
func FloatValue(f float64) Value { return Value{Kind: KindFloat, Float: f} }

// StringValue wraps free text
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// DateValue wraps a date string, ISO formatted when it could be parsed
func DateValue(s string) Value { return Value{Kind: KindDate, Str: s} }

// Number returns the value as float64 for numeric kinds
func (v Value) Number() (float64, bool) {
	switch v.Kind {
	case KindInt:
		return float64(v.Int), true
	case KindFloat:
		return v.Float, true
	default:
		return 0, false
	}
}

// Interface returns the plain Go value (int, float64 or string)
func (v Value) Interface() interface{} {
	switch v.Kind {
	case KindInt:
		return v.Int
	case KindFloat:
		return v.Float
	case KindString, KindDate:
		return v.Str
	default:
		return nil
	}
}

// String renders the value in its canonical form
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.Itoa(v.Int)
	case KindFloat:
		return formatDecimal(v.Float)
	case KindString, KindDate:
		return v.Str
	default:
		return ""
	}
}

// MarshalJSON emits numbers for numeric kinds and strings otherwise. Decimals
// always carry a fractional part so they stay distinguishable from counts.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindInt, KindFloat:
		return []byte(v.String()), nil
	case KindString, KindDate:
		return json.Marshal(v.Str)
	default:
		return nil, fmt.Errorf("cannot marshal value of kind %d", v.Kind)
	}
}

// formatDecimal prints f without exponent or grouping, e.g. 450000 -> "450000.0"
func formatDecimal(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
