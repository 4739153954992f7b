package extraction

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// dateLayouts are tried in order; the first that parses wins
var dateLayouts = []string{
	"2006-1-2",
	"1/2/2006",
	"2/1/2006",
	"2006/1/2",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 January 2006",
}

const isoDateLayout = "2006-01-02"

// Normalize converts a raw payload into a typed Value according to vt. Only
// numeric types can fail, with a *NumericParseError.
func Normalize(field FieldName, vt ValueType, raw string) (Value, error) {
	switch vt {
	case ValueTypeCurrency, ValueTypeDecimal:
		f, err := ParseAmount(raw)
		if err != nil {
			return Value{}, &NumericParseError{Field: field, Raw: raw, Err: err}
		}
		return FloatValue(f), nil
	case ValueTypeLotDecimal:
		f, err := ParseLotSize(raw)
		if err != nil {
			return Value{}, &NumericParseError{Field: field, Raw: raw, Err: err}
		}
		return FloatValue(f), nil
	case ValueTypeCount:
		return IntValue(ParseCount(raw)), nil
	case ValueTypeDate:
		return DateValue(NormalizeDate(raw)), nil
	default:
		return StringValue(strings.TrimSpace(raw)), nil
	}
}

// ParseAmount parses a price or area written with either US or European
// separators: "450,000", "2,480.50", "450.000,50", "2480,50", "1.250.000".
func ParseAmount(raw string) (float64, error) {
	clean := keepNumeric(raw)
	hasDot := strings.Contains(clean, ".")
	hasComma := strings.Contains(clean, ",")

	switch {
	case hasDot && hasComma:
		// The right-most separator is the decimal point.
		if strings.LastIndex(clean, ",") > strings.LastIndex(clean, ".") {
			clean = strings.ReplaceAll(clean, ".", "")
			clean = strings.Replace(clean, ",", ".", 1)
		} else {
			clean = strings.ReplaceAll(clean, ",", "")
		}
	case hasComma:
		if isThousandsGrouped(clean, ",") {
			clean = strings.ReplaceAll(clean, ",", "")
		} else {
			clean = strings.Replace(clean, ",", ".", 1)
		}
	case hasDot:
		if strings.Count(clean, ".") > 1 && isThousandsGrouped(clean, ".") {
			clean = strings.ReplaceAll(clean, ".", "")
		}
	}

	return parseFinite(clean)
}

// ParseLotSize parses a lot size, where a comma is always a decimal separator
func ParseLotSize(raw string) (float64, error) {
	clean := strings.ReplaceAll(keepNumeric(raw), ",", ".")
	return parseFinite(clean)
}

// ParseCount keeps only digits. An empty result yields 0, the sentinel for
// "present but unreadable".
func ParseCount(raw string) int {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return 0
	}

	n := 0
	for _, r := range digits {
		if n > (math.MaxInt32-9)/10 {
			// Absurd counts saturate instead of overflowing.
			return math.MaxInt32
		}
		n = n*10 + int(r-'0')
	}
	return n
}

// NormalizeDate re-emits a recognised date as YYYY-MM-DD. Unrecognised input
// is returned trimmed but otherwise unchanged.
func NormalizeDate(raw string) string {
	s := strings.TrimSpace(raw)
	candidate := strings.TrimRight(s, ".;")
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, candidate); err == nil {
			return t.Format(isoDateLayout)
		}
	}
	return s
}

// keepNumeric strips everything except digits, '.' and ',' and drops
// separators dangling at either end ("450,000." -> "450,000").
func keepNumeric(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), ".,")
}

// isThousandsGrouped reports whether every group after the first is exactly
// three digits long, e.g. "2,480" or "1.250.000".
func isThousandsGrouped(s, sep string) bool {
	parts := strings.Split(s, sep)
	if len(parts) < 2 || parts[0] == "" {
		return false
	}
	for _, p := range parts[1:] {
		if len(p) != 3 {
			return false
		}
	}
	return true
}

var errNoDigits = errors.New("no digits")

// parseFinite parses a plain decimal string and rejects non-finite results
func parseFinite(s string) (float64, error) {
	if strings.IndexFunc(s, func(r rune) bool { return r >= '0' && r <= '9' }) < 0 {
		return 0, errNoDigits
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	f, _ := d.Float64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, errors.New("not finite")
	}
	return f, nil
}
