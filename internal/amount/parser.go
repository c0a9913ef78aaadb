// Package amount turns loosely-typed amount fields into non-negative
// magnitudes and formats them for display.
package amount

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Remove common currency markers and thousand separators before parsing.
var currencyReplacer = strings.NewReplacer(
	"₹", "",
	"$", "",
	"Rs.", "",
	"Rs", "",
	"INR", "",
	",", "",
	"\u00a0", "",
	" ", "",
)

// Parse returns the magnitude of v. Numbers, numeric strings, json.Number
// and decimals are accepted; anything else, including nil, NaN and values
// that fail to parse, yields 0. The sign is always discarded.
func Parse(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		return magnitude(x)
	case float32:
		return magnitude(float64(x))
	case int:
		return magnitude(float64(x))
	case int8:
		return magnitude(float64(x))
	case int16:
		return magnitude(float64(x))
	case int32:
		return magnitude(float64(x))
	case int64:
		return magnitude(float64(x))
	case uint:
		return float64(x)
	case uint8:
		return float64(x)
	case uint16:
		return float64(x)
	case uint32:
		return float64(x)
	case uint64:
		return float64(x)
	case json.Number:
		return ParseString(string(x))
	case string:
		return ParseString(x)
	case decimal.Decimal:
		f, _ := x.Abs().Float64()
		return magnitude(f)
	default:
		return 0
	}
}

// ParseString parses a textual amount such as "₹1,23,456.50" or "(120)".
func ParseString(s string) float64 {
	d, ok := ParseDecimal(s)
	if !ok {
		return 0
	}
	f, _ := d.Abs().Float64()
	return magnitude(f)
}

// ParseDecimal parses a textual amount keeping its sign. Accounting
// parentheses denote a negative value.
func ParseDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = s[1 : len(s)-1]
		negative = true
	}

	s = currencyReplacer.Replace(s)
	if s == "" {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if negative {
		d = d.Neg()
	}
	return d, true
}

// ParseCount parses v as a non-negative whole count. Counts that do not fit
// an int degrade to zero.
func ParseCount(v any) int {
	f := math.Round(Parse(v))
	if f >= float64(math.MaxInt) {
		return 0
	}
	return int(f)
}

func magnitude(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return math.Abs(f)
}
