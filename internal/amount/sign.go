package amount

import (
	"math"
	"strings"
)

// Field labels whose amounts are debits from the merchant's point of view.
var debitMarkers = []string{
	"less payment",
	"return",
	"cancel",
	"commission",
	"gst",
	"charge",
	"debit",
}

// Abs returns the magnitude of v, mapping NaN and Inf to 0.
func Abs(v float64) float64 {
	return magnitude(v)
}

// EnsureNegative returns -|v|. Zero stays zero.
func EnsureNegative(v float64) float64 {
	m := magnitude(v)
	if m == 0 {
		return 0
	}
	return -m
}

// IsDebit reports whether a field label carries debit semantics.
func IsDebit(label string) bool {
	l := strings.ToLower(label)
	for _, marker := range debitMarkers {
		if strings.Contains(l, marker) {
			return true
		}
	}
	return false
}

// Signed applies the sign implied by the originating field's label to a
// parsed magnitude.
func Signed(label string, v float64) float64 {
	if IsDebit(label) {
		return EnsureNegative(v)
	}
	return math.Abs(magnitude(v))
}
