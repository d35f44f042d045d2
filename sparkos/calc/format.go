package calc

import (
	"math"
	"strconv"
	"strings"
)

// Precision is the number of decimal places every displayed result is
// rounded to.
const Precision = 10

// Round rounds v to places decimal digits the way a fixed-point formatter
// would, then parses it back so insignificant zeros disappear.
func Round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// FormatNumber renders v for the display, rounded to Precision.
func FormatNumber(v float64) string {
	v = Round(v, Precision)
	if v == 0 {
		// Drops the sign of -0.
		return "0"
	}
	if math.Abs(v) >= 1e21 {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// PiText is π rounded to Precision places with trailing zeros trimmed.
func PiText() string {
	s := strconv.FormatFloat(math.Pi, 'f', Precision, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
