package value

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrNotANumber is returned by ParseNumber for text that is not a finite number.
var ErrNotANumber = errors.New("value: not a number")

// FormatNumber returns the canonical text of f: plain decimal notation in the
// usual range and exponent notation for very large or very small magnitudes.
func FormatNumber(f float64) string {
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ParseNumber parses user-entered text into a finite float64.
// Surrounding whitespace is ignored.
func ParseNumber(text string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, ErrNotANumber
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrNotANumber
	}
	return f, nil
}

// approxEpsilon is eight times the float32 machine epsilon.
const approxEpsilon = 8 * 1.1920929e-07

// ApproxEqual reports whether a and b are equal within a relative tolerance
// of 1e-6, with a small absolute floor for values close to zero.
func ApproxEqual(a, b float64) bool {
	tolerance := 1e-6 * math.Max(math.Abs(a), math.Abs(b))
	if tolerance < approxEpsilon {
		tolerance = approxEpsilon
	}
	return math.Abs(b-a) < tolerance
}
