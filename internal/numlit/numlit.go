package numlit

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Parse converts a NUMBER lexeme (digits with an optional fractional part) to its value.
func Parse(lit string) (float64, error) {
	if err := validate(lit); err != nil {
		return 0, fmt.Errorf("invalid number literal %q: %w", lit, err)
	}
	// Range errors saturate to ±Inf, which is the value we want.
	v, _ := strconv.ParseFloat(lit, 64)
	return v, nil
}

func validate(lit string) error {
	if lit == "" {
		return fmt.Errorf("empty")
	}
	intPart, frac, hasDot := strings.Cut(lit, ".")
	if intPart == "" {
		return fmt.Errorf("missing integer digits")
	}
	if hasDot && frac == "" {
		return fmt.Errorf("missing fractional digits")
	}
	for _, part := range []string{intPart, frac} {
		for i := 0; i < len(part); i++ {
			if part[i] < '0' || part[i] > '9' {
				return fmt.Errorf("unexpected %q", part[i])
			}
		}
	}
	return nil
}

// Format renders a number the way print shows it: integral values have no
// fraction, very large and very small magnitudes switch to exponent form.
func Format(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}
	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		return trimExponent(strconv.FormatFloat(v, 'e', -1, 64))
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// trimExponent turns "1.5e-07" into "1.5e-7".
func trimExponent(s string) string {
	i := strings.IndexByte(s, 'e')
	if i < 0 || i+2 >= len(s) {
		return s
	}
	mant, sign, digits := s[:i], s[i+1], strings.TrimLeft(s[i+2:], "0")
	if digits == "" {
		digits = "0"
	}
	return mant + "e" + string(sign) + digits
}
