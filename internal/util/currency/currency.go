// Package currency formats amounts as Brazilian reais.
package currency

import (
	"math"
	"strconv"
	"strings"
)

// FormatBRL renders v as "R$ 1.234,56", rounding half away from zero to
// cents. Negative values are prefixed with "-".
func FormatBRL(v float64) string {
	switch {
	case math.IsNaN(v):
		return "R$ NaN"
	case math.IsInf(v, 1):
		return "R$ ∞"
	case math.IsInf(v, -1):
		return "-R$ ∞"
	}

	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	cents := strconv.FormatFloat(math.Round(v*100), 'f', 0, 64)
	for len(cents) < 3 {
		cents = "0" + cents
	}
	whole, frac := cents[:len(cents)-2], cents[len(cents)-2:]
	return sign + "R$ " + group(whole) + "," + frac
}

// group inserts '.' every three digits from the right.
func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
