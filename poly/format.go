package poly

import (
	"math"
	"strconv"
	"strings"
)

// superscriptDigits maps each decimal digit to its Unicode superscript
// character. Fixed, read-only, never mutated at runtime.
var superscriptDigits = [10]rune{'⁰', '¹', '²', '³', '⁴', '⁵', '⁶', '⁷', '⁸', '⁹'}

// String renders the canonical human-readable form of the polynomial,
// iterating terms from the highest power down to the constant.
//
// Per term at power p with coefficient c:
//   - c == 0 skips the term entirely.
//   - The exponent renders as Unicode superscript digits; p == 1 renders a
//     bare x, and p == 0 emits no x at all.
//   - Negative terms join with " - ", positive terms with " + "; the first
//     emitted term suppresses a leading "+" and attaches a leading "-"
//     directly ("-x³", not "- x³").
//   - The magnitude abs(c) is suppressed when it is 1 and p != 0; at p == 0
//     it always prints.
//
// A polynomial whose coefficients are all zero renders as the empty string;
// no explicit "0" term is emitted.
func (p Polynomial) String() string {
	var b strings.Builder
	first := true

	for i, c := range p.coefficients {
		if c == 0 {
			continue
		}
		power := p.degree - i

		if first {
			if c < 0 {
				b.WriteByte('-')
			}
			first = false
		} else if c < 0 {
			b.WriteString(" - ")
		} else {
			b.WriteString(" + ")
		}

		magnitude := math.Abs(c)
		if power == 0 || magnitude != 1 {
			b.WriteString(formatCoefficient(magnitude))
		}

		switch {
		case power == 0:
			// constant term: no variable
		case power == 1:
			b.WriteByte('x')
		default:
			b.WriteByte('x')
			b.WriteString(superscript(power))
		}
	}

	return b.String()
}

// superscript renders a positive power as superscript digit characters,
// one per decimal digit (12 becomes "¹²").
func superscript(power int) string {
	digits := strconv.Itoa(power)
	var b strings.Builder
	for _, d := range digits {
		b.WriteRune(superscriptDigits[d-'0'])
	}
	return b.String()
}

// formatCoefficient renders a coefficient magnitude as the shortest decimal
// string that round-trips: 12 rather than 12.000000, 0.5, 1.25.
func formatCoefficient(c float64) string {
	return strconv.FormatFloat(c, 'g', -1, 64)
}
