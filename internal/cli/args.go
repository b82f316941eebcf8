package cli

import (
	"strconv"
	"strings"

	"github.com/roach88/polyx/poly"
)

// parsePolynomial converts command-line tokens into a polynomial.
// Tokens are coefficients ordered highest power first.
//
// A token that parses but is not finite ("NaN", "Inf") passes ParseFloat
// and is rejected by construction, so both failure modes surface as
// *poly.InvalidArgumentError with the offending position.
func parsePolynomial(tokens []string) (poly.Polynomial, error) {
	coeffs, err := parseCoefficients(tokens)
	if err != nil {
		return poly.Polynomial{}, err
	}
	return poly.New(coeffs...)
}

// parseCoefficients parses each token with strconv.ParseFloat.
func parseCoefficients(tokens []string) ([]float64, error) {
	coeffs := make([]float64, len(tokens))
	for i, token := range tokens {
		v, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return nil, &poly.InvalidArgumentError{
				Index:   i,
				Value:   token,
				Message: "not a number",
			}
		}
		coeffs[i] = v
	}
	return coeffs, nil
}

// parseCoefficientList parses a comma-separated coefficient list, the
// form taken by flag values such as --with. Whitespace around entries
// is ignored.
func parseCoefficientList(list string) ([]float64, error) {
	parts := strings.Split(list, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parseCoefficients(parts)
}
