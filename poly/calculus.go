package poly

// Differentiate returns the exact derivative as a new Polynomial.
//
// Each term of power degree-i maps to coefficient*(degree-i) one power
// lower; the former constant term drops, so the result has degree-1.
// Differentiating a degree-0 polynomial returns Zero, the same canonical
// value that constructing from an empty sequence yields.
func (p Polynomial) Differentiate() Polynomial {
	if p.degree == 0 || len(p.coefficients) == 0 {
		return Zero()
	}

	coeffs := make([]float64, p.degree)
	for i := 0; i < p.degree; i++ {
		coeffs[i] = p.coefficients[i] * float64(p.degree-i)
	}

	return Polynomial{
		degree:       p.degree - 1,
		coefficients: coeffs,
	}
}

// Integrate returns the indefinite integral as a new Polynomial, with the
// constant of integration fixed at 0.
//
// Each term of power degree-i maps to coefficient/(degree-i+1) one power
// higher, and a fresh 0 constant term is appended, so the result has
// degree+1. The divisor ranges over 1..degree+1 and is never zero.
//
// Integration followed by differentiation recovers the original polynomial
// exactly. The reverse round-trip only holds when the original constant
// term was 0, since differentiation discards it.
func (p Polynomial) Integrate() Polynomial {
	coeffs := make([]float64, 0, len(p.coefficients)+1)
	for i, c := range p.coefficients {
		coeffs = append(coeffs, c/float64(p.degree-i+1))
	}
	coeffs = append(coeffs, 0)

	return Polynomial{
		degree:       len(coeffs) - 1,
		coefficients: coeffs,
	}
}
