package poly

import (
	"math"
	"strconv"
)

// Polynomial is a single-variable polynomial with float64 coefficients.
//
// The coefficient slice runs from the highest power down to the constant
// term, so index i holds the coefficient of power degree-i. A constructed
// value always satisfies len(coefficients) == degree+1.
//
// Polynomial values are immutable after construction. Use New, MustNew, or
// Zero to create one; Differentiate, Integrate, and Add derive new values.
type Polynomial struct {
	degree       int
	coefficients []float64
}

// New builds a Polynomial from coefficients listed highest power first.
//
// Every coefficient must be a finite real number: NaN and ±Inf fail with
// *InvalidArgumentError rather than being carried silently into later
// arithmetic. The input slice is copied.
//
// An empty coefficient sequence yields the canonical zero polynomial of
// degree 0 (same as Zero).
func New(coefficients ...float64) (Polynomial, error) {
	if len(coefficients) == 0 {
		return Zero(), nil
	}

	for i, c := range coefficients {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return Polynomial{}, &InvalidArgumentError{
				Index:   i,
				Value:   strconv.FormatFloat(c, 'g', -1, 64),
				Message: "coefficient must be a finite real number",
			}
		}
	}

	coeffs := make([]float64, len(coefficients))
	copy(coeffs, coefficients)

	return Polynomial{
		degree:       len(coeffs) - 1,
		coefficients: coeffs,
	}, nil
}

// MustNew is like New but panics on error.
// Intended for fixtures and literals with known-good coefficients.
func MustNew(coefficients ...float64) Polynomial {
	p, err := New(coefficients...)
	if err != nil {
		panic(err)
	}
	return p
}

// Zero returns the canonical zero polynomial: degree 0, single coefficient 0.
func Zero() Polynomial {
	return Polynomial{
		degree:       0,
		coefficients: []float64{0},
	}
}

// Degree returns the highest power carried by the polynomial.
// Leading zero coefficients still count toward the degree; Add never
// collapses them.
func (p Polynomial) Degree() int {
	return p.degree
}

// Coefficients returns a copy of the coefficient sequence, highest power
// first.
func (p Polynomial) Coefficients() []float64 {
	coeffs := make([]float64, len(p.coefficients))
	copy(coeffs, p.coefficients)
	return coeffs
}

// Coefficient returns the coefficient of the given power.
// Powers outside 0..Degree() return 0.
func (p Polynomial) Coefficient(power int) float64 {
	if power < 0 || power > p.degree {
		return 0
	}
	i := p.degree - power
	if i >= len(p.coefficients) {
		return 0
	}
	return p.coefficients[i]
}

// IsZero reports whether every coefficient is zero.
func (p Polynomial) IsZero() bool {
	for _, c := range p.coefficients {
		if c != 0 {
			return false
		}
	}
	return true
}

// Equal reports whether q has the same degree and an identical coefficient
// sequence. Polynomials of different degree are never equal, even when the
// extra leading coefficients are zero.
func (p Polynomial) Equal(q Polynomial) bool {
	if p.degree != q.degree || len(p.coefficients) != len(q.coefficients) {
		return false
	}
	for i := range p.coefficients {
		if p.coefficients[i] != q.coefficients[i] {
			return false
		}
	}
	return true
}

// Evaluate computes the value of the polynomial at x by direct summation:
// the coefficient of each power times x raised to that power.
//
// Evaluate is total. Any real x is valid, and non-finite intermediate or
// final results (overflow to Inf, NaN) propagate per standard float64
// semantics. math.Pow(x, 0) is 1 for every x, including 0.
func (p Polynomial) Evaluate(x float64) float64 {
	var sum float64
	for i, c := range p.coefficients {
		sum += c * math.Pow(x, float64(p.degree-i))
	}
	return sum
}
