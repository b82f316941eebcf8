package poly

// Add returns the sum of p and q as a new Polynomial.
//
// Operands are aligned by ascending power, so position k in both refers to
// power k; powers beyond an operand's own degree contribute 0. The result
// has degree max(p.Degree(), q.Degree()) even when leading terms cancel:
// effective-degree collapse is deliberately not performed, so the stored
// length always reflects the larger operand.
//
// Add is commutative: p.Add(q) and q.Add(p) produce identical coefficient
// sequences.
func (p Polynomial) Add(q Polynomial) Polynomial {
	sumDegree := p.degree
	if q.degree > sumDegree {
		sumDegree = q.degree
	}

	coeffs := make([]float64, sumDegree+1)
	for k := 0; k <= sumDegree; k++ {
		coeffs[sumDegree-k] = p.Coefficient(k) + q.Coefficient(k)
	}

	return Polynomial{
		degree:       sumDegree,
		coefficients: coeffs,
	}
}
