// Package poly provides single-variable polynomials with real coefficients.
//
// This package is the foundational layer: every other package in polyx
// imports poly; poly imports nothing internal. It covers construction,
// canonical formatting, point evaluation, exact differentiation and
// integration, and addition.
//
// Key design constraints:
//   - Coefficients are stored highest power first: index i holds the
//     coefficient of power degree-i, and len(coefficients) == degree+1.
//   - Polynomial values are immutable. Every operation returns a new value
//     and accessors return copies, so values may be shared across
//     goroutines without locking.
//   - All operations except construction are total. Non-finite evaluation
//     results (Inf, NaN) propagate per ordinary float64 semantics.
//   - The empty coefficient sequence maps to the canonical zero polynomial
//     of degree 0, and so does the derivative of any constant.
package poly
