package worksheet

import (
	"github.com/roach88/polyx/poly"
)

// Step operation names as they appear in worksheet CUE.
const (
	OpFormat        = "format"
	OpEval          = "eval"
	OpDifferentiate = "differentiate"
	OpIntegrate     = "integrate"
	OpAdd           = "add"
)

// SupportedOps lists every step operation in canonical order.
var SupportedOps = []string{OpFormat, OpEval, OpDifferentiate, OpIntegrate, OpAdd}

// IsSupportedOp reports whether op names a known step operation.
func IsSupportedOp(op string) bool {
	switch op {
	case OpFormat, OpEval, OpDifferentiate, OpIntegrate, OpAdd:
		return true
	}
	return false
}

// Worksheet is a parsed worksheet: named polynomials plus an ordered list
// of steps to run against them.
//
// All names (worksheet name, polynomial labels, step references) are NFC
// normalized at the parse boundary, so visually identical names composed
// differently always collide rather than silently coexisting.
type Worksheet struct {
	Name        string
	Description string

	// Polynomials holds the declared polynomials keyed by normalized name.
	// Order holds the declaration order of those names.
	Polynomials map[string]poly.Polynomial
	Order       []string

	Steps []Step
}

// Step is a single operation to run. Op determines which of the optional
// fields apply: At is eval's evaluation point, With is add's second
// operand, and Save names the result of a polynomial-producing op.
type Step struct {
	Op   string
	Poly string
	At   *float64
	With string
	Save string
}
