package harness

import (
	"fmt"
	"math"
	"strings"

	"github.com/roach88/polyx/internal/engine"
)

// AssertionError reports one failed assertion with enough context to
// read the divergence without rerunning the scenario.
// It includes the recorded steps to help debug the failure.
type AssertionError struct {
	Type     string              // Assertion type for categorization
	Expected string              // Human-readable expected outcome
	Actual   string              // Human-readable actual outcome
	Steps    []engine.StepResult // Recorded steps for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nRecorded steps:\n")
	for _, step := range e.Steps {
		fmt.Fprintf(&buf, "  [%d] %s %s -> %q\n", step.Seq, step.Op, step.Operand, step.Rendering)
	}

	return buf.String()
}

// EvaluateAssertions runs every assertion against the recorded session
// and collects the failure messages; an empty slice means all passed.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	steps := result.Session.Steps
	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertTraceContains:
			err = assertTraceContains(steps, assertion)
		case AssertTraceOrder:
			err = assertTraceOrder(steps, assertion)
		case AssertTraceCount:
			err = assertTraceCount(steps, assertion)
		case AssertSavedPolynomial:
			err = assertSavedPolynomial(steps, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}

// assertTraceContains checks if the session recorded a step matching the
// specified op (and operand, when given).
func assertTraceContains(steps []engine.StepResult, assertion Assertion) error {
	for _, step := range steps {
		if step.Op != assertion.Op {
			continue
		}
		if assertion.Operand != "" && step.Operand != assertion.Operand {
			continue
		}
		return nil
	}

	expected := fmt.Sprintf("op %s", assertion.Op)
	if assertion.Operand != "" {
		expected = fmt.Sprintf("op %s on %s", assertion.Op, assertion.Operand)
	}

	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: expected,
		Actual:   "not found in session",
		Steps:    steps,
	}
}

// assertTraceOrder checks if ops appear in the specified order.
// Ops don't need to be consecutive (intervening steps are allowed).
func assertTraceOrder(steps []engine.StepResult, assertion Assertion) error {
	positions := make(map[string]int)

	for i, step := range steps {
		for _, expectedOp := range assertion.Ops {
			if step.Op == expectedOp && positions[expectedOp] == 0 {
				positions[expectedOp] = i + 1 // 1-indexed for readability
			}
		}
	}

	for _, op := range assertion.Ops {
		if positions[op] == 0 {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("all ops present: %v", assertion.Ops),
				Actual:   fmt.Sprintf("missing op: %s", op),
				Steps:    steps,
			}
		}
	}

	for i := 1; i < len(assertion.Ops); i++ {
		prev := assertion.Ops[i-1]
		curr := assertion.Ops[i]

		if positions[prev] >= positions[curr] {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("ops in order: %v", assertion.Ops),
				Actual: fmt.Sprintf("%s (pos %d) should be before %s (pos %d)",
					prev, positions[prev], curr, positions[curr]),
				Steps: steps,
			}
		}
	}

	return nil
}

// assertTraceCount checks if the op was recorded exactly the specified
// number of times.
func assertTraceCount(steps []engine.StepResult, assertion Assertion) error {
	count := 0
	for _, step := range steps {
		if step.Op == assertion.Op {
			count++
		}
	}

	if count != assertion.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("op %s recorded %d time(s)", assertion.Op, assertion.Count),
			Actual:   fmt.Sprintf("recorded %d time(s)", count),
			Steps:    steps,
		}
	}

	return nil
}

// assertSavedPolynomial checks that the most recent save under the given
// name produced the expected coefficients.
func assertSavedPolynomial(steps []engine.StepResult, assertion Assertion) error {
	for i := len(steps) - 1; i >= 0; i-- {
		step := steps[i]
		if step.SavedAs != assertion.Name {
			continue
		}

		if sameCoefficients(step.ResultCoefficients, assertion.Coefficients) {
			return nil
		}

		return &AssertionError{
			Type:     AssertSavedPolynomial,
			Expected: fmt.Sprintf("%s = %v", assertion.Name, assertion.Coefficients),
			Actual:   fmt.Sprintf("%s = %v", assertion.Name, step.ResultCoefficients),
			Steps:    steps,
		}
	}

	return &AssertionError{
		Type:     AssertSavedPolynomial,
		Expected: fmt.Sprintf("a step saving %q", assertion.Name),
		Actual:   "no step saved that name",
		Steps:    steps,
	}
}

// sameFloat compares floats by bit pattern so NaN matches NaN.
func sameFloat(a, b float64) bool {
	return math.Float64bits(a) == math.Float64bits(b)
}

// sameCoefficients compares coefficient sequences element-wise by bit
// pattern.
func sameCoefficients(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !sameFloat(a[i], b[i]) {
			return false
		}
	}
	return true
}
