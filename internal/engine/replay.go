// # Replay and Determinism
//
// Replay in polyx is STRUCTURAL, not a special "replay mode". The same
// Run code path handles both initial execution and re-execution; the only
// degrees of freedom are session identity and timestamp, which is why
// Verify compares steps and nothing else.
//
// Two mechanisms make re-execution reproducible:
//
// 1. Sequential numbering
//
//	seq := clock.Next()
//
// Steps are numbered 1..n in declaration order. Stored steps sort back
// into execution order (ORDER BY seq), so a recorded session and a fresh
// run line up step for step.
//
// 2. Pure operations
//
// Every polynomial operation is a pure function of its operands. The same
// worksheet therefore produces bit-identical coefficients, renderings,
// and values on every run, which Verify checks with Float64bits equality.

package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/roach88/polyx/internal/worksheet"
	"github.com/roach88/polyx/poly"
)

// Reexecute recomputes every step of a recorded session from its
// recorded inputs. The result carries the recorded session's identity
// and timestamp, so Verify compares only the computed fields.
//
// Reexecution does not rebuild the working set the original run used:
// each recorded step already carries its resolved operand coefficients,
// which is what makes sessions verifiable without the source worksheet.
func Reexecute(recorded *SessionResult) (*SessionResult, error) {
	replayed := &SessionResult{
		SessionID:     recorded.SessionID,
		Worksheet:     recorded.Worksheet,
		EngineVersion: Version,
		CreatedAt:     recorded.CreatedAt,
		Steps:         make([]StepResult, 0, len(recorded.Steps)),
	}

	for _, step := range recorded.Steps {
		result, err := reexecuteStep(step)
		if err != nil {
			return nil, err
		}
		replayed.Steps = append(replayed.Steps, result)
	}

	return replayed, nil
}

// reexecuteStep recomputes one step from its recorded inputs. The save
// name is carried over unchanged: it is a binding, not a computation.
func reexecuteStep(step StepResult) (StepResult, error) {
	result := StepResult{
		Seq:     step.Seq,
		Op:      step.Op,
		Operand: step.Operand,
	}

	operand, err := poly.New(step.Coefficients...)
	if err != nil {
		return result, fmt.Errorf("step %d: operand: %w", step.Seq, err)
	}
	result.Coefficients = operand.Coefficients()

	switch step.Op {
	case worksheet.OpFormat:
		result.Rendering = operand.String()

	case worksheet.OpEval:
		if step.At == nil {
			return result, NewMissingArgumentError(step.Seq, "at")
		}
		at := *step.At
		value := operand.Evaluate(at)
		result.At = &at
		result.Value = &value
		result.Rendering = strconv.FormatFloat(value, 'g', -1, 64)

	case worksheet.OpDifferentiate:
		derivative := operand.Differentiate()
		result.ResultCoefficients = derivative.Coefficients()
		result.Rendering = derivative.String()
		result.SavedAs = step.SavedAs

	case worksheet.OpIntegrate:
		integral := operand.Integrate()
		result.ResultCoefficients = integral.Coefficients()
		result.Rendering = integral.String()
		result.SavedAs = step.SavedAs

	case worksheet.OpAdd:
		with, err := poly.New(step.WithCoefficients...)
		if err != nil {
			return result, fmt.Errorf("step %d: with operand: %w", step.Seq, err)
		}
		sum := operand.Add(with)
		result.With = step.With
		result.WithCoefficients = with.Coefficients()
		result.ResultCoefficients = sum.Coefficients()
		result.Rendering = sum.String()
		result.SavedAs = step.SavedAs

	default:
		return result, NewUnsupportedOpError(step.Seq, step.Op)
	}

	return result, nil
}

// Mismatch describes one field that differed between a recorded step and
// its re-execution.
type Mismatch struct {
	// Seq is the step number, or 0 for session-level mismatches.
	Seq int `json:"seq,omitempty" yaml:"seq,omitempty"`

	// Field names what differed.
	Field string `json:"field" yaml:"field"`

	// Recorded and Replayed are display renderings of the two values.
	Recorded string `json:"recorded" yaml:"recorded"`
	Replayed string `json:"replayed" yaml:"replayed"`
}

// VerifyResult reports the outcome of a determinism check between a
// recorded session and its re-execution.
type VerifyResult struct {
	SessionID  string     `json:"session_id" yaml:"session_id"`
	Worksheet  string     `json:"worksheet" yaml:"worksheet"`
	StepCount  int        `json:"step_count" yaml:"step_count"`
	Match      bool       `json:"match" yaml:"match"`
	Mismatches []Mismatch `json:"mismatches,omitempty" yaml:"mismatches,omitempty"`
}

// Verify compares a recorded session against a re-execution of the same
// worksheet and reports every step field that differs.
//
// Session identity and timestamp are expected to differ and are not
// compared. Floats are compared by bit pattern, so NaN values that came
// out of the same computation verify as equal.
func Verify(recorded, replayed *SessionResult) *VerifyResult {
	result := &VerifyResult{
		SessionID: recorded.SessionID,
		Worksheet: recorded.Worksheet,
		StepCount: len(recorded.Steps),
		Match:     true,
	}

	if recorded.EngineVersion != replayed.EngineVersion {
		result.Mismatches = append(result.Mismatches, Mismatch{
			Field:    "engine_version",
			Recorded: recorded.EngineVersion,
			Replayed: replayed.EngineVersion,
		})
	}

	if len(recorded.Steps) != len(replayed.Steps) {
		result.Match = false
		result.Mismatches = append(result.Mismatches, Mismatch{
			Field:    "step_count",
			Recorded: strconv.Itoa(len(recorded.Steps)),
			Replayed: strconv.Itoa(len(replayed.Steps)),
		})
		return result
	}

	for i := range recorded.Steps {
		result.Mismatches = append(result.Mismatches, compareSteps(recorded.Steps[i], replayed.Steps[i])...)
	}

	if len(result.Mismatches) > 0 {
		result.Match = false
	}

	return result
}

// compareSteps reports every field that differs between two step results.
func compareSteps(recorded, replayed StepResult) []Mismatch {
	var out []Mismatch
	add := func(field, rec, rep string) {
		out = append(out, Mismatch{
			Seq:      recorded.Seq,
			Field:    field,
			Recorded: rec,
			Replayed: rep,
		})
	}

	if recorded.Seq != replayed.Seq {
		add("seq", strconv.Itoa(recorded.Seq), strconv.Itoa(replayed.Seq))
	}
	if recorded.Op != replayed.Op {
		add("op", recorded.Op, replayed.Op)
	}
	if recorded.Operand != replayed.Operand {
		add("operand", recorded.Operand, replayed.Operand)
	}
	if !sameFloats(recorded.Coefficients, replayed.Coefficients) {
		add("coefficients", formatFloats(recorded.Coefficients), formatFloats(replayed.Coefficients))
	}
	if recorded.With != replayed.With {
		add("with", recorded.With, replayed.With)
	}
	if !sameFloats(recorded.WithCoefficients, replayed.WithCoefficients) {
		add("with_coefficients", formatFloats(recorded.WithCoefficients), formatFloats(replayed.WithCoefficients))
	}
	if !sameFloatPtr(recorded.At, replayed.At) {
		add("at", formatFloatPtr(recorded.At), formatFloatPtr(replayed.At))
	}
	if !sameFloatPtr(recorded.Value, replayed.Value) {
		add("value", formatFloatPtr(recorded.Value), formatFloatPtr(replayed.Value))
	}
	if recorded.Rendering != replayed.Rendering {
		add("rendering", recorded.Rendering, replayed.Rendering)
	}
	if !sameFloats(recorded.ResultCoefficients, replayed.ResultCoefficients) {
		add("result_coefficients", formatFloats(recorded.ResultCoefficients), formatFloats(replayed.ResultCoefficients))
	}
	if recorded.SavedAs != replayed.SavedAs {
		add("saved_as", recorded.SavedAs, replayed.SavedAs)
	}

	return out
}

// sameFloat compares by bit pattern: NaN equals NaN, and -0 is distinct
// from +0.
func sameFloat(a, b float64) bool {
	return math.Float64bits(a) == math.Float64bits(b)
}

func sameFloats(a, b []float64) bool {
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

func sameFloatPtr(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return sameFloat(*a, *b)
}

func formatFloats(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatFloatPtr(v *float64) string {
	if v == nil {
		return "<unset>"
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}
