package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/polyx/internal/worksheet"
)

// Scenario is one self-contained conformance case.
//
// A scenario declares polynomials and a step sequence inline, runs them
// through the deterministic engine, and validates the recorded session.
type Scenario struct {
	// Name identifies the scenario in reports and golden file names.
	Name string `yaml:"name"`

	// Description states the behavior under test.
	Description string `yaml:"description"`

	// Polynomials maps names to coefficient sequences, highest power first.
	Polynomials map[string][]float64 `yaml:"polynomials"`

	// Steps is the worksheet step sequence with optional expectations.
	Steps []ScenarioStep `yaml:"steps"`

	// Assertions validate the recorded session after execution.
	// Supported types: trace_contains, trace_order, trace_count, saved_polynomial
	Assertions []Assertion `yaml:"assertions"`

	// SessionID optionally fixes the session ID.
	// If empty, Run uses "test-session-0001".
	SessionID string `yaml:"session_id,omitempty"`
}

// ScenarioStep is one worksheet step with an optional expectation.
type ScenarioStep struct {
	// Op is the operation name: format, eval, differentiate, integrate, add.
	Op string `yaml:"op"`

	// Poly names the primary operand.
	Poly string `yaml:"poly"`

	// At is eval's evaluation point.
	At *float64 `yaml:"at,omitempty"`

	// With names add's second operand.
	With string `yaml:"with,omitempty"`

	// Save stores the result under a new name for later steps.
	Save string `yaml:"save,omitempty"`

	// Expect specifies the expected step outcome.
	// If nil, the step runs without validation.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies expected step results.
// Only the fields present are validated.
type ExpectClause struct {
	// Rendering is the expected human-readable outcome. A pointer so the
	// empty rendering of the zero polynomial is expressible.
	Rendering *string `yaml:"rendering,omitempty"`

	// Value is eval's expected numeric result.
	Value *float64 `yaml:"value,omitempty"`

	// Coefficients is the expected result coefficient sequence,
	// highest power first.
	Coefficients []float64 `yaml:"coefficients,omitempty"`
}

// Assertion validates the recorded session.
type Assertion struct {
	// Type selects the check:
	// - "trace_contains": an op was recorded, optionally on a given operand
	// - "trace_order": ops appear in the given relative order
	// - "trace_count": an op was recorded exactly N times
	// - "saved_polynomial": a saved name holds the expected coefficients
	Type string `yaml:"type"`

	// Op is the operation name (used by trace_contains, trace_count).
	Op string `yaml:"op,omitempty"`

	// Operand is the expected primary operand (used by trace_contains;
	// empty matches any operand).
	Operand string `yaml:"operand,omitempty"`

	// Ops is the expected op order (used by trace_order).
	Ops []string `yaml:"ops,omitempty"`

	// Count is the required number of occurrences (used by trace_count).
	Count int `yaml:"count,omitempty"`

	// Name is the saved name to look up (used by saved_polynomial).
	Name string `yaml:"name,omitempty"`

	// Coefficients is the expected coefficient sequence
	// (used by saved_polynomial).
	Coefficients []float64 `yaml:"coefficients,omitempty"`
}

// Assertion type constants.
const (
	AssertTraceContains   = "trace_contains"
	AssertTraceOrder      = "trace_order"
	AssertTraceCount      = "trace_count"
	AssertSavedPolynomial = "saved_polynomial"
)

// LoadScenario decodes and validates a scenario YAML file.
//
// Unknown YAML fields are rejected, so typos in scenario files fail
// loudly instead of silently skipping an expectation.
func LoadScenario(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scenario file: %w", err)
	}
	defer f.Close()

	var scenario Scenario
	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse scenario YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario enforces the required fields before a run starts.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Polynomials) == 0 {
		return fmt.Errorf("at least one polynomial is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("at least one step is required")
	}

	for i, step := range s.Steps {
		if step.Op == "" {
			return fmt.Errorf("steps[%d]: op is required", i)
		}
		if !worksheet.IsSupportedOp(step.Op) {
			return fmt.Errorf("steps[%d]: unsupported op %q", i, step.Op)
		}
		if step.Poly == "" {
			return fmt.Errorf("steps[%d]: poly is required", i)
		}
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("at least one assertion is required")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(assertion); err != nil {
			return fmt.Errorf("assertions[%d]: %w", i, err)
		}
	}

	return nil
}

// validateAssertion checks a single assertion's required fields.
func validateAssertion(a Assertion) error {
	switch a.Type {
	case AssertTraceContains:
		if a.Op == "" {
			return fmt.Errorf("trace_contains requires op")
		}

	case AssertTraceOrder:
		if len(a.Ops) < 2 {
			return fmt.Errorf("trace_order requires at least 2 ops")
		}

	case AssertTraceCount:
		if a.Op == "" {
			return fmt.Errorf("trace_count requires op")
		}
		if a.Count < 0 {
			return fmt.Errorf("trace_count requires a non-negative count")
		}

	case AssertSavedPolynomial:
		if a.Name == "" {
			return fmt.Errorf("saved_polynomial requires name")
		}
		if len(a.Coefficients) == 0 {
			return fmt.Errorf("saved_polynomial requires coefficients")
		}

	case "":
		return fmt.Errorf("type is required")

	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}

	return nil
}
