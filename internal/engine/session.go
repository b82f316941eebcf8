package engine

import "time"

// StepResult records one executed worksheet step: the operation, the
// operands as they were at execution time, and every output the operation
// produced. Field presence depends on Op; absent fields are omitted from
// encoded output.
type StepResult struct {
	// Seq is the 1-based step number within the session.
	Seq int `json:"seq" yaml:"seq"`

	// Op is the operation name.
	Op string `json:"op" yaml:"op"`

	// Operand is the name of the primary operand.
	Operand string `json:"operand" yaml:"operand"`

	// Coefficients is the primary operand's coefficient sequence,
	// highest power first, captured at execution time.
	Coefficients []float64 `json:"coefficients" yaml:"coefficients"`

	// With and WithCoefficients describe add's second operand.
	With             string    `json:"with,omitempty" yaml:"with,omitempty"`
	WithCoefficients []float64 `json:"with_coefficients,omitempty" yaml:"with_coefficients,omitempty"`

	// At is eval's evaluation point.
	At *float64 `json:"at,omitempty" yaml:"at,omitempty"`

	// Value is eval's numeric result.
	Value *float64 `json:"value,omitempty" yaml:"value,omitempty"`

	// Rendering is the human-readable outcome: the operand's canonical
	// form for format, the decimal value for eval, and the result
	// polynomial's canonical form for differentiate, integrate, and add.
	Rendering string `json:"rendering" yaml:"rendering"`

	// ResultCoefficients is the produced polynomial's coefficient
	// sequence for polynomial-producing ops.
	ResultCoefficients []float64 `json:"result_coefficients,omitempty" yaml:"result_coefficients,omitempty"`

	// SavedAs is the name the result was saved under, if any.
	SavedAs string `json:"saved_as,omitempty" yaml:"saved_as,omitempty"`
}

// SessionResult is a completed worksheet execution: session identity plus
// the ordered step results.
type SessionResult struct {
	SessionID     string       `json:"session_id" yaml:"session_id"`
	Worksheet     string       `json:"worksheet" yaml:"worksheet"`
	EngineVersion string       `json:"engine_version" yaml:"engine_version"`
	CreatedAt     time.Time    `json:"created_at" yaml:"created_at"`
	Steps         []StepResult `json:"steps" yaml:"steps"`
}
