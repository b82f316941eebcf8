package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/roach88/polyx/internal/engine"
)

// createTestStore creates a new on-disk store in a temp dir for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestSession builds a session with the given ID and steps.
func createTestSession(id string, steps ...engine.StepResult) engine.SessionResult {
	return engine.SessionResult{
		SessionID:     id,
		Worksheet:     "cubic-drill",
		EngineVersion: "0.1.0",
		CreatedAt:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Steps:         steps,
	}
}

// formatStep builds a format step for the cubic x³ - 8x² + 12x + 3.
func formatStep(seq int) engine.StepResult {
	return engine.StepResult{
		Seq:          seq,
		Op:           "format",
		Operand:      "p",
		Coefficients: []float64{1, -8, 12, 3},
		Rendering:    "x³ - 8x² + 12x + 3",
	}
}

// evalStep builds an eval step for the cubic at x = 4.
func evalStep(seq int) engine.StepResult {
	at := 4.0
	value := -13.0
	return engine.StepResult{
		Seq:          seq,
		Op:           "eval",
		Operand:      "p",
		Coefficients: []float64{1, -8, 12, 3},
		At:           &at,
		Value:        &value,
		Rendering:    "-13",
	}
}

// differentiateStep builds a differentiate step that saves its result.
func differentiateStep(seq int) engine.StepResult {
	return engine.StepResult{
		Seq:                seq,
		Op:                 "differentiate",
		Operand:            "p",
		Coefficients:       []float64{1, -8, 12, 3},
		Rendering:          "3x² - 16x + 12",
		ResultCoefficients: []float64{3, -16, 12},
		SavedAs:            "dp",
	}
}

// addStep builds an add step combining the cubic with a constant.
func addStep(seq int) engine.StepResult {
	return engine.StepResult{
		Seq:                seq,
		Op:                 "add",
		Operand:            "p",
		Coefficients:       []float64{1, -8, 12, 3},
		With:               "q",
		WithCoefficients:   []float64{5},
		Rendering:          "x³ - 8x² + 12x + 8",
		ResultCoefficients: []float64{1, -8, 12, 8},
		SavedAs:            "s",
	}
}
