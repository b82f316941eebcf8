package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/roach88/polyx/internal/engine"
	"github.com/roach88/polyx/internal/testutil"
	"github.com/roach88/polyx/internal/worksheet"
	"github.com/roach88/polyx/poly"
)

// defaultSessionID is used when a scenario does not fix its own session ID.
const defaultSessionID = "test-session-0001"

// Harness executes a scenario with pinned session identity and time.
type Harness struct {
	executor *engine.Executor
	logger   *slog.Logger
}

// Run builds a worksheet from the scenario, executes it with a
// deterministic engine, and checks expects and assertions.
//
// Each scenario runs through a fresh executor with a fixed session ID and
// a deterministic time source, so repeated runs produce identical
// sessions.
//
// Execution flow:
// 1. Build a worksheet from the scenario definition
// 2. Validate the worksheet
// 3. Execute it through the engine
// 4. Check per-step expect clauses
// 5. Evaluate assertions against the recorded session
func Run(scenario *Scenario) (*Result, error) {
	ws, err := buildWorksheet(scenario)
	if err != nil {
		return nil, err
	}

	if verrs := worksheet.Validate(ws); len(verrs) > 0 {
		return nil, fmt.Errorf("invalid worksheet: %s", verrs[0].Error())
	}

	sessionID := scenario.SessionID
	if sessionID == "" {
		sessionID = defaultSessionID
	}

	h := &Harness{
		executor: engine.NewExecutor(
			engine.WithIDGenerator(testutil.NewStaticIDGenerator(sessionID)),
			engine.WithTimeSource(testutil.NewDeterministicClock()),
		),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}

	session, err := h.executor.Run(context.Background(), ws)
	if err != nil {
		return nil, fmt.Errorf("failed to execute worksheet: %w", err)
	}

	result := NewResult(session)
	h.checkExpectations(scenario, result)

	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(errMsg)
	}

	return result, nil
}

// buildWorksheet converts a scenario definition into an executable
// worksheet. Polynomial names are declared in sorted order so repeated
// runs are identical.
func buildWorksheet(scenario *Scenario) (*worksheet.Worksheet, error) {
	ws := &worksheet.Worksheet{
		Name:        scenario.Name,
		Description: scenario.Description,
		Polynomials: make(map[string]poly.Polynomial, len(scenario.Polynomials)),
	}

	names := make([]string, 0, len(scenario.Polynomials))
	for name := range scenario.Polynomials {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		p, err := poly.New(scenario.Polynomials[name]...)
		if err != nil {
			return nil, fmt.Errorf("polynomial %q: %w", name, err)
		}
		ws.Polynomials[name] = p
		ws.Order = append(ws.Order, name)
	}

	for _, step := range scenario.Steps {
		ws.Steps = append(ws.Steps, worksheet.Step{
			Op:   step.Op,
			Poly: step.Poly,
			At:   step.At,
			With: step.With,
			Save: step.Save,
		})
	}

	return ws, nil
}

// checkExpectations validates each step's expect clause against the
// recorded session. Steps line up by position: scenario step i produced
// session step i.
func (h *Harness) checkExpectations(scenario *Scenario, result *Result) {
	steps := result.Session.Steps

	for i, step := range scenario.Steps {
		if step.Expect == nil {
			continue
		}

		if i >= len(steps) {
			result.AddError(fmt.Sprintf("steps[%d]: no recorded result", i))
			continue
		}
		recorded := steps[i]

		if step.Expect.Rendering != nil && recorded.Rendering != *step.Expect.Rendering {
			result.AddError(fmt.Sprintf("steps[%d] %s %s: rendering = %q, want %q",
				i, recorded.Op, recorded.Operand, recorded.Rendering, *step.Expect.Rendering))
		}

		if step.Expect.Value != nil {
			switch {
			case recorded.Value == nil:
				result.AddError(fmt.Sprintf("steps[%d] %s %s: no value recorded, want %v",
					i, recorded.Op, recorded.Operand, *step.Expect.Value))
			case !sameFloat(*recorded.Value, *step.Expect.Value):
				result.AddError(fmt.Sprintf("steps[%d] %s %s: value = %v, want %v",
					i, recorded.Op, recorded.Operand, *recorded.Value, *step.Expect.Value))
			}
		}

		if step.Expect.Coefficients != nil && !sameCoefficients(recorded.ResultCoefficients, step.Expect.Coefficients) {
			result.AddError(fmt.Sprintf("steps[%d] %s %s: coefficients = %v, want %v",
				i, recorded.Op, recorded.Operand, recorded.ResultCoefficients, step.Expect.Coefficients))
		}

		h.logger.Info("step validated", "step", i, "op", step.Op, "poly", step.Poly)
	}
}
