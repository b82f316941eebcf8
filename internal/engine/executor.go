package engine

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/roach88/polyx/internal/worksheet"
	"github.com/roach88/polyx/poly"
)

// Executor runs worksheets and produces session results.
//
// An Executor carries only its identity and time dependencies; all
// per-session state (the working set, the step clock) lives inside Run,
// so a single Executor may run any number of sessions.
type Executor struct {
	ids  SessionIDGenerator
	time TimeSource
}

// ExecutorOption allows configuration of executor dependencies.
type ExecutorOption func(*Executor)

// WithIDGenerator sets the session ID generator.
// Default: UUIDv7Generator.
func WithIDGenerator(g SessionIDGenerator) ExecutorOption {
	return func(e *Executor) {
		e.ids = g
	}
}

// WithTimeSource sets the session timestamp source.
// Default: SystemTime.
func WithTimeSource(ts TimeSource) ExecutorOption {
	return func(e *Executor) {
		e.time = ts
	}
}

// NewExecutor creates an Executor with production defaults: UUIDv7 session
// IDs and the system clock. Options override either dependency, which is
// how tests pin session identity and timestamps.
func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{
		ids:  UUIDv7Generator{},
		time: SystemTime{},
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Run executes every step of the worksheet in declaration order and
// returns the completed session.
//
// The working set starts as the worksheet's declared polynomials; steps
// that save a result extend it, so saved names resolve only in later
// steps. Execution stops at the first failing step with a *RuntimeError
// carrying the step number, or at context cancellation.
//
// Run does not re-validate the worksheet. A structurally invalid
// worksheet surfaces the same conditions as RuntimeErrors at the step
// that hits them.
func (e *Executor) Run(ctx context.Context, ws *worksheet.Worksheet) (*SessionResult, error) {
	session := &SessionResult{
		SessionID:     e.ids.Generate(),
		Worksheet:     ws.Name,
		EngineVersion: Version,
		CreatedAt:     e.time.Now(),
		Steps:         make([]StepResult, 0, len(ws.Steps)),
	}

	slog.Info("session starting",
		"session", session.SessionID,
		"worksheet", ws.Name,
		"steps", len(ws.Steps),
	)

	env := make(map[string]poly.Polynomial, len(ws.Polynomials))
	for name, p := range ws.Polynomials {
		env[name] = p
	}

	clock := NewClock()
	for _, step := range ws.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		seq := int(clock.Next())
		result, err := executeStep(env, step, seq)
		if err != nil {
			slog.Error("step failed",
				"session", session.SessionID,
				"seq", seq,
				"op", step.Op,
				"error", err,
			)
			return nil, err
		}

		session.Steps = append(session.Steps, result)
		slog.Debug("step executed",
			"session", session.SessionID,
			"seq", seq,
			"op", step.Op,
			"operand", step.Poly,
		)
	}

	slog.Info("session complete",
		"session", session.SessionID,
		"steps", len(session.Steps),
	)

	return session, nil
}

// executeStep applies a single step against the working set.
// Mutates env only on a successful save.
func executeStep(env map[string]poly.Polynomial, step worksheet.Step, seq int) (StepResult, error) {
	result := StepResult{
		Seq:     seq,
		Op:      step.Op,
		Operand: step.Poly,
	}

	operand, ok := env[step.Poly]
	if !ok {
		return result, NewUndefinedPolynomialError(seq, step.Poly)
	}
	result.Coefficients = operand.Coefficients()

	switch step.Op {
	case worksheet.OpFormat:
		result.Rendering = operand.String()

	case worksheet.OpEval:
		if step.At == nil {
			return result, NewMissingArgumentError(seq, "at")
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
		return saveResult(env, step, seq, result, derivative)

	case worksheet.OpIntegrate:
		integral := operand.Integrate()
		result.ResultCoefficients = integral.Coefficients()
		result.Rendering = integral.String()
		return saveResult(env, step, seq, result, integral)

	case worksheet.OpAdd:
		if step.With == "" {
			return result, NewMissingArgumentError(seq, "with")
		}
		with, ok := env[step.With]
		if !ok {
			return result, NewUndefinedPolynomialError(seq, step.With)
		}
		sum := operand.Add(with)
		result.With = step.With
		result.WithCoefficients = with.Coefficients()
		result.ResultCoefficients = sum.Coefficients()
		result.Rendering = sum.String()
		return saveResult(env, step, seq, result, sum)

	default:
		return result, NewUnsupportedOpError(seq, step.Op)
	}

	return result, nil
}

// saveResult records the produced polynomial under the step's save name.
// Names are never shadowed: a save that collides with any existing name
// fails the step.
func saveResult(env map[string]poly.Polynomial, step worksheet.Step, seq int, result StepResult, value poly.Polynomial) (StepResult, error) {
	if step.Save == "" {
		return result, nil
	}

	if _, exists := env[step.Save]; exists {
		return result, NewDuplicateNameError(seq, step.Save)
	}

	env[step.Save] = value
	result.SavedAs = step.Save
	return result, nil
}
