package harness

import "github.com/roach88/polyx/internal/engine"

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success.
	// True if every expect clause and assertion matched.
	Pass bool `json:"pass"`

	// Session is the recorded session produced by the engine.
	// Used for trace assertions and golden comparison.
	Session *engine.SessionResult `json:"session"`

	// Errors holds the failure messages; empty when Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a passing result wrapping a recorded session.
func NewResult(session *engine.SessionResult) *Result {
	return &Result{
		Pass:    true,
		Session: session,
		Errors:  []string{},
	}
}

// AddError records a failure message and flips Pass to false.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
