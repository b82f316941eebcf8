package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/polyx/internal/engine"
)

// SessionSnapshot captures the recorded session for golden comparison.
//
// The session's creation time is deliberately excluded: goldens pin the
// trace, not the bookkeeping timestamp.
type SessionSnapshot struct {
	ScenarioName string              `json:"scenario_name"`
	SessionID    string              `json:"session_id"`
	Worksheet    string              `json:"worksheet"`
	Steps        []engine.StepResult `json:"steps"`
}

// RunWithGolden executes a scenario and compares the recorded session
// against a golden file stored in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails. Test failure (via goldie)
// occurs if the session doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares the given result's session against a golden file.
// Useful when a scenario has already been run and its result should be
// compared without re-running.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	snapshot := SessionSnapshot{
		ScenarioName: scenarioName,
		SessionID:    result.Session.SessionID,
		Worksheet:    result.Session.Worksheet,
		Steps:        result.Session.Steps,
	}

	sessionJSON, err := json.MarshalIndent(&snapshot, "", "  ")
	if err != nil {
		return err
	}
	sessionJSON = append(sessionJSON, '\n')

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, sessionJSON)

	return nil
}
