// Package harness provides conformance testing for polynomial worksheets.
//
// The harness builds worksheets from scenario definitions, executes them
// through the deterministic engine, and validates the recorded sessions
// as executable contract tests.
//
// # Scenario Format
//
// A scenario is a single YAML file:
//
//	name: cubic-drill
//	description: "Derivative of the reference cubic"
//	polynomials:
//	  p: [1, -8, 12, 3]
//	  q: [5]
//	steps:
//	  - op: eval
//	    poly: p
//	    at: 4
//	    expect:
//	      value: -13
//	  - op: differentiate
//	    poly: p
//	    save: dp
//	    expect:
//	      coefficients: [3, -16, 12]
//	assertions:
//	  - type: trace_contains
//	    op: eval
//	    operand: p
//	  - type: saved_polynomial
//	    name: dp
//	    coefficients: [3, -16, 12]
//
// # Assertion Types
//
//   - trace_contains: an op was recorded, optionally on a named operand
//   - trace_order: ops appear in the trace in the given relative order
//   - trace_count: an op was recorded exactly N times
//   - saved_polynomial: a saved name holds the expected coefficients
//
// Steps may also carry inline expect clauses (rendering, value,
// coefficients) checked against that step's own result.
//
// # Deterministic Testing
//
// Every run uses a fixed session ID (scenario.session_id, defaulting to
// "test-session-0001") and testutil.DeterministicClock timestamps, so
// reruns produce byte-identical sessions and golden snapshots compare
// cleanly.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/cubic.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
