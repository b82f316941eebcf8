// Package engine executes worksheets as recorded sessions.
//
// The executor is the heart of polyx - it walks a worksheet's steps in
// declaration order, applies each operation to the working set of named
// polynomials, and produces a session: an ordered list of step results
// suitable for display, storage, and replay.
//
// ARCHITECTURE:
//
// Sequential Step Loop:
// A session runs in a single goroutine, one step at a time. This ensures:
// - Predictable name resolution order (a saved name exists only for later steps)
// - Reproducible step results on replay
// - Simple reasoning about which step produced which value
//
// Execution Flow:
// 1. Run() stamps a fresh session (ID from the generator, timestamp from the
//    time source) and seeds the working set with the declared polynomials.
// 2. Each step is numbered from a monotonic clock starting at 1.
// 3. executeStep() resolves operands, applies the operation, and appends a
//    StepResult carrying the inputs and outputs as they were at that moment.
// 4. Polynomial-producing steps may save their result under a new name,
//    extending the working set for subsequent steps.
//
// The executor is designed for determinism, not throughput. Given the same
// worksheet, two runs differ only in session identity and timestamp; every
// step result is identical bit for bit. Verify() checks exactly that.
//
// Errors during execution are typed RuntimeErrors with a stable code and
// the offending step number, so callers can branch without string matching.
package engine
