package testutil

import (
	"sync"
	"time"
)

// baseTime is the first timestamp every fresh DeterministicClock returns.
var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// DeterministicClock is an engine.TimeSource that returns predictable
// timestamps for tests.
//
// Each call to Now advances a fixed base time by a fixed step, so repeated
// runs of the same scenario stamp sessions identically. Unlike the system
// clock it can be reset for test reuse.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type DeterministicClock struct {
	mu    sync.Mutex
	base  time.Time
	step  time.Duration
	calls int
}

// NewDeterministicClock creates a clock starting at 2025-06-01T12:00:00Z,
// advancing one second per call.
func NewDeterministicClock() *DeterministicClock {
	return &DeterministicClock{
		base: baseTime,
		step: time.Second,
	}
}

// NewDeterministicClockAt creates a clock starting at start, advancing by
// step per call.
func NewDeterministicClockAt(start time.Time, step time.Duration) *DeterministicClock {
	return &DeterministicClock{
		base: start,
		step: step,
	}
}

// Now returns the next timestamp in the sequence.
//
// The first call returns the base time; each subsequent call is one step
// later.
//
// Implements engine.TimeSource.
func (c *DeterministicClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.base.Add(time.Duration(c.calls) * c.step)
	c.calls++
	return t
}

// Reset rewinds the clock to its base time.
//
// After Reset, the next call to Now returns the base time again.
func (c *DeterministicClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = 0
}
