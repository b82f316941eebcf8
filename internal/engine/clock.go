package engine

import (
	"sync/atomic"
	"time"
)

// Clock numbers the steps of a session.
//
// Seq values are strictly increasing from 1, independent of wall time,
// so the same worksheet always yields the same numbering and stored
// steps sort back into execution order.
//
// Safe for concurrent use; the executor happens to call Next from a
// single goroutine.
type Clock struct {
	seq atomic.Int64
}

// NewClock returns a clock whose first Next() is 1.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt returns a clock that resumes numbering after start.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next increments the clock and returns the new sequence number.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current reads the latest sequence number without advancing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}

// TimeSource supplies the wall-clock timestamp recorded with each session.
//
// Sessions carry a creation time for bookkeeping only; nothing about
// execution order or replay depends on it. Implemented by SystemTime
// (production) and testutil's deterministic clock (tests).
type TimeSource interface {
	Now() time.Time
}

// SystemTime reads the system wall clock in UTC.
type SystemTime struct{}

// Now returns the current UTC time.
func (SystemTime) Now() time.Time {
	return time.Now().UTC()
}
