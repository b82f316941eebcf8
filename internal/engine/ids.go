package engine

import (
	"sync"

	"github.com/google/uuid"
)

// SessionIDGenerator mints unique session identifiers. Production uses
// UUIDv7Generator; tests substitute FixedGenerator or testutil's static
// generator.
type SessionIDGenerator interface {
	Generate() string
}

// UUIDv7Generator mints UUIDv7 session identifiers.
//
// The v7 layout leads with a timestamp, so ledger listings sorted by ID
// come out in creation order. Stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate returns a fresh hyphenated UUIDv7 string. Panics only if the
// platform entropy source fails.
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator hands out a predetermined sequence of session IDs so
// tests and goldens see exact values. Mutex-guarded for concurrent use.
type FixedGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedGenerator creates a generator that returns IDs in order.
//
// Example:
//
//	gen := NewFixedGenerator("session-1", "session-2")
//	gen.Generate() // "session-1"
//	gen.Generate() // "session-2"
//	gen.Generate() // panic: all ids exhausted
func NewFixedGenerator(ids ...string) *FixedGenerator {
	return &FixedGenerator{
		ids: ids,
		idx: 0,
	}
}

// Generate returns the next predetermined ID. Running past the end of
// the list panics, which surfaces a test that started more sessions
// than it declared.
func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.ids) {
		panic("FixedGenerator: all ids exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}
