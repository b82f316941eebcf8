package testutil

// StaticIDGenerator returns the same session ID on every call.
//
// Unlike engine.FixedGenerator, which hands out a finite sequence of IDs
// and panics when it runs dry, StaticIDGenerator never exhausts. Use it in
// tests that run an unknown number of sessions and only need stable
// identity, such as golden snapshot comparison.
//
// Thread-safety: StaticIDGenerator is stateless and safe for concurrent use.
type StaticIDGenerator struct {
	id string
}

// NewStaticIDGenerator creates a generator that always returns id.
//
// If id is empty, Generate returns "test-session-default".
func NewStaticIDGenerator(id string) *StaticIDGenerator {
	if id == "" {
		id = "test-session-default"
	}
	return &StaticIDGenerator{id: id}
}

// Generate returns the fixed session ID.
//
// Implements engine.SessionIDGenerator.
func (g *StaticIDGenerator) Generate() string {
	return g.id
}
