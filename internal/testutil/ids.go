package testutil

// FixedIDGenerator returns the same identifier every time.
//
// Feed loads normally get a fresh version 7 uuid; tests inject this generator to
// make load ids predictable.
//
// Thread-safety: FixedIDGenerator is stateless and safe for concurrent use.
type FixedIDGenerator struct {
	id string
}

// NewFixedIDGenerator creates a generator that always returns id.
// If id is empty, Generate() returns "00000000-0000-0000-0000-000000000001".
func NewFixedIDGenerator(id string) *FixedIDGenerator {
	if id == "" {
		id = "00000000-0000-0000-0000-000000000001"
	}
	return &FixedIDGenerator{id: id}
}

// Generate returns the fixed id.
func (g *FixedIDGenerator) Generate() string {
	return g.id
}
