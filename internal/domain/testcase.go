package domain

// TestCase is one entry of the shared test list. Inputs keep their
// insertion order; Output is whatever the client-side runner compares
// against. The coordinator stores and relays these, it never runs them.
type TestCase struct {
	Inputs      []any  `json:"inputs"`
	Output      any    `json:"output"`
	Description string `json:"description,omitempty"`
}
