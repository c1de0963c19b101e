package selector

import "math/rand/v2"

// Source yields uniform integers in [0, n). Callers never pass n <= 0.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Default returns a non-deterministic source backed by the runtime's
// global generator.
func Default() Source { return globalSource{} }

// NewSeeded returns a deterministic source. Two sources built from the
// same seed produce the same sequence.
func NewSeeded(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
