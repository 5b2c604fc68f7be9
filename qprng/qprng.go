// Package qprng defines the pseudo-random source contract used by
// measurement collapse and sampling, mirroring the seeded-or-random
// std::mt19937 pattern from mini-qiskit/common/prng.hpp: either a
// caller-supplied seed for reproducibility, or a process-level source
// when none is given.
package qprng

import "math/rand/v2"

// PRNG is the minimal draw interface the simulator and measurement
// packages need: a uniform float in [0, 1) and a uniform integer draw
// in [0, n).
type PRNG interface {
	Float64() float64
	IntN(n int) int
}

// rngSource adapts math/rand/v2's *rand.Rand to PRNG.
type rngSource struct {
	r *rand.Rand
}

func (s *rngSource) Float64() float64 { return s.r.Float64() }
func (s *rngSource) IntN(n int) int   { return s.r.IntN(n) }

// New returns a PRNG seeded from the process-level entropy source.
func New() PRNG {
	return &rngSource{r: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeeded returns a PRNG deterministically seeded from seed, for
// reproducible simulation runs.
func NewSeeded(seed uint64) PRNG {
	return &rngSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}
