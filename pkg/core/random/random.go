// Package random provides the seeded pseudo-random sequence shared by every
// variant of a batch.
//
// A [Generator] is created once per batch and never reseeded, so variant i+1
// continues the sequence where variant i stopped. Two generators built from
// the same seed yield identical sequences.
package random

import "math/rand/v2"

// Source yields floats in [0, 1).
type Source interface {
	Float64() float64
}

// Generator is a deterministic [Source] backed by a PCG stream.
// It is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
}

// New creates a generator seeded from seed.
func New(seed int64) *Generator {
	s := uint64(seed)
	return &Generator{rng: rand.New(rand.NewPCG(s, s^0xdeadbeef))}
}

// Float64 returns the next value in [0, 1) and advances the sequence.
func (g *Generator) Float64() float64 {
	return g.rng.Float64()
}

// Ranged maps the next sample of next into [lo, hi).
func Ranged(lo, hi float64, next func() float64) float64 {
	return lo + next()*(hi-lo)
}
