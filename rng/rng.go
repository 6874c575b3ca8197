// Package rng provides the random number sources used by the genetic algorithm.
package rng

import (
	"math/rand"
	"time"
)

// Source produces uniformly distributed integers in an inclusive range.
type Source interface {
	// IntRange returns a value in [min, max]. Panics if max < min.
	IntRange(min, max int) int
}

// Rand is a Source backed by a single seeded math/rand generator.
// Not safe for concurrent use.
type Rand struct {
	rng  *rand.Rand
	seed int64
}

// New returns a Source seeded with seed. A zero seed picks a time-based one.
func New(seed int64) *Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Rand{
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the seed the generator was created with.
func (r *Rand) Seed() int64 {
	return r.seed
}

// IntRange returns a uniformly distributed integer in [min, max].
func (r *Rand) IntRange(min, max int) int {
	if max < min {
		panic("rng: IntRange called with max < min")
	}
	return min + r.rng.Intn(max-min+1)
}

// Sequence is a deterministic Source that replays a fixed list of values.
// Each call consumes the next value v (wrapping around at the end) and maps
// it into the requested range as min + v mod (max-min+1).
type Sequence struct {
	values []int
	pos    int
}

// NewSequence returns a Sequence over values. Panics if values is empty.
func NewSequence(values ...int) *Sequence {
	if len(values) == 0 {
		panic("rng: NewSequence requires at least one value")
	}
	vals := make([]int, len(values))
	copy(vals, values)
	return &Sequence{values: vals}
}

// IntRange returns the next value of the sequence mapped into [min, max].
func (s *Sequence) IntRange(min, max int) int {
	if max < min {
		panic("rng: IntRange called with max < min")
	}
	v := s.values[s.pos]
	s.pos = (s.pos + 1) % len(s.values)

	span := max - min + 1
	m := v % span
	if m < 0 {
		m += span
	}
	return min + m
}
