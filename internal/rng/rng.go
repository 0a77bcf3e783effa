// Package rng provides the deterministic random stream used to deal
// upgrade cards. The generator is a small LCG so that a saved seed
// replays the exact same card rack after load.
package rng

import (
	"math"
	"math/rand"
)

const (
	modulus    = 0x80000000
	multiplier = 1103515245
	increment  = 12345
)

// Stream is a seeded linear congruential generator. The zero value is
// not usable, construct with New.
type Stream struct {
	state float64
}

// New returns a stream seeded with seed. Fractional seeds are valid and
// common: reroll seeds are derived from a state hash in [0, 1). A zero
// seed falls back to a random one.
func New(seed float64) *Stream {
	if seed == 0 {
		seed = math.Floor(rand.Float64() * (modulus - 1))
	}
	return &Stream{state: seed}
}

// Float returns the next value in [0, 1).
func (s *Stream) Float() float64 {
	s.state = math.Mod(multiplier*s.state+increment, modulus)
	return s.state / (modulus - 1)
}

// Pick returns a random index in [0, n).
func (s *Stream) Pick(n int) int {
	return int(math.Floor(s.Float() * float64(n)))
}

// Hash folds a string into a value in [0, 1]. The fold is the classic
// h = h*31 + c running sum truncated to 32 bits, written here in its
// shift-and-subtract form.
func Hash(s string) float64 {
	var h int32
	for i := 0; i < len(s); i++ {
		h = (h << 5) - h + int32(s[i])
	}
	return math.Abs(float64(h)) / 2147483647
}
