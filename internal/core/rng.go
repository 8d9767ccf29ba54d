package core

import "time"

// Random is the source of randomness used by level generation and effects.
// *math/rand.Rand satisfies it as well.
type Random interface {
	// Float64 returns a pseudo-random number in [0, 1).
	Float64() float64
}

// RNG is a deterministic pseudo-random number generator (xorshift64).
type RNG struct {
	state uint64
}

// NewRNG creates a new RNG with the given seed.
// A zero seed is replaced with the current time.
func NewRNG(seed int64) *RNG {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	// splitmix64 spreads small seeds across the state space
	s := uint64(seed) + 0x9E3779B97F4A7C15
	s = (s ^ (s >> 30)) * 0xBF58476D1CE4E5B9
	s = (s ^ (s >> 27)) * 0x94D049BB133111EB
	s ^= s >> 31
	if s == 0 {
		s = 88172645463325252
	}
	return &RNG{state: s}
}

// Next returns the next random uint64.
func (r *RNG) Next() uint64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return r.state
}

// Float64 returns a random float64 in [0, 1).
func (r *RNG) Float64() float64 {
	return float64(r.Next()>>11) / float64(1<<53)
}

// Pick returns an index in [0, n) drawn from any Random source.
func Pick(rng Random, n int) int {
	if n <= 0 {
		return 0
	}
	i := int(rng.Float64() * float64(n))
	return Clamp(i, 0, n-1)
}
