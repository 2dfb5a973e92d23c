package markov

import "math/rand/v2"

// Source supplies the uniform draws used for sampling. Float64 must return a
// value in [0,1). *rand.Rand from math/rand/v2 satisfies it.
//
// A Source is not safe for concurrent use unless its implementation says so.
type Source interface {
	Float64() float64
}

// NewSeededSource returns a deterministic Source: two sources built from the
// same seed yield the same sequence of draws.
func NewSeededSource(seed int64) Source {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
}

// NewRandomSource returns a Source seeded from the runtime's entropy, so
// every call produces a different sequence.
func NewRandomSource() Source {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
