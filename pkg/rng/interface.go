package rng

import (
	"math/rand/v2"
	"time"
)

// RNG is a random number generator
type RNG interface {
	Rand() float64
}

// Option configures a generator
type Option func(*options)

type options struct {
	seed uint64
}

// WithSeed makes the generator deterministic.  Without it generators are seeded from the clock.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

func source(opts []Option) rand.Source {
	o := &options{seed: uint64(time.Now().UnixNano())}
	for _, opt := range opts {
		opt(o)
	}
	return rand.NewPCG(o.seed, o.seed^0x9e3779b97f4a7c15)
}

// Series draws n values from r
func Series(r RNG, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = r.Rand()
	}
	return out
}

// Subgroups draws count subgroups of size n from r
func Subgroups(r RNG, count int, n int) [][]float64 {
	out := make([][]float64, count)
	for i := range out {
		out[i] = Series(r, n)
	}
	return out
}
