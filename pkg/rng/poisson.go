package rng

import "gonum.org/v1/gonum/stat/distuv"

var _ RNG = &PoissonRNG{}

// PoissonRNG generates Poisson distributed counts, the in-control model for c and u charts
type PoissonRNG struct {
	d distuv.Poisson
}

func (r *PoissonRNG) Rand() float64 {
	return r.d.Rand()
}

func NewPoissonRNG(lambda float64, opts ...Option) *PoissonRNG {
	return &PoissonRNG{
		d: distuv.Poisson{Lambda: lambda, Src: source(opts)},
	}
}
