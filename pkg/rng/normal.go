package rng

import "gonum.org/v1/gonum/stat/distuv"

var _ RNG = &NormalRNG{}

// NormalRNG generates normally distributed numbers, the in-control model for variables charts
type NormalRNG struct {
	d distuv.Normal
}

func (r *NormalRNG) Rand() float64 {
	return r.d.Rand()
}

func NewNormalRNG(mean float64, stdev float64, opts ...Option) *NormalRNG {
	return &NormalRNG{
		d: distuv.Normal{Mu: mean, Sigma: stdev, Src: source(opts)},
	}
}
