package rng

import "gonum.org/v1/gonum/stat/distuv"

var _ RNG = &BinomialRNG{}

// BinomialRNG generates the number of defectives in samples of n units, the in-control model for
// p and np charts
type BinomialRNG struct {
	d distuv.Binomial
}

func (r *BinomialRNG) Rand() float64 {
	return r.d.Rand()
}

func NewBinomialRNG(n int, p float64, opts ...Option) *BinomialRNG {
	return &BinomialRNG{
		d: distuv.Binomial{N: float64(n), P: p, Src: source(opts)},
	}
}
