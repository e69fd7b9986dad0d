package rule

import "github.com/BTBurke/spc/pkg/stat"

// predicate reports whether a full window of points violates a rule under the given limits.  A
// predicate that needs a limit (or a zone derived from it) that is absent never fires on that side.
type predicate func(window []float64, limits stat.Limits) bool

func all(w []float64, f func(x float64) bool) bool {
	for _, x := range w {
		if !f(x) {
			return false
		}
	}
	return true
}

func countIf(w []float64, f func(x float64) bool) int {
	n := 0
	for _, x := range w {
		if f(x) {
			n++
		}
	}
	return n
}

// pairs folds over consecutive points (w[i], w[i+1])
func pairs(w []float64, f func(a, b float64) bool) bool {
	for i := 1; i < len(w); i++ {
		if !f(w[i-1], w[i]) {
			return false
		}
	}
	return true
}

// triples folds over consecutive points (w[i], w[i+1], w[i+2])
func triples(w []float64, f func(a, b, c float64) bool) bool {
	for i := 2; i < len(w); i++ {
		if !f(w[i-2], w[i-1], w[i]) {
			return false
		}
	}
	return true
}

func above(o stat.Optional) func(float64) bool {
	v, ok := o.Get()
	return func(x float64) bool { return ok && x > v }
}

func below(o stat.Optional) func(float64) bool {
	v, ok := o.Get()
	return func(x float64) bool { return ok && x < v }
}

func beyondLimits(w []float64, l stat.Limits) bool {
	return above(l.Upper)(w[0]) || below(l.Lower)(w[0])
}

// beyondZone fires when more than atLeast points of the window lie beyond the k sigma line on
// the same side of the center
func beyondZone(k float64, atLeast int) predicate {
	return func(w []float64, l stat.Limits) bool {
		lo, hi := l.Zone(k)
		return countIf(w, above(hi)) > atLeast || countIf(w, below(lo)) > atLeast
	}
}

// oneSide fires when no point lies on the opposite side of the center from the first point off
// it.  A point exactly on the center line does not break the run.
func oneSide(w []float64, l stat.Limits) bool {
	c, ok := l.Center.Get()
	if !ok {
		return false
	}
	side := 0.0
	for _, x := range w {
		switch {
		case side == 0:
			side = x - c
		case (x-c)*side < 0:
			return false
		}
	}
	return true
}

// trending fires on a strictly monotonic window.  The direction is fixed by the first pair and an
// equal first pair never fires.
func trending(w []float64, _ stat.Limits) bool {
	switch {
	case w[1] > w[0]:
		return pairs(w, func(a, b float64) bool { return b > a })
	case w[1] < w[0]:
		return pairs(w, func(a, b float64) bool { return b < a })
	default:
		return false
	}
}

// upDown fires on a strict zig-zag: every move is up or down and each reverses the one before.
func upDown(w []float64, _ stat.Limits) bool {
	return triples(w, func(a, b, c float64) bool {
		return (b-a)*(c-b) < 0
	})
}

// within1Sigma fires when every point lies inside the closed 1 sigma band
func within1Sigma(w []float64, l stat.Limits) bool {
	c, _ := l.Center.Get()
	lo, hi := l.Zone(1)
	if !lo.Valid() || !hi.Valid() {
		return false
	}
	return all(w, func(x float64) bool {
		return !(above(hi)(x) && x > c) && !(below(lo)(x) && x < c)
	})
}

// outside1Sigma fires when every point lies strictly beyond a 1 sigma line
func outside1Sigma(w []float64, l stat.Limits) bool {
	lo, hi := l.Zone(1)
	if !lo.Valid() || !hi.Valid() {
		return false
	}
	return all(w, func(x float64) bool {
		return above(hi)(x) || below(lo)(x)
	})
}
