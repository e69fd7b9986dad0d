package rule

import (
	"sort"

	"github.com/BTBurke/spc/pkg/stat"
)

// Violations maps each rule that fired to the ascending indices of the points it flagged.  Rules
// that never fired are not present.
type Violations map[Rule][]int

// Evaluate applies every rule in the set to each point of the series.  Index i is tested against
// the window series[i-W+1 : i+1], so a rule with window W never flags an index below W-1.  A series
// without a center line has nothing to test against and yields no violations.
func Evaluate(series []float64, limits stat.Limits, set Set) Violations {
	out := make(Violations)
	if !limits.Center.Valid() {
		return out
	}
	for _, r := range set {
		w := r.Window()
		if w == 0 {
			continue
		}
		for i := w - 1; i < len(series); i++ {
			if r.Test(series[i-w+1:i+1], limits) {
				out[r] = append(out[r], i)
			}
		}
	}
	return out
}

// Rules returns the rules that fired in declaration order
func (v Violations) Rules() []Rule {
	out := make([]Rule, 0, len(v))
	for r := range v {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// At returns the rules that flagged index i in declaration order
func (v Violations) At(i int) []Rule {
	var out []Rule
	for _, r := range v.Rules() {
		idx := v[r]
		k := sort.SearchInts(idx, i)
		if k < len(idx) && idx[k] == i {
			out = append(out, r)
		}
	}
	return out
}

// Indices returns the distinct flagged indices across all rules in ascending order
func (v Violations) Indices() []int {
	seen := make(map[int]struct{})
	var out []int
	for _, idx := range v {
		for _, i := range idx {
			if _, ok := seen[i]; !ok {
				seen[i] = struct{}{}
				out = append(out, i)
			}
		}
	}
	sort.Ints(out)
	return out
}

// Count returns the total number of (rule, index) flags
func (v Violations) Count() int {
	n := 0
	for _, idx := range v {
		n += len(idx)
	}
	return n
}

// Offset returns a copy with every index shifted by n, used to place a segment's violations on
// the axis of the full series
func (v Violations) Offset(n int) Violations {
	out := make(Violations, len(v))
	for r, idx := range v {
		shifted := make([]int, len(idx))
		for i, x := range idx {
			shifted[i] = x + n
		}
		out[r] = shifted
	}
	return out
}
