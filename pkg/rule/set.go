package rule

import (
	"fmt"
	"strings"
)

// Set is an ordered collection of distinct rules
type Set []Rule

// Basic flags points beyond the limits and runs of 7 on one side
func Basic() Set {
	return Set{Beyond3Sigma, SevenOnOneSide}
}

// PMI flags points beyond the limits and runs of 8 on one side
func PMI() Set {
	return Set{Beyond3Sigma, EightOnOneSide}
}

// WECO are the Western Electric rules
func WECO() Set {
	return Set{
		Beyond3Sigma,
		TwoOfThreeBeyond2Sigma,
		FourOfFiveBeyond1Sigma,
		EightOnOneSide,
		SixTrending,
		FourteenUpDown,
	}
}

// Nelson are the eight Nelson rules
func Nelson() Set {
	return Set{
		Beyond3Sigma,
		NineOnOneSide,
		SixTrending,
		FourteenUpDown,
		TwoOfThreeBeyond2Sigma,
		FourOfFiveBeyond1Sigma,
		FifteenBelow1Sigma,
		EightBeyond1SigmaBothSides,
	}
}

// All contains every rule
func All() Set {
	return Set(Rules())
}

var presets = map[string]func() Set{
	"basic":  Basic,
	"pmi":    PMI,
	"weco":   WECO,
	"nelson": Nelson,
	"all":    All,
}

// NewSet returns a set of the given rules in order with duplicates removed
func NewSet(rules ...Rule) (Set, error) {
	out := make(Set, 0, len(rules))
	for _, r := range rules {
		if !r.Valid() {
			return nil, fmt.Errorf("%w: %d", ErrUnknownRule, int(r))
		}
		if !out.Contains(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

// ParseSet accepts a preset name (basic, pmi, weco, nelson, all) or a comma separated list of
// rule names or slugs
func ParseSet(s string) (Set, error) {
	s = strings.TrimSpace(s)
	if preset, ok := presets[strings.ToLower(s)]; ok {
		return preset(), nil
	}
	var rules []Rule
	for _, name := range strings.Split(s, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		r, err := ParseRule(name)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("%w: empty rule set %q", ErrUnknownRule, s)
	}
	return NewSet(rules...)
}

// Contains reports whether r is in the set
func (s Set) Contains(r Rule) bool {
	for _, x := range s {
		if x == r {
			return true
		}
	}
	return false
}

// Union returns the rules of s followed by the rules of o not already in s
func (s Set) Union(o Set) Set {
	out := append(Set{}, s...)
	for _, r := range o {
		if !out.Contains(r) {
			out = append(out, r)
		}
	}
	return out
}

// MaxWindow is the largest window of any rule in the set
func (s Set) MaxWindow() int {
	w := 0
	for _, r := range s {
		if r.Window() > w {
			w = r.Window()
		}
	}
	return w
}

func (s Set) String() string {
	names := make([]string, len(s))
	for i, r := range s {
		names[i] = r.String()
	}
	return strings.Join(names, ", ")
}
