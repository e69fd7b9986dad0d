// Package rule detects out-of-control signals in a charted series.  Each rule is a predicate over
// a fixed-size trailing window of points together with the chart's control limits.
package rule

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BTBurke/spc/pkg/stat"
)

// ErrUnknownRule is returned when a rule or rule set name is not recognized
var ErrUnknownRule = errors.New("unknown rule")

// Rule identifies a run rule.  The zero value is not a valid rule.
type Rule int

const (
	Beyond3Sigma Rule = iota + 1
	TwoOfThreeBeyond2Sigma
	FourOfFiveBeyond1Sigma
	SevenOnOneSide
	EightOnOneSide
	NineOnOneSide
	SixTrending
	FourteenUpDown
	FifteenBelow1Sigma
	EightBeyond1SigmaBothSides
)

type definition struct {
	name   string
	slug   string
	window int
	test   predicate
}

var definitions = map[Rule]definition{
	Beyond3Sigma:               {name: "1 beyond 3*sigma", slug: "beyond-3sigma", window: 1, test: beyondLimits},
	TwoOfThreeBeyond2Sigma:     {name: "2 of 3 beyond 2*sigma", slug: "2-of-3", window: 3, test: beyondZone(2, 1)},
	FourOfFiveBeyond1Sigma:     {name: "4 of 5 beyond 1*sigma", slug: "4-of-5", window: 5, test: beyondZone(1, 3)},
	SevenOnOneSide:             {name: "7 on one side", slug: "7-one-side", window: 7, test: oneSide},
	EightOnOneSide:             {name: "8 on one side", slug: "8-one-side", window: 8, test: oneSide},
	NineOnOneSide:              {name: "9 on one side", slug: "9-one-side", window: 9, test: oneSide},
	SixTrending:                {name: "6 trending", slug: "6-trending", window: 6, test: trending},
	FourteenUpDown:             {name: "14 up down", slug: "14-up-down", window: 14, test: upDown},
	FifteenBelow1Sigma:         {name: "15 below 1*sigma", slug: "15-below-1sigma", window: 15, test: within1Sigma},
	EightBeyond1SigmaBothSides: {name: "8 beyond 1*sigma on both sides", slug: "8-beyond-1sigma", window: 8, test: outside1Sigma},
}

// Rules returns every rule in declaration order
func Rules() []Rule {
	out := make([]Rule, 0, len(definitions))
	for r := Beyond3Sigma; r <= EightBeyond1SigmaBothSides; r++ {
		out = append(out, r)
	}
	return out
}

// Window returns the number of trailing points the rule looks at
func (r Rule) Window() int {
	return definitions[r].window
}

// Valid reports whether r is a member of the enumeration
func (r Rule) Valid() bool {
	_, ok := definitions[r]
	return ok
}

func (r Rule) String() string {
	d, ok := definitions[r]
	if !ok {
		return fmt.Sprintf("Rule(%d)", int(r))
	}
	return d.name
}

// Slug returns the command line form of the rule name
func (r Rule) Slug() string {
	return definitions[r].slug
}

// Test applies the rule to a window of exactly Window() points ending at the point under test
func (r Rule) Test(window []float64, limits stat.Limits) bool {
	d, ok := definitions[r]
	if !ok || len(window) != d.window {
		return false
	}
	return d.test(window, limits)
}

// ParseRule returns the rule for either its canonical name or its slug
func ParseRule(name string) (Rule, error) {
	s := strings.TrimSpace(name)
	for r, d := range definitions {
		if s == d.name || strings.EqualFold(s, d.slug) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRule, name)
}

// MarshalText encodes the rule as its canonical name
func (r Rule) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRule, int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText accepts the canonical name or the slug
func (r *Rule) UnmarshalText(b []byte) error {
	parsed, err := ParseRule(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
