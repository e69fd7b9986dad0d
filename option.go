package spc

import (
	"github.com/BTBurke/spc/pkg/rule"
	"github.com/BTBurke/spc/pkg/stat"
)

// Option customizes how a session is built
type Option func(s *settings)

type settings struct {
	rules  rule.Set
	limits *stat.Limits
	extra  stat.Data
	size   int
	target stat.Optional
}

func newSettings(opts []Option) settings {
	s := settings{rules: rule.Basic(), target: stat.None}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithRules sets the rules evaluated over the series.  The default is rule.Basic().
func WithRules(set rule.Set) Option {
	return func(s *settings) {
		s.rules = set
	}
}

// WithLimits replaces the calculated limits with the caller's own
func WithLimits(l stat.Limits) Option {
	return func(s *settings) {
		s.limits = &l
	}
}

// WithExtraData appends observations that are plotted and evaluated against limits calculated
// without them
func WithExtraData(d stat.Data) Option {
	return func(s *settings) {
		s.extra = d
	}
}

// WithSubgroupSize sets the number of observations per subgroup, or the number of inspected units
// per sample for attribute charts
func WithSubgroupSize(n int) Option {
	return func(s *settings) {
		s.size = n
	}
}

// WithTarget sets the CUSUM target.  Without it the sample mean is used.
func WithTarget(t float64) Option {
	return func(s *settings) {
		s.target = stat.Some(t)
	}
}
