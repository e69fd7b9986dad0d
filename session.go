// Package spc builds statistical process control charts.  A Session calculates the control
// limits of a series for one chart type and records which points violate the configured run
// rules.  Segment splits a series at changepoints and analyzes each part on its own.
package spc

import (
	"fmt"

	"github.com/BTBurke/spc/pkg/rule"
	"github.com/BTBurke/spc/pkg/stat"
)

// Session is one analyzed chart.  It is immutable once built.
type Session struct {
	chart      stat.Chart
	size       int
	limits     stat.Limits
	rules      rule.Set
	series     []float64
	violations rule.Violations
	points     int
	extra      int
}

// New calculates limits for data on the given chart and evaluates the rules over the charted
// series.  Limits are computed from data alone, while the series also covers any extra data.
// The subgroup size defaults to the length of the first subgroup, or 1 for flat data.
func New(data stat.Data, chart stat.Chart, opts ...Option) (*Session, error) {
	if !chart.Valid() {
		return nil, fmt.Errorf("%w: %d", stat.ErrUnknownChart, int(chart))
	}
	s := newSettings(opts)

	rules, err := rule.NewSet(s.rules...)
	if err != nil {
		return nil, err
	}

	size := s.size
	if size == 0 {
		size = data.Arity()
	}

	var limits stat.Limits
	switch {
	case s.limits != nil && !chart.HasLimits():
		return nil, fmt.Errorf("%w: %s", ErrLimitsUnsupported, chart)
	case s.limits != nil:
		limits = *s.limits
	default:
		limits, err = stat.Calculate(chart, data, size)
		if err != nil {
			return nil, fmt.Errorf("%s limits: %w", chart, err)
		}
	}

	all, err := data.Append(s.extra)
	if err != nil {
		return nil, fmt.Errorf("extra data: %w", err)
	}
	series, err := stat.Transform(chart, all, size, s.target)
	if err != nil {
		return nil, fmt.Errorf("%s series: %w", chart, err)
	}

	return &Session{
		chart:      chart,
		size:       size,
		limits:     limits,
		rules:      rules,
		series:     series,
		violations: rule.Evaluate(series, limits, rules),
		points:     data.Len(),
		extra:      s.extra.Len(),
	}, nil
}

func (s *Session) Chart() stat.Chart {
	return s.chart
}

// SubgroupSize is the resolved subgroup size the limits were calculated with
func (s *Session) SubgroupSize() int {
	return s.size
}

func (s *Session) Limits() stat.Limits {
	return s.limits
}

func (s *Session) Rules() rule.Set {
	return append(rule.Set(nil), s.rules...)
}

// Series returns a copy of the transformed series the rules were evaluated over
func (s *Session) Series() []float64 {
	return append([]float64(nil), s.series...)
}

// Violations returns a copy of the rule violations keyed by rule
func (s *Session) Violations() rule.Violations {
	return s.violations.Offset(0)
}

// Len is the length of the transformed series
func (s *Session) Len() int {
	return len(s.series)
}

// Points is the number of observations (or subgroups) the limits were calculated from
func (s *Session) Points() int {
	return s.points
}

// Extra is the number of observations (or subgroups) appended after the limits were calculated
func (s *Session) Extra() int {
	return s.extra
}
