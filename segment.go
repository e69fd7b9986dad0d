package spc

import (
	"fmt"

	"github.com/BTBurke/spc/pkg/stat"
	"golang.org/x/sync/errgroup"
)

// Segment analyzes each part of data between consecutive changepoints as an independent session.
// Boundaries are the exclusive end index of each segment, so the first segment is
// [0, boundaries[0]).  Data after the last boundary is not analyzed.  Options apply to every
// segment, except that extra data is rejected.
func Segment(data stat.Data, chart stat.Chart, boundaries []int, opts ...Option) ([]*Session, error) {
	if s := newSettings(opts); s.extra.Len() > 0 {
		return nil, ErrExtraDataSegmented
	}
	if err := checkBoundaries(boundaries, data.Len()); err != nil {
		return nil, err
	}

	sessions := make([]*Session, len(boundaries))
	var g errgroup.Group
	for i := range boundaries {
		start := 0
		if i > 0 {
			start = boundaries[i-1]
		}
		end := boundaries[i]
		g.Go(func() error {
			s, err := New(data.Slice(start, end), chart, opts...)
			if err != nil {
				return fmt.Errorf("segment [%d, %d): %w", start, end, err)
			}
			sessions[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sessions, nil
}

func checkBoundaries(boundaries []int, n int) error {
	if len(boundaries) == 0 {
		return fmt.Errorf("%w: no changepoints", ErrBoundaries)
	}
	prev := 0
	for _, b := range boundaries {
		if b <= prev || b > n {
			return fmt.Errorf("%w: %v for %d points, must be increasing within (0, %d]", ErrBoundaries, boundaries, n, n)
		}
		prev = b
	}
	return nil
}
