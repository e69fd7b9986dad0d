package stat

import (
	"fmt"
	"strings"
)

// Chart is a control chart family.  The zero value is not a valid chart.
type Chart int

const (
	XBarRX Chart = iota + 1
	XBarRR
	XBarSX
	XBarSS
	XMRX
	XMRMR
	P
	NP
	C
	U
	EWMA
	CUSUM
	ThreeWay
	TimeSeries
)

var chartNames = map[Chart][2]string{
	XBarRX:     {"x_bar R - X", "xbar-r-x"},
	XBarRR:     {"x_bar R - R", "xbar-r-r"},
	XBarSX:     {"x_bar S - X", "xbar-s-x"},
	XBarSS:     {"x_bar S - S", "xbar-s-s"},
	XMRX:       {"X mR - X", "x-mr-x"},
	XMRMR:      {"X mR - mR", "x-mr-mr"},
	P:          {"p", "p"},
	NP:         {"np", "np"},
	C:          {"c", "c"},
	U:          {"u", "u"},
	EWMA:       {"EWMA", "ewma"},
	CUSUM:      {"CUSUM", "cusum"},
	ThreeWay:   {"three way", "three-way"},
	TimeSeries: {"time series", "time-series"},
}

// Charts lists every supported chart in declaration order
func Charts() []Chart {
	out := make([]Chart, 0, len(chartNames))
	for c := XBarRX; c <= TimeSeries; c++ {
		out = append(out, c)
	}
	return out
}

// String returns the canonical chart name, e.g. "X mR - X"
func (c Chart) String() string {
	n, ok := chartNames[c]
	if !ok {
		return fmt.Sprintf("Chart(%d)", int(c))
	}
	return n[0]
}

// Slug returns the command line form of the chart name, e.g. "x-mr-x"
func (c Chart) Slug() string {
	n, ok := chartNames[c]
	if !ok {
		return ""
	}
	return n[1]
}

// Valid reports whether c is a member of the enumeration
func (c Chart) Valid() bool {
	_, ok := chartNames[c]
	return ok
}

// Grouped reports whether the chart is computed from subgroups rather than individual values
func (c Chart) Grouped() bool {
	switch c {
	case XBarRX, XBarRR, XBarSX, XBarSS:
		return true
	default:
		return false
	}
}

// HasLimits reports whether the chart computes control limits.  EWMA, three way and time series
// charts are recognized but compute none.
func (c Chart) HasLimits() bool {
	switch c {
	case EWMA, ThreeWay, TimeSeries:
		return false
	default:
		return c.Valid()
	}
}

// ParseChart returns the chart for either its canonical name or its slug
func ParseChart(name string) (Chart, error) {
	s := strings.TrimSpace(name)
	for c, n := range chartNames {
		if s == n[0] || strings.EqualFold(s, n[1]) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownChart, name)
}

// MarshalText encodes the chart as its slug
func (c Chart) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownChart, int(c))
	}
	return []byte(c.Slug()), nil
}

// UnmarshalText accepts either the canonical name or the slug
func (c *Chart) UnmarshalText(b []byte) error {
	parsed, err := ParseChart(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
