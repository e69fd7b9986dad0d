package stat

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	gstat "gonum.org/v1/gonum/stat"
)

// Transform converts raw data into the series a chart plots and evaluates rules over.  The
// transformed length depends only on the chart type and the input length:
//
//	identity charts (X, np, c, EWMA, three way, time series)  len(data)
//	X-bar, R, S                                              number of subgroups
//	mR                                                       len(data), index 0 is a 0 sentinel
//	p, u                                                     len(data)+1, index 0 is a 0 sentinel
//	CUSUM                                                    len(data)+1, index 0 is the empty prefix
//
// Target is only used by CUSUM; when absent the sample mean is used.
func Transform(c Chart, d Data, size int, target Optional) ([]float64, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownChart, int(c))
	}
	if err := checkShape(c, d); err != nil {
		return nil, err
	}

	switch c {
	case XBarRX, XBarSX:
		if err := checkSubgroups(d.subgroups, size); err != nil {
			return nil, err
		}
		return means(d.subgroups), nil
	case XBarRR:
		if err := checkSubgroups(d.subgroups, size); err != nil {
			return nil, err
		}
		return ranges(d.subgroups), nil
	case XBarSS:
		if err := checkSubgroups(d.subgroups, size); err != nil {
			return nil, err
		}
		return stdDevs(d.subgroups), nil
	case XMRMR:
		out := make([]float64, len(d.values))
		for i := 1; i < len(d.values); i++ {
			out[i] = math.Abs(d.values[i-1] - d.values[i])
		}
		return out, nil
	case P, U:
		if size < 1 {
			return nil, fmt.Errorf("%w: %s requires a positive subgroup size, got %d", ErrSubgroupSize, c, size)
		}
		out := make([]float64, len(d.values)+1)
		for i, v := range d.values {
			out[i+1] = v / float64(size)
		}
		return out, nil
	case CUSUM:
		return cumulativeDeviation(d.values, target), nil
	default:
		return d.Values(), nil
	}
}

// cumulativeDeviation returns the prefix sums of (x - target), starting with the empty prefix
func cumulativeDeviation(values []float64, target Optional) []float64 {
	out := make([]float64, len(values)+1)
	if len(values) == 0 {
		return out
	}
	t, ok := target.Get()
	if !ok {
		t = gstat.Mean(values, nil)
	}
	dev := make([]float64, len(values))
	for i, v := range values {
		dev[i] = v - t
	}
	floats.CumSum(out[1:], dev)
	return out
}

func checkShape(c Chart, d Data) error {
	if d.Len() == 0 {
		return nil
	}
	if c.Grouped() != d.IsGrouped() {
		if c.Grouped() {
			return fmt.Errorf("%w: %s requires subgroups", ErrShape, c)
		}
		return fmt.Errorf("%w: %s requires individual values", ErrShape, c)
	}
	return nil
}

// checkSubgroups validates the subgroup size against the factor table and every subgroup length
// against the size
func checkSubgroups(rows [][]float64, size int) error {
	if _, err := FactorsFor(size); err != nil {
		return err
	}
	for i, row := range rows {
		if len(row) != size {
			return fmt.Errorf("%w: subgroup %d has %d observations, expected %d", ErrSubgroupLength, i, len(row), size)
		}
	}
	return nil
}

func means(rows [][]float64) []float64 {
	out := make([]float64, len(rows))
	for i, row := range rows {
		out[i] = gstat.Mean(row, nil)
	}
	return out
}

func ranges(rows [][]float64) []float64 {
	out := make([]float64, len(rows))
	for i, row := range rows {
		out[i] = floats.Max(row) - floats.Min(row)
	}
	return out
}

// stdDevs returns the sample (n-1) standard deviation of every subgroup
func stdDevs(rows [][]float64) []float64 {
	out := make([]float64, len(rows))
	for i, row := range rows {
		out[i] = gstat.StdDev(row, nil)
	}
	return out
}
