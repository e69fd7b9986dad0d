package stat

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	gstat "gonum.org/v1/gonum/stat"
)

// Limits are the center line and the lower and upper control limits of a chart.  CUSUM has a
// center but no limits; EWMA, three way and time series charts have none of the three.
type Limits struct {
	Center Optional `json:"center"`
	Lower  Optional `json:"lower"`
	Upper  Optional `json:"upper"`
}

// NewLimits returns limits with all three values present
func NewLimits(center, lower, upper float64) Limits {
	return Limits{Center: Some(center), Lower: Some(lower), Upper: Some(upper)}
}

// Zone returns the lines k sigma below and above the center, where the control limits are the
// 3 sigma lines.  Each side is computed from its own limit so asymmetric (clipped) limits give
// asymmetric zones.  A side is absent when the center or its limit is absent.
func (l Limits) Zone(k float64) (Optional, Optional) {
	c, ok := l.Center.Get()
	if !ok {
		return None, None
	}
	lower, upper := None, None
	if lcl, ok := l.Lower.Get(); ok {
		lower = Some(c - (c-lcl)*k/3)
	}
	if ucl, ok := l.Upper.Get(); ok {
		upper = Some(c + (ucl-c)*k/3)
	}
	return lower, upper
}

func (l Limits) String() string {
	return fmt.Sprintf("center=%s lower=%s upper=%s", l.Center, l.Lower, l.Upper)
}

// Calculate computes the limits for chart c from the original (untransformed) data.  Size is
// the subgroup size: the number of observations per subgroup for X-bar, R and S charts and the
// number of inspected units per sample for p, np and u charts.
func Calculate(c Chart, d Data, size int) (Limits, error) {
	if !c.Valid() {
		return Limits{}, fmt.Errorf("%w: %d", ErrUnknownChart, int(c))
	}
	if err := checkShape(c, d); err != nil {
		return Limits{}, err
	}

	switch c {
	case XMRX:
		return individualsX(d.values)
	case XMRMR:
		return individualsMR(d.values)
	case XBarRX, XBarRR:
		return xBarR(c, d.subgroups, size)
	case XBarSX, XBarSS:
		return xBarS(c, d.subgroups, size)
	case P:
		return proportion(d.values, size)
	case NP:
		return numberDefective(d.values, size)
	case C:
		return count(d.values)
	case U:
		return perUnit(d.values, size)
	case CUSUM:
		return Limits{Center: Some(0), Lower: None, Upper: None}, nil
	case EWMA, ThreeWay, TimeSeries:
		return Limits{}, nil
	}
	return Limits{}, fmt.Errorf("%w: %d", ErrUnknownChart, int(c))
}

// meanMovingRange is the average absolute difference of consecutive observations
func meanMovingRange(x []float64) (float64, error) {
	if len(x) < 2 {
		return 0, fmt.Errorf("%w: moving range needs at least 2 observations, got %d", ErrInsufficientData, len(x))
	}
	sum := 0.0
	for i := 0; i < len(x)-1; i++ {
		sum += math.Abs(x[i] - x[i+1])
	}
	return sum / float64(len(x)-1), nil
}

func individualsX(x []float64) (Limits, error) {
	mr, err := meanMovingRange(x)
	if err != nil {
		return Limits{}, err
	}
	center := gstat.Mean(x, nil)
	sd := mr / d2
	return NewLimits(center, center-3*sd, center+3*sd), nil
}

func individualsMR(x []float64) (Limits, error) {
	center, err := meanMovingRange(x)
	if err != nil {
		return Limits{}, err
	}
	return NewLimits(center, 0, center+3*center/d2), nil
}

func xBarR(c Chart, rows [][]float64, n int) (Limits, error) {
	f, err := subgroupFactors(rows, n)
	if err != nil {
		return Limits{}, err
	}
	rbar := gstat.Mean(ranges(rows), nil)
	if c == XBarRR {
		return NewLimits(rbar, f.D3*rbar, f.D4*rbar), nil
	}
	center := grandMean(rows)
	return NewLimits(center, center-f.A2*rbar, center+f.A2*rbar), nil
}

func xBarS(c Chart, rows [][]float64, n int) (Limits, error) {
	f, err := subgroupFactors(rows, n)
	if err != nil {
		return Limits{}, err
	}
	sbar := gstat.Mean(stdDevs(rows), nil)
	if c == XBarSS {
		return NewLimits(sbar, f.B3*sbar, f.B4*sbar), nil
	}
	center := grandMean(rows)
	return NewLimits(center, center-f.A3*sbar, center+f.A3*sbar), nil
}

func subgroupFactors(rows [][]float64, n int) (Factors, error) {
	if err := checkSubgroups(rows, n); err != nil {
		return Factors{}, err
	}
	if len(rows) == 0 {
		return Factors{}, fmt.Errorf("%w: no subgroups", ErrInsufficientData)
	}
	return MustFactors(n), nil
}

// grandMean is the mean of all observations.  Subgroups are validated to be the same size so this
// equals the mean of the subgroup means.
func grandMean(rows [][]float64) float64 {
	sum, k := 0.0, 0
	for _, row := range rows {
		sum += floats.Sum(row)
		k += len(row)
	}
	return sum / float64(k)
}

func checkAttribute(x []float64, n int, needSize bool) error {
	if len(x) == 0 {
		return fmt.Errorf("%w: no samples", ErrInsufficientData)
	}
	if needSize && n <= 1 {
		return fmt.Errorf("%w: attribute charts need a sample size > 1, got %d", ErrSubgroupSize, n)
	}
	return nil
}

func proportion(x []float64, n int) (Limits, error) {
	if err := checkAttribute(x, n, true); err != nil {
		return Limits{}, err
	}
	pbar := floats.Sum(x) / (float64(n) * float64(len(x)))
	sd := math.Sqrt(pbar * (1 - pbar) / float64(n))
	return NewLimits(pbar, math.Max(0, pbar-3*sd), math.Min(1, pbar+3*sd)), nil
}

func numberDefective(x []float64, n int) (Limits, error) {
	if err := checkAttribute(x, n, true); err != nil {
		return Limits{}, err
	}
	size := float64(n)
	pbar := floats.Sum(x) / (size * float64(len(x)))
	sd := math.Sqrt(size * pbar * (1 - pbar))
	center := size * pbar
	return NewLimits(center, math.Max(0, center-3*sd), math.Min(size, center+3*sd)), nil
}

func count(x []float64) (Limits, error) {
	if err := checkAttribute(x, 0, false); err != nil {
		return Limits{}, err
	}
	cbar := gstat.Mean(x, nil)
	sd := math.Sqrt(cbar)
	return NewLimits(cbar, math.Max(0, cbar-3*sd), cbar+3*sd), nil
}

func perUnit(x []float64, n int) (Limits, error) {
	if err := checkAttribute(x, n, true); err != nil {
		return Limits{}, err
	}
	cbar := floats.Sum(x) / (float64(len(x)) * float64(n))
	sd := math.Sqrt(cbar / float64(n))
	return NewLimits(cbar, math.Max(0, cbar-3*sd), cbar+3*sd), nil
}
