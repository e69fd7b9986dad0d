package stat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransform(t *testing.T) {
	raw := Flat(1, 2, 3, 3, 2, 1, 3, 8)
	tt := []struct {
		name  string
		chart Chart
		data  Data
		size  int
		exp   []float64
	}{
		{name: "individuals", chart: XMRX, data: raw, size: 1, exp: []float64{1, 2, 3, 3, 2, 1, 3, 8}},
		{name: "moving range", chart: XMRMR, data: raw, size: 1, exp: []float64{0, 1, 1, 0, 1, 1, 2, 5}},
		{name: "p", chart: P, data: Flat(2, 3, 1), size: 10, exp: []float64{0, 0.2, 0.3, 0.1}},
		{name: "u", chart: U, data: Flat(4, 0), size: 4, exp: []float64{0, 1, 0}},
		{name: "np", chart: NP, data: Flat(2, 3, 1), size: 10, exp: []float64{2, 3, 1}},
		{name: "c", chart: C, data: Flat(7, 9), size: 1, exp: []float64{7, 9}},
		{name: "ewma", chart: EWMA, data: Flat(7, 9), size: 1, exp: []float64{7, 9}},
		{name: "xbar", chart: XBarRX, data: Grouped([]float64{1, 2, 3}, []float64{4, 4, 7}), size: 3, exp: []float64{2, 5}},
		{name: "xbar s", chart: XBarSX, data: Grouped([]float64{1, 2, 3}, []float64{4, 4, 7}), size: 3, exp: []float64{2, 5}},
		{name: "range", chart: XBarRR, data: Grouped([]float64{1, 2, 3}, []float64{4, 4, 7}), size: 3, exp: []float64{2, 3}},
		{name: "sd", chart: XBarSS, data: Grouped([]float64{1, 2, 3}, []float64{4, 4, 7}), size: 3, exp: []float64{1, math.Sqrt(3)}},
		{name: "empty moving range", chart: XMRMR, data: Flat(), size: 1, exp: []float64{}},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Transform(tc.chart, tc.data, tc.size, None)
			require.NoError(t, err)
			assert.InDeltaSlice(t, tc.exp, out, 1e-12)
		})
	}
}

func TestMovingRangeTransform(t *testing.T) {
	raw := []float64{3.5, -1, 4, 4, 10.25, 0}
	out, err := Transform(XMRMR, Flat(raw...), 1, None)
	require.NoError(t, err)
	require.Len(t, out, len(raw))
	assert.Equal(t, 0.0, out[0])
	for i := 1; i < len(raw); i++ {
		assert.Equal(t, math.Abs(raw[i-1]-raw[i]), out[i])
	}
}

func TestCUSUMTransform(t *testing.T) {
	out, err := Transform(CUSUM, Flat(1, 2, 3, 3, 2, 1, 3, 8), 1, None)
	require.NoError(t, err)
	exp := []float64{0, -1.875, -2.75, -2.625, -2.5, -3.375, -5.25, -5.125, 0}
	assert.InDeltaSlice(t, exp, out, 1e-9)

	out, err = Transform(CUSUM, Flat(1, 2, 3), 1, Some(1))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 1, 3}, out)

	out, err = Transform(CUSUM, Flat(), 1, None)
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, out)
}

func TestTransformLength(t *testing.T) {
	for n := 0; n < 12; n++ {
		raw := make([]float64, n)
		for i := range raw {
			raw[i] = float64(i % 3)
		}
		for _, c := range Charts() {
			if c.Grouped() {
				continue
			}
			out, err := Transform(c, Flat(raw...), 5, None)
			require.NoError(t, err)
			switch c {
			case P, U, CUSUM:
				assert.Len(t, out, n+1, c.String())
			default:
				assert.Len(t, out, n, c.String())
			}
		}
	}
}

func TestTransformContract(t *testing.T) {
	_, err := Transform(XBarRX, Grouped([]float64{1, 2}, []float64{1, 2, 3}), 2, None)
	assert.ErrorIs(t, err, ErrSubgroupLength)
	_, err = Transform(XBarSS, Grouped([]float64{1}), 1, None)
	assert.ErrorIs(t, err, ErrSubgroupSize)
	_, err = Transform(XMRX, Grouped([]float64{1, 2}), 2, None)
	assert.ErrorIs(t, err, ErrShape)
	_, err = Transform(P, Flat(1), 0, None)
	assert.ErrorIs(t, err, ErrSubgroupSize)
	_, err = Transform(Chart(42), Flat(1), 1, None)
	assert.ErrorIs(t, err, ErrUnknownChart)
}
