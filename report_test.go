package spc

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/BTBurke/spc/pkg/stat"
	"github.com/go-logfmt/logfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioReport(t *testing.T) *Report {
	s, err := New(scenario, stat.XMRX)
	require.NoError(t, err)
	r, err := NewReport("line 2", []*Session{s}, nil)
	require.NoError(t, err)
	return r
}

func TestNewReport(t *testing.T) {
	r := scenarioReport(t)
	require.Len(t, r.Segments, 1)
	seg := r.Segments[0]
	assert.Equal(t, 0, seg.Start)
	assert.Equal(t, 8, seg.End)
	assert.Equal(t, 8, seg.Summary.N)
	assert.InDelta(t, 2.875, seg.Summary.Mean.Or(0), 1e-9)
	assert.InDelta(t, 2.5, seg.Summary.Median.Or(0), 1e-9)
	assert.Equal(t, stat.Some(1), seg.Summary.Min)
	assert.Equal(t, stat.Some(8), seg.Summary.Max)
	assert.True(t, seg.Summary.StdDev.Valid())
	assert.Equal(t, 1, r.Violations())
}

func TestNewReportInputRange(t *testing.T) {
	tt := []struct {
		name  string
		data  stat.Data
		chart stat.Chart
		opts  []Option
		end   int
	}{
		{name: "p chart", data: stat.Flat(2, 3, 1, 4, 2), chart: stat.P, opts: []Option{WithSubgroupSize(10)}, end: 5},
		{name: "cusum", data: scenario, chart: stat.CUSUM, end: 8},
		{name: "extra data", data: scenario, chart: stat.XMRX, opts: []Option{WithExtraData(stat.Flat(2, 20))}, end: 8},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			s, err := New(tc.data, tc.chart, tc.opts...)
			require.NoError(t, err)
			assert.Equal(t, tc.end, s.Points())

			r, err := NewReport("", []*Session{s}, nil)
			require.NoError(t, err)
			assert.Equal(t, 0, r.Segments[0].Start)
			assert.Equal(t, tc.end, r.Segments[0].End)
			assert.Equal(t, s.Len(), r.Segments[0].Summary.N)
		})
	}
}

func TestNewReportSegments(t *testing.T) {
	x := twentyPoints()
	sessions, err := Segment(stat.Flat(x...), stat.XMRX, []int{10, 18})
	require.NoError(t, err)

	r, err := NewReport("", sessions, []int{10, 18})
	require.NoError(t, err)
	assert.Equal(t, 10, r.Segments[1].Start)
	assert.Equal(t, 18, r.Segments[1].End)
	assert.Equal(t, 1, r.Segments[1].Segment)

	_, err = NewReport("", sessions, []int{10})
	assert.ErrorIs(t, err, ErrBoundaries)
	_, err = NewReport("", nil, nil)
	assert.Error(t, err)
}

func TestSummaryShort(t *testing.T) {
	s := summarize([]float64{4})
	assert.Equal(t, 1, s.N)
	assert.Equal(t, stat.Some(4), s.Mean)
	assert.False(t, s.StdDev.Valid())

	empty := summarize(nil)
	assert.False(t, empty.Mean.Valid())
}

func TestJSONReporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSONReporter{}.Write(&buf, scenarioReport(t)))

	var out struct {
		Title    string   `json:"title"`
		Chart    string   `json:"chart"`
		Rules    []string `json:"rules"`
		Segments []struct {
			Limits struct {
				Center *float64 `json:"center"`
			} `json:"limits"`
			Violations map[string][]int `json:"violations"`
		} `json:"segments"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "line 2", out.Title)
	assert.Equal(t, "X mR - X", out.Chart)
	assert.Equal(t, []string{"1 beyond 3*sigma", "7 on one side"}, out.Rules)
	require.Len(t, out.Segments, 1)
	assert.InDelta(t, 2.875, *out.Segments[0].Limits.Center, 1e-9)
	assert.Equal(t, map[string][]int{"1 beyond 3*sigma": {7}}, out.Segments[0].Violations)
}

func TestLogfmtReporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, LogfmtReporter{}.Write(&buf, scenarioReport(t)))

	records := make(map[string]string)
	dec := logfmt.NewDecoder(strings.NewReader(buf.String()))
	for dec.ScanRecord() {
		var metric, value string
		for dec.ScanKeyval() {
			switch string(dec.Key()) {
			case "metric":
				metric = string(dec.Value())
			case "value", "index":
				value = string(dec.Value())
			}
		}
		if metric != "" {
			records[metric] = value
		}
	}
	require.NoError(t, dec.Err())

	assert.Equal(t, "2.875", records["x-mr-x_center[end=8 segment=0 start=0]"])
	assert.Equal(t, "8", records["x-mr-x_n[end=8 segment=0 start=0]"])
	assert.Equal(t, "7", records["x-mr-x_violation[end=8 rule=beyond-3sigma segment=0 start=0]"])
	assert.Contains(t, buf.String(), `title="line 2"`)
}

func TestNewReporter(t *testing.T) {
	r, err := NewReporter("json")
	require.NoError(t, err)
	assert.IsType(t, JSONReporter{}, r)

	r, err = NewReporter("logfmt")
	require.NoError(t, err)
	assert.IsType(t, LogfmtReporter{}, r)

	_, err = NewReporter("xml")
	assert.Error(t, err)
}
