package spc

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/BTBurke/spc/pkg/metric"
	"github.com/BTBurke/spc/pkg/rule"
	"github.com/BTBurke/spc/pkg/stat"
	"github.com/go-logfmt/logfmt"
	"github.com/montanaflynn/stats"
)

// Reporter writes the results of an analysis
type Reporter interface {
	Write(w io.Writer, r *Report) error
}

// Report is the result of analyzing one series, with one segment per session
type Report struct {
	Title    string          `json:"title"`
	Chart    stat.Chart      `json:"chart"`
	Rules    rule.Set        `json:"rules"`
	Segments []SegmentReport `json:"segments"`
}

// SegmentReport describes one session.  Start and End are the [start, end) range of the input data
// the session was built from.  Violation indices refer to the session's series.
type SegmentReport struct {
	Segment    int             `json:"segment"`
	Start      int             `json:"start"`
	End        int             `json:"end"`
	Extra      int             `json:"extra,omitempty"`
	Limits     stat.Limits     `json:"limits"`
	Violations rule.Violations `json:"violations"`
	Summary    Summary         `json:"summary"`
}

// Summary describes the charted series
type Summary struct {
	N      int           `json:"n"`
	Mean   stat.Optional `json:"mean"`
	StdDev stat.Optional `json:"stddev"`
	Median stat.Optional `json:"median"`
	Min    stat.Optional `json:"min"`
	Max    stat.Optional `json:"max"`
}

// NewReport collects the sessions of an analysis.  Boundaries are the segment end indices the
// sessions were built with; nil means a single session over the whole input.
func NewReport(title string, sessions []*Session, boundaries []int) (*Report, error) {
	if len(sessions) == 0 {
		return nil, fmt.Errorf("report needs at least one session")
	}
	if boundaries != nil && len(boundaries) != len(sessions) {
		return nil, fmt.Errorf("%w: %d boundaries for %d sessions", ErrBoundaries, len(boundaries), len(sessions))
	}
	r := &Report{
		Title: title,
		Chart: sessions[0].Chart(),
		Rules: sessions[0].Rules(),
	}
	start := 0
	for i, s := range sessions {
		end := start + s.Points()
		if boundaries != nil {
			end = boundaries[i]
		}
		r.Segments = append(r.Segments, SegmentReport{
			Segment:    i,
			Start:      start,
			End:        end,
			Extra:      s.Extra(),
			Limits:     s.Limits(),
			Violations: s.Violations(),
			Summary:    summarize(s.Series()),
		})
		start = end
	}
	return r, nil
}

// Violations is the total number of rule violations across segments
func (r *Report) Violations() int {
	n := 0
	for _, s := range r.Segments {
		n += s.Violations.Count()
	}
	return n
}

func summarize(x []float64) Summary {
	s := Summary{N: len(x)}
	get := func(f func(stats.Float64Data) (float64, error)) stat.Optional {
		v, err := f(x)
		if err != nil || math.IsNaN(v) {
			return stat.None
		}
		return stat.Some(v)
	}
	s.Mean = get(stats.Mean)
	s.Median = get(stats.Median)
	s.Min = get(stats.Min)
	s.Max = get(stats.Max)
	if len(x) > 1 {
		s.StdDev = get(stats.StandardDeviationSample)
	}
	return s
}

// NewReporter returns the writer for a report format, logfmt or json
func NewReporter(format string) (Reporter, error) {
	switch format {
	case "logfmt", "":
		return LogfmtReporter{}, nil
	case "json":
		return JSONReporter{Indent: "  "}, nil
	default:
		return nil, fmt.Errorf("unknown report format: %s", format)
	}
}

// JSONReporter writes the report as a single JSON document
type JSONReporter struct {
	Indent string
}

func (j JSONReporter) Write(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", j.Indent)
	return enc.Encode(r)
}

// LogfmtReporter writes one logfmt record per reported value, named like
// p_upper[end=20 segment=0 start=0]
type LogfmtReporter struct{}

func (LogfmtReporter) Write(w io.Writer, r *Report) error {
	enc := logfmt.NewEncoder(w)
	record := func(keyvals ...interface{}) error {
		if err := enc.EncodeKeyvals(keyvals...); err != nil {
			return err
		}
		return enc.EndRecord()
	}

	if err := record("title", r.Title, "chart", r.Chart.String(), "rules", r.Rules.String(), "segments", len(r.Segments)); err != nil {
		return err
	}
	for _, seg := range r.Segments {
		name := func(q string) metric.Name {
			n := metric.ForChart(r.Chart, q).WithSpan(seg.Segment, seg.Start, seg.End)
			if seg.Extra > 0 {
				n = n.WithAnnotation("extra")
			}
			return n
		}
		values := []struct {
			quantity string
			value    stat.Optional
		}{
			{"center", seg.Limits.Center},
			{"lower", seg.Limits.Lower},
			{"upper", seg.Limits.Upper},
			{"mean", seg.Summary.Mean},
			{"stddev", seg.Summary.StdDev},
			{"median", seg.Summary.Median},
			{"min", seg.Summary.Min},
			{"max", seg.Summary.Max},
		}
		if err := record("metric", name("n").String(), "value", seg.Summary.N); err != nil {
			return err
		}
		for _, v := range values {
			if err := record("metric", name(v.quantity).String(), "value", v.value.String()); err != nil {
				return err
			}
		}
		for _, rl := range seg.Violations.Rules() {
			n := name("violation").WithMetadata(map[string]string{"rule": rl.Slug()})
			for _, i := range seg.Violations[rl] {
				if err := record("metric", n.String(), "index", strconv.Itoa(i)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
