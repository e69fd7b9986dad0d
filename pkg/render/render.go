// Package render draws analyzed sessions as PNG control charts.  Segmented sessions are drawn
// side by side on one axis, each with its own center line, control limits and 1 and 2 sigma
// zone lines.  Points flagged by a rule are marked in that rule's color.
package render

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/BTBurke/spc"
	"github.com/BTBurke/spc/pkg/rule"
	"github.com/BTBurke/spc/pkg/stat"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoSessions is returned when there is nothing to draw
var ErrNoSessions = errors.New("no sessions to render")

var _ spc.Renderer = &PNG{}

// PNG renders sessions with go-chart
type PNG struct {
	Width  int
	Height int
}

// New returns a renderer producing 1024x512 images
func New() *PNG {
	return &PNG{Width: 1024, Height: 512}
}

var ruleColors = map[rule.Rule]drawing.Color{
	rule.Beyond3Sigma:               chart.ColorRed,
	rule.TwoOfThreeBeyond2Sigma:     chart.ColorOrange,
	rule.FourOfFiveBeyond1Sigma:     chart.ColorYellow,
	rule.SevenOnOneSide:             chart.ColorGreen,
	rule.EightOnOneSide:             chart.ColorGreen,
	rule.NineOnOneSide:              chart.ColorGreen,
	rule.SixTrending:                chart.ColorCyan,
	rule.FourteenUpDown:             chart.ColorAlternateBlue,
	rule.FifteenBelow1Sigma:         chart.ColorAlternateGray,
	rule.EightBeyond1SigmaBothSides: chart.ColorAlternateYellow,
}

// pointStyle draws points only, with no connecting line
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 0,
		StrokeColor: chart.ColorTransparent,
		DotWidth:    5,
		DotColor:    col,
	}
}

func lineStyle(col drawing.Color, dashed bool) chart.Style {
	s := chart.Style{StrokeColor: col, StrokeWidth: 1.5}
	if dashed {
		s.StrokeDashArray = []float64{5, 5}
	}
	return s
}

// bounds tracks the y range of everything drawn
type bounds struct {
	min, max float64
}

func (b *bounds) add(ys ...float64) {
	for _, y := range ys {
		b.min = math.Min(b.min, y)
		b.max = math.Max(b.max, y)
	}
}

func (b bounds) padded() *chart.ContinuousRange {
	pad := (b.max - b.min) * 0.05
	if pad == 0 {
		pad = 1
	}
	return &chart.ContinuousRange{Min: b.min - pad, Max: b.max + pad}
}

// Render writes a PNG of the sessions in order to w
func (p *PNG) Render(w io.Writer, title string, sessions []*spc.Session) error {
	if len(sessions) == 0 {
		return ErrNoSessions
	}

	var series []chart.Series
	y := bounds{min: math.Inf(1), max: math.Inf(-1)}
	offset := 0
	for _, s := range sessions {
		data := s.Series()
		if len(data) == 0 {
			continue
		}
		xs := make([]float64, len(data))
		for i := range xs {
			xs[i] = float64(offset + i)
		}
		y.add(data...)
		series = append(series, chart.ContinuousSeries{
			Name:    s.Chart().String(),
			XValues: pad(xs),
			YValues: pad(data),
			Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 1, DotColor: chart.ColorBlue, DotWidth: 2},
		})
		series = append(series, limitLines(s.Limits(), xs[0], xs[len(xs)-1], &y)...)
		series = append(series, violationPoints(s.Violations(), data, offset)...)
		offset += len(data)
	}
	if len(series) == 0 {
		return ErrNoSessions
	}

	ch := chart.Chart{
		Title:      title,
		Width:      p.Width,
		Height:     p.Height,
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 12, Bottom: 28}},
		XAxis:      chart.XAxis{Name: "index", Range: &chart.ContinuousRange{Min: 0, Max: math.Max(1, float64(offset-1))}},
		YAxis:      chart.YAxis{Range: y.padded()},
		Series:     series,
	}
	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// limitLines draws the center, the control limits and the 1 and 2 sigma zones over [x0, x1].
// Absent lines are not drawn.
func limitLines(l stat.Limits, x0, x1 float64, y *bounds) []chart.Series {
	var out []chart.Series
	line := func(o stat.Optional, style chart.Style) {
		v, ok := o.Get()
		if !ok {
			return
		}
		y.add(v)
		out = append(out, chart.ContinuousSeries{
			XValues: []float64{x0, x1},
			YValues: []float64{v, v},
			Style:   style,
		})
	}

	line(l.Center, lineStyle(chart.ColorBlack, false))
	line(l.Lower, lineStyle(chart.ColorRed, false))
	line(l.Upper, lineStyle(chart.ColorRed, false))
	for _, k := range []float64{1, 2} {
		lo, hi := l.Zone(k)
		line(lo, lineStyle(chart.ColorAlternateGray, true))
		line(hi, lineStyle(chart.ColorAlternateGray, true))
	}
	return out
}

func violationPoints(v rule.Violations, data []float64, offset int) []chart.Series {
	var out []chart.Series
	for _, r := range v.Rules() {
		idx := v[r]
		xs := make([]float64, len(idx))
		ys := make([]float64, len(idx))
		for i, x := range idx {
			xs[i] = float64(offset + x)
			ys[i] = data[x]
		}
		out = append(out, chart.ContinuousSeries{
			Name:    r.String(),
			XValues: pad(xs),
			YValues: pad(ys),
			Style:   pointStyle(ruleColors[r]),
		})
	}
	return out
}

// pad repeats a lone value so go-chart has two points to draw
func pad(v []float64) []float64 {
	if len(v) == 1 {
		return []float64{v[0], v[0]}
	}
	return v
}
