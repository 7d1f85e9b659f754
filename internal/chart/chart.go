// Package chart draws the dashboard charts as SVG.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"retrospectiva/internal/report"
	"retrospectiva/internal/stats"
)

var (
	ErrNoData      = errors.New("no data to chart")
	ErrInvalidSpec = errors.New("invalid chart spec")
)

// ContentType is the media type of every rendered chart.
const ContentType = "image/svg+xml"

type Options struct {
	Width  int
	Height int
}

func DefaultOptions() Options {
	return Options{Width: 480, Height: 320}
}

// Renderer turns chart specs into SVG documents using the aggregator as the
// only data source.
type Renderer struct {
	agg  *stats.Aggregator
	opts Options
}

func NewRenderer(agg *stats.Aggregator, opts Options) *Renderer {
	def := DefaultOptions()
	if opts.Width <= 0 {
		opts.Width = def.Width
	}
	if opts.Height <= 0 {
		opts.Height = def.Height
	}
	return &Renderer{agg: agg, opts: opts}
}

// Render writes spec as SVG to w.
func (r *Renderer) Render(w io.Writer, spec report.ChartSpec) error {
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSpec, err)
	}
	switch spec.Kind {
	case report.KindDonut:
		return r.donut(w, spec)
	case report.KindBar:
		return r.bar(w, spec)
	case report.KindBox:
		return r.box(w, spec)
	default:
		return fmt.Errorf("%w: kind %q", ErrInvalidSpec, spec.Kind)
	}
}

// RenderBytes renders spec into memory.
func (r *Renderer) RenderBytes(spec report.ChartSpec) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, spec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Renderer) donut(w io.Writer, spec report.ChartSpec) error {
	var (
		counts []stats.CategoryCount
		err    error
	)
	if spec.Where != nil {
		counts, err = r.agg.CountByCategoryWhere(spec.Field, *spec.Where)
	} else {
		counts, err = r.agg.CountByCategory(spec.Field)
	}
	if err != nil {
		return fmt.Errorf("chart %s: %w", spec.ID, err)
	}
	if stats.Sum(counts) == 0 {
		return fmt.Errorf("chart %s: %w", spec.ID, ErrNoData)
	}

	values := make([]gochart.Value, 0, len(counts))
	for i, c := range counts {
		values = append(values, gochart.Value{
			Label: fmt.Sprintf("%s (%d)", c.Value, c.Count),
			Value: float64(c.Count),
			Style: gochart.Style{
				FillColor:   color(spec.Color(i, c.Value)),
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 2,
				FontColor:   color(report.ColorInk),
				FontSize:    10,
			},
		})
	}

	size := min(r.opts.Width, r.opts.Height)
	d := gochart.DonutChart{
		Width:      size,
		Height:     size,
		Background: transparent(),
		Canvas:     transparent(),
		Values:     values,
	}
	if err := d.Render(gochart.SVG, w); err != nil {
		return fmt.Errorf("render donut %s: %w", spec.ID, err)
	}
	return nil
}

func (r *Renderer) bar(w io.Writer, spec report.ChartSpec) error {
	months := r.agg.CountByMonth()
	total := 0
	for _, m := range months {
		total += m.Count
	}
	if total == 0 {
		return fmt.Errorf("chart %s: %w", spec.ID, ErrNoData)
	}

	fill := color(spec.Color(0, ""))
	bars := make([]gochart.Value, 0, len(months))
	for _, m := range months {
		bars = append(bars, gochart.Value{
			Label: m.Month.Short(),
			Value: float64(m.Count),
			Style: gochart.Style{FillColor: fill, StrokeColor: fill},
		})
	}

	// Leave room for the y axis and keep a gap between bars.
	slot := (r.opts.Width - 80) / len(bars)
	b := gochart.BarChart{
		Width:      r.opts.Width,
		Height:     r.opts.Height,
		BarWidth:   slot * 2 / 3,
		BarSpacing: slot / 3,
		Background: gochart.Style{
			FillColor: drawing.ColorTransparent,
			Padding:   gochart.Box{Top: 24, Left: 8, Right: 8, Bottom: 8},
		},
		Canvas: transparent(),
		XAxis:  gochart.Style{FontColor: color(report.ColorInk), FontSize: 9},
		YAxis: gochart.YAxis{
			Style:          gochart.Style{FontColor: color(report.ColorMuted), FontSize: 9},
			GridMajorStyle: gochart.Style{StrokeColor: color(report.ColorGrid), StrokeWidth: 1},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Bars: bars,
	}
	if err := b.Render(gochart.SVG, w); err != nil {
		return fmt.Errorf("render bar %s: %w", spec.ID, err)
	}
	return nil
}

// box draws a box plot with every observation beside it. go-chart has no
// box series, so the box, whiskers and median are plain line segments.
func (r *Renderer) box(w io.Writer, spec report.ChartSpec) error {
	s, err := r.agg.AgeSummary()
	if errors.Is(err, stats.ErrEmptyTable) {
		return fmt.Errorf("chart %s: %w", spec.ID, ErrNoData)
	}
	if err != nil {
		return fmt.Errorf("chart %s: %w", spec.ID, err)
	}

	stroke := gochart.Style{StrokeColor: color(spec.Color(0, "")), StrokeWidth: 2}
	segment := func(name string, xs, ys []float64) gochart.Series {
		return gochart.ContinuousSeries{Name: name, XValues: xs, YValues: ys, Style: stroke}
	}

	xs := make([]float64, len(s.Points))
	ys := make([]float64, len(s.Points))
	for i, p := range s.Points {
		xs[i] = 1.55 + float64(i%3-1)*0.06
		ys[i] = float64(p)
	}

	series := []gochart.Series{
		segment("box", []float64{0.7, 1.3, 1.3, 0.7, 0.7}, []float64{s.Q1, s.Q1, s.Q3, s.Q3, s.Q1}),
		segment("median", []float64{0.7, 1.3}, []float64{s.Median, s.Median}),
		segment("lower whisker", []float64{1, 1}, []float64{s.Min, s.Q1}),
		segment("upper whisker", []float64{1, 1}, []float64{s.Q3, s.Max}),
		segment("min", []float64{0.85, 1.15}, []float64{s.Min, s.Min}),
		segment("max", []float64{0.85, 1.15}, []float64{s.Max, s.Max}),
		gochart.ContinuousSeries{
			Name:    "ages",
			XValues: xs,
			YValues: ys,
			Style: gochart.Style{
				StrokeWidth: gochart.Disabled,
				DotWidth:    4,
				DotColor:    color(spec.Color(0, "")),
			},
		},
	}

	g := gochart.Chart{
		Width:      r.opts.Width,
		Height:     r.opts.Height,
		Background: gochart.Style{FillColor: drawing.ColorTransparent, Padding: gochart.Box{Top: 16, Left: 8, Right: 16, Bottom: 8}},
		Canvas:     transparent(),
		XAxis: gochart.XAxis{
			Range: &gochart.ContinuousRange{Min: 0.4, Max: 1.8},
			Ticks: []gochart.Tick{{Value: 0.4, Label: ""}, {Value: 1, Label: "Age"}, {Value: 1.8, Label: ""}},
		},
		YAxis: gochart.YAxis{
			Range:          &gochart.ContinuousRange{Min: s.Min - 2, Max: s.Max + 2},
			Style:          gochart.Style{FontColor: color(report.ColorMuted), FontSize: 9},
			GridMajorStyle: gochart.Style{StrokeColor: color(report.ColorGrid), StrokeWidth: 1},
		},
		Series: series,
	}
	if err := g.Render(gochart.SVG, w); err != nil {
		return fmt.Errorf("render box %s: %w", spec.ID, err)
	}
	return nil
}

func color(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

func transparent() gochart.Style {
	return gochart.Style{FillColor: drawing.ColorTransparent}
}
