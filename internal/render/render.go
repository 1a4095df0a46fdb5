// internal/render/render.go
// Package render draws figure panels as PNG images with go-chart.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/mwiater/capdash/internal/capability"
	"github.com/mwiater/capdash/internal/figure"
)

var (
	// ErrEmptyPanel is returned when a panel has nothing to draw.
	ErrEmptyPanel = errors.New("panel is empty")
	// ErrUnknownPanel is returned by Panel for an unrecognised panel name.
	ErrUnknownPanel = errors.New("unknown panel")
)

// Panel names accepted by Panel.
const (
	PanelTimeline    = "timeline"
	PanelImprovement = "improvement"
	PanelGrowth      = "growth"
)

// Size of rendered images in pixels.
const (
	Width  = 1000
	Height = 480
)

var (
	paper = color(figure.PaperColor)
	plot  = color(figure.PlotColor)
	font  = color(figure.FontColor)
	grid  = color(figure.GridColor)
)

// PanelNames lists the panels Panel can render, in display order.
func PanelNames() []string {
	return []string{PanelTimeline, PanelImprovement, PanelGrowth}
}

// Panel renders one named panel of spec.
func Panel(spec figure.ChartSpec, name string) ([]byte, error) {
	switch name {
	case PanelTimeline:
		return Timeline(spec)
	case PanelImprovement:
		return Improvement(spec)
	case PanelGrowth:
		return Growth(spec)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPanel, name)
	}
}

// Timeline renders the score-over-time panel.
func Timeline(spec figure.ChartSpec) ([]byte, error) {
	return Lines(spec.Timeline)
}

// Improvement renders the improvement bars.
func Improvement(spec figure.ChartSpec) ([]byte, error) {
	return Bars(spec.Improvement)
}

// Growth renders the annual-growth bars.
func Growth(spec figure.ChartSpec) ([]byte, error) {
	return Bars(spec.Growth)
}

// Lines renders a line panel. X values are category labels placed on a
// shared axis ordered with capability.SortedYears; single-point series are
// padded to two x values.
func Lines(p figure.LinePanel) ([]byte, error) {
	union := make(map[string]float64)
	points := 0
	for _, s := range p.Series {
		for _, x := range s.X {
			union[x] = 0
		}
		points += len(s.X)
	}
	if points == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyPanel, p.Title)
	}

	labels := capability.SortedYears(union)
	position := make(map[string]float64, len(labels))
	ticks := make([]chart.Tick, len(labels))
	for i, l := range labels {
		position[l] = float64(i)
		ticks[i] = chart.Tick{Value: float64(i), Label: l}
	}
	maxX := float64(len(labels) - 1)
	if maxX == 0 {
		// go-chart takes the x range from the ticks, so widen them to the padded series.
		maxX = 1
		ticks = append(ticks, chart.Tick{Value: maxX})
	}

	var all []float64
	series := make([]chart.Series, 0, len(p.Series))
	for _, s := range p.Series {
		if len(s.X) == 0 {
			continue
		}
		xs := make([]float64, len(s.X))
		for i, x := range s.X {
			xs[i] = position[x]
		}
		ys := append([]float64(nil), s.Y...)
		all = append(all, ys...)
		if len(xs) == 1 {
			xs = append(xs, xs[0]+1)
			ys = append(ys, ys[0])
		}

		st := chart.Style{
			StrokeColor: color(s.Color),
			StrokeWidth: 2.5,
			DotColor:    color(s.Color),
			DotWidth:    4,
		}
		if s.Mode == "markers" {
			st.StrokeColor = drawing.ColorTransparent
			st.DotWidth = 6
		}
		series = append(series, chart.ContinuousSeries{Name: s.Name, XValues: xs, YValues: ys, Style: st})
	}

	graph := chart.Chart{
		Title:      p.Title,
		TitleStyle: chart.Style{FontColor: font},
		Width:      Width,
		Height:     Height,
		Background: chart.Style{
			FillColor: paper,
			Padding:   chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		Canvas: chart.Style{FillColor: plot},
		XAxis: chart.XAxis{
			Style: chart.Style{FontColor: font, StrokeColor: grid},
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: 0, Max: maxX},
		},
		YAxis: chart.YAxis{
			Style: chart.Style{FontColor: font, StrokeColor: grid},
			Range: valueRange(all),
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", p.Title, err)
	}
	return buf.Bytes(), nil
}

// Bars renders a bar panel. go-chart draws bars vertically, so horizontal
// panels are drawn with labels along the x axis in the same order.
func Bars(p figure.BarPanel) ([]byte, error) {
	if len(p.Bars) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyPanel, p.Title)
	}

	values := make([]chart.Value, len(p.Bars))
	all := make([]float64, len(p.Bars))
	for i, b := range p.Bars {
		all[i] = b.Value
		values[i] = chart.Value{
			Label: b.Label,
			Value: b.Value,
			Style: chart.Style{
				FillColor:   color(b.Color),
				StrokeColor: color(b.Color),
				StrokeWidth: 1,
			},
		}
	}

	graph := chart.BarChart{
		Title:      p.Title,
		TitleStyle: chart.Style{FontColor: font},
		Width:      Width,
		Height:     Height,
		BarWidth:   barWidth(len(values)),
		BarSpacing: barWidth(len(values)),
		Background: chart.Style{
			FillColor: paper,
			Padding:   chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		Canvas:       chart.Style{FillColor: plot},
		XAxis:        chart.Style{FontColor: font, StrokeColor: grid},
		YAxis:        chart.YAxis{Style: chart.Style{FontColor: font, StrokeColor: grid}, Range: valueRange(all)},
		UseBaseValue: true,
		BaseValue:    0,
		Bars:         values,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", p.Title, err)
	}
	return buf.Bytes(), nil
}

// valueRange spans zero and every value, and is never degenerate.
func valueRange(values []float64) *chart.ContinuousRange {
	lo, hi := 0.0, 0.0
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi-lo < 1 {
		hi = lo + 1
	}
	pad := (hi - lo) * 0.05
	if lo < 0 {
		lo -= pad
	}
	return &chart.ContinuousRange{Min: lo, Max: hi + pad}
}

func barWidth(n int) int {
	w := (Width - 120) / (n * 2)
	switch {
	case w > 80:
		return 80
	case w < 8:
		return 8
	}
	return w
}

func color(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}
