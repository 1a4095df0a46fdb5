// internal/figure/figure.go
// Package figure assembles chart specifications from capability data. A
// ChartSpec is renderer-neutral; Plotly converts it for the browser and the
// render package draws it as PNG.
package figure

import (
	"fmt"
	"sort"

	"github.com/mwiater/capdash/internal/capability"
)

// MaxLabelRunes is the bar label length limit.
const MaxLabelRunes = 20

// Default panel titles.
const (
	TimelineTitle    = "Timeline Evolution"
	ImprovementTitle = "Improvement 2019-2025"
	GrowthTitle      = "Annual Growth"
)

// LineSeries is one line in a line/scatter panel.
type LineSeries struct {
	Name   string    `json:"name"`
	Color  string    `json:"color"`
	Mode   string    `json:"mode"`
	X      []string  `json:"x"`
	Y      []float64 `json:"y"`
	YLabel string    `json:"y_label,omitempty"`
}

// LinePanel groups line series under a title.
type LinePanel struct {
	Title  string       `json:"title"`
	Series []LineSeries `json:"series"`
}

// Bar is one bar of a bar panel.
type Bar struct {
	Name  string  `json:"name"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
	Text  string  `json:"text"`
}

// BarPanel groups bars under a title. Horizontal panels put labels on the y axis.
type BarPanel struct {
	Title      string `json:"title"`
	Horizontal bool   `json:"horizontal"`
	Bars       []Bar  `json:"bars"`
}

// ChartSpec is the composite capability figure.
type ChartSpec struct {
	Timeline    LinePanel `json:"timeline"`
	Improvement BarPanel  `json:"improvement"`
	Growth      BarPanel  `json:"growth"`
}

// Build assembles the timeline, improvement and annual-growth panels for the
// selected capabilities. Timeline and improvement keep selection order; the
// growth panel is sorted by value, descending, with ties left in selection
// order, and only holds growth-eligible capabilities.
func Build(selected []string, ds *capability.Dataset) (ChartSpec, error) {
	spec := ChartSpec{
		Timeline:    LinePanel{Title: TimelineTitle, Series: []LineSeries{}},
		Improvement: BarPanel{Title: ImprovementTitle, Horizontal: true, Bars: []Bar{}},
		Growth:      BarPanel{Title: GrowthTitle, Horizontal: true, Bars: []Bar{}},
	}

	for _, name := range selected {
		rec, err := ds.Get(name)
		if err != nil {
			return ChartSpec{}, err
		}
		span, err := rec.Span()
		if err != nil {
			return ChartSpec{}, err
		}
		color := capability.ColorFor(rec.Category)

		points := rec.Series()
		line := LineSeries{
			Name:  name,
			Color: color,
			Mode:  "lines+markers",
			X:     make([]string, len(points)),
			Y:     make([]float64, len(points)),
		}
		for i, p := range points {
			line.X[i] = p.Year
			line.Y[i] = p.Score * 100
		}
		spec.Timeline.Series = append(spec.Timeline.Series, line)

		improvement := span.Improvement()
		spec.Improvement.Bars = append(spec.Improvement.Bars, Bar{
			Name:  name,
			Label: Truncate(name, MaxLabelRunes),
			Value: improvement,
			Color: color,
			Text:  fmt.Sprintf("%+.1f%%", improvement),
		})

		if growth, ok := span.AnnualGrowth(); ok {
			spec.Growth.Bars = append(spec.Growth.Bars, Bar{
				Name:  name,
				Label: Truncate(name, MaxLabelRunes),
				Value: growth,
				Color: color,
				Text:  fmt.Sprintf("%.1f%%", growth),
			})
		}
	}

	sort.SliceStable(spec.Growth.Bars, func(i, j int) bool {
		return spec.Growth.Bars[i].Value > spec.Growth.Bars[j].Value
	})
	return spec, nil
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
