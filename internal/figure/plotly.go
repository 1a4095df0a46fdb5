package figure

import (
	"encoding/json"
)

// Dark theme colours of the dashboard.
const (
	PaperColor = "#0a0a15"
	PlotColor  = "#12121e"
	GridColor  = "#2a2a3a"
	FontColor  = "#e0e0f0"
	Height     = 900
)

// Trace is a single plotly.js trace.
type Trace struct {
	Type          string   `json:"type"`
	Mode          string   `json:"mode,omitempty"`
	Name          string   `json:"name,omitempty"`
	X             any      `json:"x"`
	Y             any      `json:"y"`
	Orientation   string   `json:"orientation,omitempty"`
	Line          *Line    `json:"line,omitempty"`
	Marker        *Marker  `json:"marker,omitempty"`
	Text          []string `json:"text,omitempty"`
	TextPosition  string   `json:"textposition,omitempty"`
	HoverTemplate string   `json:"hovertemplate,omitempty"`
	ShowLegend    *bool    `json:"showlegend,omitempty"`
	XAxis         string   `json:"xaxis,omitempty"`
	YAxis         string   `json:"yaxis,omitempty"`
	CustomData    []string `json:"customdata,omitempty"`
}

// Line styles a trace line.
type Line struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
}

// Marker styles trace markers or bars. Color is a string or a per-point slice.
type Marker struct {
	Color any   `json:"color,omitempty"`
	Size  int   `json:"size,omitempty"`
	Line  *Line `json:"line,omitempty"`
}

// Document is a plotly.js figure: Plotly.react(el, doc.data, doc.layout).
type Document struct {
	Data   []Trace        `json:"data"`
	Layout map[string]any `json:"layout"`
}

// axis domains for the 2x2 grid with the timeline spanning the top row
// (row heights 0.6/0.4, 0.12 vertical and 0.1 horizontal spacing).
var (
	topRow    = [2]float64{0.472, 1}
	bottomRow = [2]float64{0, 0.352}
	leftCol   = [2]float64{0, 0.45}
	rightCol  = [2]float64{0.55, 1}
	fullWidth = [2]float64{0, 1}
)

// Plotly converts the chart into a plotly.js figure document.
func (c ChartSpec) Plotly() Document {
	data := make([]Trace, 0, len(c.Timeline.Series)+2)

	for _, s := range c.Timeline.Series {
		data = append(data, Trace{
			Type:          "scatter",
			Mode:          s.Mode,
			Name:          s.Name,
			X:             s.X,
			Y:             s.Y,
			Line:          &Line{Color: s.Color, Width: 3},
			Marker:        &Marker{Size: 8},
			HoverTemplate: "<b>%{fullData.name}</b><br>Year: %{x}<br>Score: %{y:.1f}%<extra></extra>",
			XAxis:         "x",
			YAxis:         "y",
		})
	}

	data = append(data, barTrace(c.Improvement, "x2", "y2", "<b>%{customdata}</b><br>Improvement: %{x:.1f}%<extra></extra>"))
	data = append(data, barTrace(c.Growth, "x3", "y3", "<b>%{customdata}</b><br>Annual growth: %{x:.1f}%<extra></extra>"))

	layout := map[string]any{
		"height":        Height,
		"paper_bgcolor": PaperColor,
		"plot_bgcolor":  PlotColor,
		"font":          map[string]any{"color": FontColor, "size": 12},
		"showlegend":    true,
		"legend": map[string]any{
			"orientation": "h",
			"yanchor":     "bottom",
			"y":           1.02,
			"xanchor":     "right",
			"x":           1,
			"bgcolor":     "rgba(0,0,0,0)",
		},
		"hovermode":   "closest",
		"margin":      map[string]any{"l": 160, "r": 40, "t": 80, "b": 40},
		"xaxis":       axis(fullWidth, "y", "Year"),
		"yaxis":       axis(topRow, "x", "Score (%)"),
		"xaxis2":      axis(leftCol, "y2", "Improvement (pp)"),
		"yaxis2":      categoryAxis(bottomRow, "x2"),
		"xaxis3":      axis(rightCol, "y3", "Growth per year (%)"),
		"yaxis3":      categoryAxis(bottomRow, "x3"),
		"annotations": []map[string]any{title(c.Timeline.Title, fullWidth, topRow), title(c.Improvement.Title, leftCol, bottomRow), title(c.Growth.Title, rightCol, bottomRow)},
	}
	return Document{Data: data, Layout: layout}
}

// JSON marshals the plotly document.
func (c ChartSpec) JSON() ([]byte, error) {
	return json.Marshal(c.Plotly())
}

func barTrace(p BarPanel, xaxis, yaxis, hover string) Trace {
	hide := false
	labels := make([]string, len(p.Bars))
	values := make([]float64, len(p.Bars))
	colors := make([]string, len(p.Bars))
	texts := make([]string, len(p.Bars))
	names := make([]string, len(p.Bars))
	for i, b := range p.Bars {
		labels[i], values[i], colors[i], texts[i], names[i] = b.Label, b.Value, b.Color, b.Text, b.Name
	}

	t := Trace{
		Type:          "bar",
		Name:          p.Title,
		Marker:        &Marker{Color: colors},
		Text:          texts,
		TextPosition:  "outside",
		HoverTemplate: hover,
		ShowLegend:    &hide,
		XAxis:         xaxis,
		YAxis:         yaxis,
		CustomData:    names,
	}
	if p.Horizontal {
		t.Orientation = "h"
		t.X, t.Y = values, labels
	} else {
		t.X, t.Y = labels, values
	}
	return t
}

func axis(domain [2]float64, anchor, label string) map[string]any {
	return map[string]any{
		"domain":    domain,
		"anchor":    anchor,
		"title":     map[string]any{"text": label},
		"gridcolor": GridColor,
		"zeroline":  false,
	}
}

func categoryAxis(domain [2]float64, anchor string) map[string]any {
	a := axis(domain, anchor, "")
	a["autorange"] = "reversed"
	a["type"] = "category"
	return a
}

func title(text string, x, y [2]float64) map[string]any {
	return map[string]any{
		"text":      "<b>" + text + "</b>",
		"x":         (x[0] + x[1]) / 2,
		"y":         y[1],
		"xref":      "paper",
		"yref":      "paper",
		"xanchor":   "center",
		"yanchor":   "bottom",
		"showarrow": false,
		"font":      map[string]any{"size": 14},
	}
}

// Plotly renders a bar panel as a standalone figure.
func (p BarPanel) Plotly() Document {
	t := barTrace(p, "", "", "<b>%{customdata}</b><br>%{text}<extra></extra>")
	layout := panelLayout(p.Title)
	if p.Horizontal {
		layout["yaxis"] = map[string]any{"type": "category", "autorange": "reversed", "gridcolor": GridColor}
	}
	return Document{Data: []Trace{t}, Layout: layout}
}

// Plotly renders a line panel as a standalone figure.
func (p LinePanel) Plotly() Document {
	data := make([]Trace, 0, len(p.Series))
	for _, s := range p.Series {
		data = append(data, Trace{
			Type:   "scatter",
			Mode:   s.Mode,
			Name:   s.Name,
			X:      s.X,
			Y:      s.Y,
			Line:   &Line{Color: s.Color, Width: 2},
			Marker: &Marker{Color: s.Color, Size: 9},
		})
	}
	return Document{Data: data, Layout: panelLayout(p.Title)}
}

func panelLayout(text string) map[string]any {
	return map[string]any{
		"title":         map[string]any{"text": text},
		"height":        480,
		"paper_bgcolor": PaperColor,
		"plot_bgcolor":  PlotColor,
		"font":          map[string]any{"color": FontColor},
		"xaxis":         map[string]any{"gridcolor": GridColor},
		"yaxis":         map[string]any{"gridcolor": GridColor},
	}
}
