// internal/benchmarks/benchmarks.go
// Package benchmarks loads per-benchmark model comparison tables and turns
// them into chart panels and standalone HTML pages.
package benchmarks

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/mwiater/capdash/internal/capability"
	"github.com/mwiater/capdash/internal/datafile"
	"github.com/mwiater/capdash/internal/figure"
)

// Column names of a benchmark CSV.
const (
	ColumnModel        = "model"
	ColumnTrainingTime = "training_time"
	ColumnMemoryUsage  = "memory_usage"
	ColumnAccuracy     = "accuracy"
	ColumnPrecision    = "precision"
	ColumnRecall       = "recall"
	ColumnF1           = "f1_score"
)

// PerformanceMetrics are the score columns drawn on the performance panel.
var PerformanceMetrics = []string{ColumnAccuracy, ColumnPrecision, ColumnRecall, ColumnF1}

var metricColumns = []string{ColumnTrainingTime, ColumnMemoryUsage, ColumnAccuracy, ColumnPrecision, ColumnRecall, ColumnF1}

// ErrNoModelColumn is returned for a CSV without a model column.
var ErrNoModelColumn = errors.New("benchmark table has no model column")

// Row is one model's results. Metrics holds only the columns that had a
// numeric value.
type Row struct {
	Model   string             `json:"model"`
	Metrics map[string]float64 `json:"metrics"`
}

// Metric returns the named metric and whether it is present.
func (r Row) Metric(name string) (float64, bool) {
	v, ok := r.Metrics[name]
	return v, ok
}

// Dataset is one benchmark table, named after its file.
type Dataset struct {
	Name string `json:"name"`
	Rows []Row  `json:"rows"`
}

// Panels are the three charts drawn for a dataset.
type Panels struct {
	TrainingTime figure.BarPanel  `json:"training_time"`
	MemoryUsage  figure.BarPanel  `json:"memory_usage"`
	Performance  figure.LinePanel `json:"performance_metrics"`
}

// LoadDir reads every *.csv file in dir, sorted by name.
func LoadDir(dir string) ([]Dataset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", datafile.ErrFileNotFound, dir)
		}
		return nil, err
	}

	var out []Dataset
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		ds, err := LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, ds)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// LoadFile reads a single benchmark CSV.
func LoadFile(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Dataset{}, fmt.Errorf("%w: %s", datafile.ErrFileNotFound, path)
		}
		return Dataset{}, err
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Read(name, f)
}

// Read parses benchmark CSV content. Non-numeric or empty metric cells are
// treated as absent.
func Read(name string, r io.Reader) (Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return Dataset{}, fmt.Errorf("%w: %s: %v", datafile.ErrParse, name, err)
	}
	if len(rows) == 0 {
		return Dataset{}, fmt.Errorf("%w: %s", ErrNoModelColumn, name)
	}

	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	modelCol, ok := index[ColumnModel]
	if !ok {
		return Dataset{}, fmt.Errorf("%w: %s", ErrNoModelColumn, name)
	}

	ds := Dataset{Name: name, Rows: make([]Row, 0, len(rows)-1)}
	for _, rec := range rows[1:] {
		if modelCol >= len(rec) || strings.TrimSpace(rec[modelCol]) == "" {
			continue
		}
		row := Row{Model: strings.TrimSpace(rec[modelCol]), Metrics: make(map[string]float64)}
		for _, col := range metricColumns {
			i, ok := index[col]
			if !ok || i >= len(rec) {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
			if err != nil {
				continue
			}
			row.Metrics[col] = v
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds, nil
}

// BuildPanels turns a dataset into its training-time, memory-usage and
// performance-metric panels. Rows missing a metric are left out of that
// metric's chart.
func BuildPanels(ds Dataset) Panels {
	return Panels{
		TrainingTime: metricBars(ds, ColumnTrainingTime, "Training Time by Model", "%.1fs", 0),
		MemoryUsage:  metricBars(ds, ColumnMemoryUsage, "Memory Usage by Model", "%.0f MB", 1),
		Performance:  performance(ds),
	}
}

func metricBars(ds Dataset, column, title, format string, colorIndex int) figure.BarPanel {
	palette := capability.Palette()
	color := palette[colorIndex%len(palette)].Color

	p := figure.BarPanel{Title: title, Bars: []figure.Bar{}}
	for _, r := range ds.Rows {
		v, ok := r.Metric(column)
		if !ok {
			continue
		}
		p.Bars = append(p.Bars, figure.Bar{
			Name:  r.Model,
			Label: figure.Truncate(r.Model, figure.MaxLabelRunes),
			Value: v,
			Color: color,
			Text:  fmt.Sprintf(format, v),
		})
	}
	return p
}

func performance(ds Dataset) figure.LinePanel {
	palette := capability.Palette()
	p := figure.LinePanel{Title: "Model Performance Metrics", Series: []figure.LineSeries{}}
	for i, metric := range PerformanceMetrics {
		s := figure.LineSeries{
			Name:   metric,
			Color:  palette[i%len(palette)].Color,
			Mode:   "markers",
			X:      []string{},
			Y:      []float64{},
			YLabel: "Score",
		}
		for _, r := range ds.Rows {
			if v, ok := r.Metric(metric); ok {
				s.X = append(s.X, r.Model)
				s.Y = append(s.Y, v)
			}
		}
		if len(s.X) > 0 {
			p.Series = append(p.Series, s)
		}
	}
	return p
}
