package benchmarks

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/mwiater/capdash/internal/figure"
	"github.com/mwiater/capdash/internal/util"
)

// reportData feeds the standalone benchmark page template.
type reportData struct {
	Title       string
	FiguresJSON template.JS
}

type reportFigures struct {
	TrainingTime figure.Document `json:"training_time"`
	MemoryUsage  figure.Document `json:"memory_usage"`
	Performance  figure.Document `json:"performance_metrics"`
}

// PageFile is the HTML file name generated for a dataset.
func PageFile(dataset string) string {
	return dataset + "_dashboard.html"
}

// GenerateReport renders a standalone HTML page with the dataset's three
// panels drawn by plotly.js.
func GenerateReport(ds Dataset) (string, error) {
	panels := BuildPanels(ds)
	data, err := json.Marshal(reportFigures{
		TrainingTime: panels.TrainingTime.Plotly(),
		MemoryUsage:  panels.MemoryUsage.Plotly(),
		Performance:  panels.Performance.Plotly(),
	})
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, reportData{
		Title:       ds.Name,
		FiguresJSON: template.JS(data),
	}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteReports generates one page per dataset into dir and returns the
// written paths.
func WriteReports(dir string, datasets []Dataset) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}
	paths := make([]string, 0, len(datasets))
	for _, ds := range datasets {
		page, err := GenerateReport(ds)
		if err != nil {
			return paths, fmt.Errorf("render %s: %w", ds.Name, err)
		}
		path := filepath.Join(dir, PageFile(ds.Name))
		if err := util.WriteFile(path, []byte(page)); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

var reportTemplate = template.Must(template.New("benchmark-report").Parse(reportTemplateHTML))

const reportTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <script src="https://cdn.plot.ly/plotly-2.35.2.min.js"></script>
  <style>
    body { background-color: #0a0a15; color: #e0e0f0; font-family: sans-serif; margin: 0; padding: 1rem; }
    .panel { margin-bottom: 1.5rem; }
  </style>
</head>
<body>
  <h2>{{ .Title }}</h2>
  <div id="training_time" class="panel"></div>
  <div id="memory_usage" class="panel"></div>
  <div id="performance_metrics" class="panel"></div>
  <script>
    const figures = {{ .FiguresJSON }};
    for (const [id, fig] of Object.entries(figures)) {
      if (fig.data.length === 0 || (fig.data[0].x || []).length === 0) {
        document.getElementById(id).textContent = "No data for " + id.replace("_", " ") + ".";
        continue;
      }
      Plotly.newPlot(id, fig.data, fig.layout, {responsive: true});
    }
  </script>
</body>
</html>
`
