package capdash

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwiater/capdash/internal/capability"
)

const (
	testHeights = `{"all": {
  "code_generation": {"category": "coding", "heights": {"2019": 0.2, "2025": 0.5}},
  "physical_intuition": {"category": "reasoning", "heights": {"2019": 0.1, "2025": 0.4}},
  "single_year": {"category": "knowledge", "heights": {"2024": 0.7}}
}}`
	testSummary    = `{"total_records": 12, "benchmarks": ["a", "b", "c"], "capabilities": ["x"]}`
	testTable      = "Name,Country,City,Cuisine\nA,France,Paris,French\nB,France,Lyon,French\nC,Peru,Lima,Nikkei\n"
	testBenchmarks = "model,training_time,memory_usage,accuracy\nm1,12.5,2048,0.81\nm2,9.0,1024,0.77\n"
)

// writeDataDir lays out a complete data directory and a config pointing at it.
func writeDataDir(t *testing.T) (dataDir, configPath string) {
	t.Helper()
	dataDir = t.TempDir()
	files := map[string]string{
		"capability_heights.json":          testHeights,
		"data_summary.json":                testSummary,
		"restaurants.csv":                  testTable,
		"epoch_benchmark_data/boolq.csv":   testBenchmarks,
		"epoch_benchmark_data/notes.txt":   "ignored",
		"epoch_benchmark_data/arc_ai2.csv": testBenchmarks,
	}
	for name, content := range files {
		path := filepath.Join(dataDir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	configPath = writeTempConfig(t, `{"defaultSelection": ["code_generation", "physical_intuition", "scientific_reasoning"], "graphsDir": "`+filepath.ToSlash(filepath.Join(dataDir, "graphs"))+`"}`)
	useConfig(t, configPath)
	return dataDir, configPath
}

func TestStatsCommand(t *testing.T) {
	dataDir, configPath := writeDataDir(t)

	out, err := run(t, "--config", configPath, "--dataDir", dataDir, "stats", "code_generation", "single_year")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	for _, want := range []string{
		"Active Capabilities: 2/3",
		"Avg Improvement: +15.0%",
		"Avg Annual Growth: 150.0%",
		"Score Range: 50.0% - 70.0%",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestStatsCommandDefaultSelection(t *testing.T) {
	dataDir, configPath := writeDataDir(t)

	out, err := run(t, "--config", configPath, "--dataDir", dataDir, "stats")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	// scientific_reasoning is not in the dataset and is dropped
	if !strings.Contains(out, "Active Capabilities: 2/3") {
		t.Fatalf("expected known defaults only:\n%s", out)
	}
}

func TestStatsCommandRepeatedCapability(t *testing.T) {
	dataDir, configPath := writeDataDir(t)

	out, err := run(t, "--config", configPath, "--dataDir", dataDir, "stats", "code_generation", "code_generation")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	for _, want := range []string{"Active Capabilities: 1/3", "Avg Improvement: +30.0%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestStatsCommandUnknownCapability(t *testing.T) {
	dataDir, configPath := writeDataDir(t)

	_, err := run(t, "--config", configPath, "--dataDir", dataDir, "stats", "telepathy")
	if !errors.Is(err, capability.ErrUnknownCapability) {
		t.Fatalf("expected ErrUnknownCapability, got %v", err)
	}
}

func TestFigureCommand(t *testing.T) {
	dataDir, configPath := writeDataDir(t)
	outDir := t.TempDir()
	jsonPath := filepath.Join(outDir, "figure.json")
	pngDir := filepath.Join(outDir, "png")

	out, err := run(t, "--config", configPath, "--dataDir", dataDir, "figure", "single_year", "--output", jsonPath, "--png-dir", pngDir)
	if err != nil {
		t.Fatalf("figure: %v", err)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("read figure: %v", err)
	}
	if !bytes.Contains(data, []byte(`"single_year"`)) {
		t.Fatalf("expected the capability in the figure JSON")
	}
	for _, name := range []string{"timeline.png", "improvement.png"} {
		img, err := os.ReadFile(filepath.Join(pngDir, name))
		if err != nil || !bytes.HasPrefix(img, []byte("\x89PNG")) {
			t.Fatalf("expected %s to be a PNG: %v", name, err)
		}
	}
	// single-year records are not growth-eligible, so the panel is skipped
	if _, err := os.Stat(filepath.Join(pngDir, "growth.png")); !os.IsNotExist(err) {
		t.Fatalf("expected no growth.png, stat err %v", err)
	}
	if !strings.Contains(out, "Wrote "+jsonPath) {
		t.Fatalf("expected write notice:\n%s", out)
	}
}

func TestSummaryAndOverviewCommands(t *testing.T) {
	dataDir, configPath := writeDataDir(t)

	out, err := run(t, "--config", configPath, "--dataDir", dataDir, "summary")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	for _, want := range []string{"Total Records:      12", "Total Benchmarks:   3", "Total Capabilities: 1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	out, err = run(t, "--config", configPath, "--dataDir", dataDir, "overview")
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	for _, want := range []string{"Restaurants: 3", "Countries:   2", "Cities:      3", "Top Cuisine: French"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestValidateCommand(t *testing.T) {
	dataDir, configPath := writeDataDir(t)

	out, err := run(t, "--config", configPath, "--dataDir", dataDir, "validate")
	if err != nil {
		t.Fatalf("validate: %v\n%s", err, out)
	}
	if strings.Count(out, "PASS") != 5 {
		t.Fatalf("expected five passing checks:\n%s", out)
	}

	if err := os.WriteFile(filepath.Join(dataDir, "capability_heights.json"), []byte(`{"all": {"x": {"category": "coding", "heights": {"2019": 4}}}}`), 0o644); err != nil {
		t.Fatalf("write heights: %v", err)
	}
	out, err = run(t, "--config", configPath, "--dataDir", dataDir, "validate")
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
	if !strings.Contains(out, "FAIL") || !strings.Contains(out, "capabilities") {
		t.Fatalf("expected failing capabilities check:\n%s", out)
	}
}

func TestValidateSkipsOptionalInputs(t *testing.T) {
	dataDir, configPath := writeDataDir(t)
	if err := os.Remove(filepath.Join(dataDir, "restaurants.csv")); err != nil {
		t.Fatalf("remove: %v", err)
	}

	out, err := run(t, "--config", configPath, "--dataDir", dataDir, "validate")
	if err != nil {
		t.Fatalf("validate: %v\n%s", err, out)
	}
	if !strings.Contains(out, "SKIP") {
		t.Fatalf("expected a skipped table check:\n%s", out)
	}
}

func TestGraphsCommand(t *testing.T) {
	dataDir, configPath := writeDataDir(t)

	out, err := run(t, "--config", configPath, "--dataDir", dataDir, "graphs")
	if err != nil {
		t.Fatalf("graphs: %v", err)
	}
	if !strings.Contains(out, "Generated 2 benchmark pages") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	for _, name := range []string{"arc_ai2_dashboard.html", "boolq_dashboard.html"} {
		if _, err := os.Stat(filepath.Join(dataDir, "graphs", name)); err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
	}
}

func TestShowCapabilityCommand(t *testing.T) {
	dataDir, configPath := writeDataDir(t)

	out, err := run(t, "--config", configPath, "--dataDir", dataDir, "show", "capability", "code_generation")
	if err != nil {
		t.Fatalf("show capability: %v", err)
	}
	if !strings.Contains(out, "Code Generation") || !strings.Contains(out, "#636EFA") {
		t.Fatalf("unexpected dump:\n%s", out)
	}

	if _, err := run(t, "--config", configPath, "--dataDir", dataDir, "show", "capability", "nope"); !errors.Is(err, capability.ErrUnknownCapability) {
		t.Fatalf("expected ErrUnknownCapability, got %v", err)
	}
}

func TestListCapabilitiesCommand(t *testing.T) {
	dataDir, configPath := writeDataDir(t)

	out, err := run(t, "--config", configPath, "--dataDir", dataDir, "list", "capabilities")
	if err != nil {
		t.Fatalf("list capabilities: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[0], "code_generation") {
		t.Fatalf("unexpected listing:\n%s", out)
	}
}
