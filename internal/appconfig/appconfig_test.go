// internal/appconfig/appconfig_test.go
package appconfig

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// TestLoad covers a valid file, invalid JSON, an invalid value and a
// missing file.
func TestLoad(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `{
        "dataDir": "fixtures",
        "heightsFile": "custom/heights.json",
        "cacheTTL": 60,
        "addr": ":9000",
        "defaultSelection": ["a", "b"]
    }`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() with valid config failed: %v", err)
	}
	if cfg.ConfigPath != path {
		t.Fatalf("expected ConfigPath %s, got %s", path, cfg.ConfigPath)
	}
	if got := cfg.SummaryFilePath(); got != filepath.Join("fixtures", "data_summary.json") {
		t.Fatalf("unexpected summary path %s", got)
	}
	if got := cfg.HeightsFilePath(); got != "custom/heights.json" {
		t.Fatalf("explicit heights path not kept: %s", got)
	}
	if cfg.CacheTTL() != time.Minute {
		t.Fatalf("expected 1m cache ttl, got %v", cfg.CacheTTL())
	}
	if cfg.ListenAddr() != ":9000" {
		t.Fatalf("expected :9000, got %s", cfg.ListenAddr())
	}
	if got := cfg.DefaultCapabilities(); len(got) != 2 || got[0] != "a" {
		t.Fatalf("unexpected selection %v", got)
	}

	bad := writeConfig(t, t.TempDir(), `{ "dataDir": `)
	if _, err := Load(bad); err == nil {
		t.Fatal("Load() with invalid JSON should have failed")
	}

	negative := writeConfig(t, t.TempDir(), `{ "cacheTTL": -5 }`)
	if _, err := Load(negative); err == nil {
		t.Fatal("Load() with negative cacheTTL should have failed")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "nonexistent.json")); err == nil {
		t.Fatal("Load() with nonexistent file should have failed")
	}
}

func TestDefaults(t *testing.T) {
	var cfg Config
	if cfg.DataDirPath() != "data" {
		t.Fatalf("unexpected data dir %s", cfg.DataDirPath())
	}
	if cfg.TableFilePath() != filepath.Join("data", "restaurants.csv") {
		t.Fatalf("unexpected table path %s", cfg.TableFilePath())
	}
	if cfg.CacheTTL() != 24*time.Hour {
		t.Fatalf("expected one day ttl, got %v", cfg.CacheTTL())
	}
	if cfg.ListenAddr() != "127.0.0.1:8050" {
		t.Fatalf("unexpected addr %s", cfg.ListenAddr())
	}
	if cfg.LogFilePath() != "capdash.log" {
		t.Fatalf("unexpected log path %s", cfg.LogFilePath())
	}
	if cfg.CacheDirPath() != "" {
		t.Fatalf("expected in-memory cache by default")
	}

	sel := cfg.DefaultCapabilities()
	if strings.Join(sel, ",") != "code_generation,physical_intuition,scientific_reasoning" {
		t.Fatalf("unexpected default selection %v", sel)
	}
	sel[0] = "mutated"
	if DefaultSelection[0] != "code_generation" {
		t.Fatal("DefaultCapabilities must return a copy")
	}
}

func TestValidateEmptySelectionName(t *testing.T) {
	cfg := Config{DefaultSelection: []string{"ok", " "}}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for blank selection entry")
	}
}

func TestShowConfig(t *testing.T) {
	var buf bytes.Buffer
	ShowConfig(&buf, "", nil, Config{Debug: true, CacheDir: "cache"})
	out := buf.String()
	if !strings.Contains(out, "No config file loaded") {
		t.Fatalf("expected defaults notice, got %s", out)
	}
	if !strings.Contains(out, "Debug:             true") {
		t.Fatalf("expected fallback debug, got %s", out)
	}
	if !strings.Contains(out, "Cache Dir:         cache") {
		t.Fatalf("expected cache dir, got %s", out)
	}

	buf.Reset()
	ShowConfig(&buf, "config/config.json", &Config{}, Config{Debug: true})
	out = buf.String()
	if !strings.Contains(out, "Config file: config/config.json") || !strings.Contains(out, "(in-memory)") {
		t.Fatalf("unexpected output %s", out)
	}
}
