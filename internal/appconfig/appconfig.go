// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// legacyConfigPath is the path to the configuration file used in previous versions.
	legacyConfigPath = "config.json"
	// defaultDataDir holds the precomputed data artifacts.
	defaultDataDir = "data"
	// defaultListenAddr is where the dashboard listens when none is configured.
	defaultListenAddr = "127.0.0.1:8050"
	// defaultCacheTTL matches the one-day lifetime of cached capability documents.
	defaultCacheTTL = 24 * time.Hour
)

// DefaultSelection is the capability selection shown on first load.
var DefaultSelection = []string{"code_generation", "physical_intuition", "scientific_reasoning"}

// Config represents the top-level application configuration.
type Config struct {
	Debug            bool     `json:"debug" mapstructure:"debug"`
	LogFile          string   `json:"logFile,omitempty" mapstructure:"logFile"`
	DataDir          string   `json:"dataDir,omitempty" mapstructure:"dataDir"`
	SummaryFile      string   `json:"summaryFile,omitempty" mapstructure:"summaryFile"`
	HeightsFile      string   `json:"heightsFile,omitempty" mapstructure:"heightsFile"`
	TableFile        string   `json:"tableFile,omitempty" mapstructure:"tableFile"`
	BenchmarkDir     string   `json:"benchmarkDir,omitempty" mapstructure:"benchmarkDir"`
	GraphsDir        string   `json:"graphsDir,omitempty" mapstructure:"graphsDir"`
	StaticDir        string   `json:"staticDir,omitempty" mapstructure:"staticDir"`
	CacheDir         string   `json:"cacheDir,omitempty" mapstructure:"cacheDir"`
	CacheTTLSeconds  int      `json:"cacheTTL,omitempty" mapstructure:"cacheTTL"`
	Addr             string   `json:"addr,omitempty" mapstructure:"addr"`
	DefaultSelection []string `json:"defaultSelection,omitempty" mapstructure:"defaultSelection"`
	ConfigPath       string   `json:"-" mapstructure:"-"`
}

// DataDirPath returns the data directory, applying a default if not set.
func (c Config) DataDirPath() string {
	if dir := strings.TrimSpace(c.DataDir); dir != "" {
		return dir
	}
	return defaultDataDir
}

func (c Config) inData(path, name string) string {
	if p := strings.TrimSpace(path); p != "" {
		return p
	}
	return filepath.Join(c.DataDirPath(), name)
}

// SummaryFilePath returns the dataset summary document.
func (c Config) SummaryFilePath() string { return c.inData(c.SummaryFile, "data_summary.json") }

// HeightsFilePath returns the capability heights document.
func (c Config) HeightsFilePath() string {
	return c.inData(c.HeightsFile, "capability_heights.json")
}

// TableFilePath returns the tabular dataset (.csv or .xlsx).
func (c Config) TableFilePath() string { return c.inData(c.TableFile, "restaurants.csv") }

// BenchmarkDirPath returns the directory of per-benchmark CSV files.
func (c Config) BenchmarkDirPath() string {
	return c.inData(c.BenchmarkDir, "epoch_benchmark_data")
}

// GraphsDirPath returns the directory of pre-rendered benchmark pages.
func (c Config) GraphsDirPath() string {
	if p := strings.TrimSpace(c.GraphsDir); p != "" {
		return p
	}
	return "graphs"
}

// StaticDirPath returns the directory served under /static/.
func (c Config) StaticDirPath() string {
	if p := strings.TrimSpace(c.StaticDir); p != "" {
		return p
	}
	return "static"
}

// CacheDirPath returns the SQLite cache directory. Empty means in-memory.
func (c Config) CacheDirPath() string {
	return strings.TrimSpace(c.CacheDir)
}

// CacheTTL returns the cache lifetime, falling back to one day.
func (c Config) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return defaultCacheTTL
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// ListenAddr returns the dashboard listen address.
func (c Config) ListenAddr() string {
	if a := strings.TrimSpace(c.Addr); a != "" {
		return a
	}
	return defaultListenAddr
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "capdash.log"
}

// DefaultCapabilities returns the configured initial selection or DefaultSelection.
func (c Config) DefaultCapabilities() []string {
	src := c.DefaultSelection
	if len(src) == 0 {
		src = DefaultSelection
	}
	return append([]string(nil), src...)
}

// Validate reports settings that cannot be used.
func (c Config) Validate() error {
	if c.CacheTTLSeconds < 0 {
		return fmt.Errorf("cacheTTL must not be negative, got %d", c.CacheTTLSeconds)
	}
	for i, name := range c.DefaultSelection {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("defaultSelection[%d] is empty", i)
		}
	}
	return nil
}

// Load reads the application configuration from the specified path, with fallback to a legacy path.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err == nil {
		if err := config.Validate(); err != nil {
			return Config{}, fmt.Errorf("invalid config %q: %w", path, err)
		}
		config.ConfigPath = path
		return config, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		if path == DefaultConfigPath {
			config, legacyErr := loadFromPath(legacyConfigPath)
			if legacyErr == nil {
				config.ConfigPath = legacyConfigPath
				return config, config.Validate()
			}
			if errors.Is(legacyErr, os.ErrNotExist) {
				return Config{}, fmt.Errorf("no configuration file found (searched %q and %q)", DefaultConfigPath, legacyConfigPath)
			}
			return Config{}, fmt.Errorf("could not read config file %q: %w", legacyConfigPath, legacyErr)
		}
		return Config{}, fmt.Errorf("no configuration file found at %q", path)
	}

	return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	return config, nil
}
