package appconfig

import (
	"fmt"
	"io"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config, fallback Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	fmt.Fprintln(out, "Current configuration:")
	if cfg == nil {
		cfg = &fallback
	}

	fmt.Fprintf(out, "  Debug:             %v\n", cfg.Debug)
	fmt.Fprintf(out, "  Log File:          %s\n", cfg.LogFilePath())
	fmt.Fprintf(out, "  Data Dir:          %s\n", cfg.DataDirPath())
	fmt.Fprintf(out, "  Summary File:      %s\n", cfg.SummaryFilePath())
	fmt.Fprintf(out, "  Heights File:      %s\n", cfg.HeightsFilePath())
	fmt.Fprintf(out, "  Table File:        %s\n", cfg.TableFilePath())
	fmt.Fprintf(out, "  Benchmark Dir:     %s\n", cfg.BenchmarkDirPath())
	fmt.Fprintf(out, "  Graphs Dir:        %s\n", cfg.GraphsDirPath())
	fmt.Fprintf(out, "  Static Dir:        %s\n", cfg.StaticDirPath())
	if dir := cfg.CacheDirPath(); dir != "" {
		fmt.Fprintf(out, "  Cache Dir:         %s\n", dir)
	} else {
		fmt.Fprintln(out, "  Cache Dir:         (in-memory)")
	}
	fmt.Fprintf(out, "  Cache TTL:         %s\n", cfg.CacheTTL())
	fmt.Fprintf(out, "  Listen Addr:       %s\n", cfg.ListenAddr())
	fmt.Fprintf(out, "  Default Selection: %v\n", cfg.DefaultCapabilities())
}
