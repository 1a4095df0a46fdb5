// internal/commands/graphs.go
package capdash

import (
	"fmt"

	"github.com/mwiater/capdash/internal/benchmarks"
	"github.com/spf13/cobra"
)

// graphsCmd pre-renders one HTML page per benchmark table.
var graphsCmd = &cobra.Command{
	Use:   "graphs",
	Short: "Generate benchmark dashboard pages",
	Long: `Read every CSV in the benchmark directory and write a self-contained
<name>_dashboard.html page per table into the graphs directory. The dashboard
embeds these pages under /pages/<name>_dashboard.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		sets, err := benchmarks.LoadDir(cfg.BenchmarkDirPath())
		if err != nil {
			return err
		}
		paths, err := benchmarks.WriteReports(cfg.GraphsDirPath(), sets)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, p := range paths {
			fmt.Fprintf(out, "Wrote %s\n", p)
		}
		fmt.Fprintf(out, "Generated %d benchmark pages\n", len(paths))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphsCmd)
}
