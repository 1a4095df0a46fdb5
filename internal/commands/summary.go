// internal/commands/summary.go
package capdash

import (
	"fmt"

	"github.com/mwiater/capdash/internal/summary"
	"github.com/mwiater/capdash/internal/tabular"
	"github.com/spf13/cobra"
)

// summaryCmd prints the dataset summary totals.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print dataset summary counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		counts, err := summary.Load(GetConfig().SummaryFilePath())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Total Records:      %d\n", counts.TotalRecords)
		fmt.Fprintf(out, "Total Benchmarks:   %d\n", counts.TotalBenchmarks)
		fmt.Fprintf(out, "Total Capabilities: %d\n", counts.TotalCapabilities)
		return nil
	},
}

// overviewCmd prints the tabular dataset counts.
var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Print restaurant table counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := tabular.Load(GetConfig().TableFilePath())
		if err != nil {
			return err
		}
		s := tabular.Summarize(table)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Restaurants: %d\n", s.Restaurants)
		fmt.Fprintf(out, "Countries:   %d\n", s.Countries)
		fmt.Fprintf(out, "Cities:      %d\n", s.Cities)
		fmt.Fprintf(out, "Top Cuisine: %s\n", s.TopCuisine)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(overviewCmd)
}
