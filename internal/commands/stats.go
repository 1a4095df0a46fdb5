// internal/commands/stats.go
package capdash

import (
	"fmt"

	"github.com/mwiater/capdash/internal/capability"
	"github.com/mwiater/capdash/internal/figure"
	"github.com/spf13/cobra"
)

// statsCmd prints the statistics panel for a selection.
var statsCmd = &cobra.Command{
	Use:   "stats [capability...]",
	Short: "Print selection statistics",
	Long: `Print the statistics panel (active count, average improvement, average
annual growth, score range) for the named capabilities, or for the configured
default selection when none are given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		ds, err := loadDataset(cfg)
		if err != nil {
			return err
		}
		selected, err := resolveSelection(ds, cfg, args)
		if err != nil {
			return err
		}
		stats, err := capability.CalculateStats(selected, ds)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, line := range figure.StatsPanel(stats, len(selected), ds.Len()) {
			fmt.Fprintln(out, line.String())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
