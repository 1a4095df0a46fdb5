// internal/commands/explore.go
package capdash

import (
	"fmt"
	"strings"

	"github.com/mwiater/capdash/internal/explorer"
	"github.com/spf13/cobra"
)

// exploreCmd opens the terminal checklist explorer.
var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Explore capabilities in a terminal checklist",
	Long:  `Toggle capabilities with space and watch the statistics panel update. Press q to quit; the final selection is printed on exit.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		ds, err := loadDataset(cfg)
		if err != nil {
			return err
		}
		selected, err := explorer.Run(cmd.Context(), ds, cfg.DefaultCapabilities())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Selected: %s\n", strings.Join(selected, ", "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exploreCmd)
}
