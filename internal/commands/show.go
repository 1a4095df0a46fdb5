// internal/commands/show.go
package capdash

import (
	"github.com/spf13/cobra"
)

// showCmd groups commands that print loaded state.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show configuration and data",
}

// listCmd groups commands that enumerate things.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List commands and capabilities",
}

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(listCmd)
}
