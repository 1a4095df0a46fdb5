// internal/commands/list_commands.go
package capdash

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// CommandInfo holds the path and description of a command for display.
type CommandInfo struct {
	Path        string
	Description string
}

// commandsCmd implements 'list commands', printing the command tree with
// the path in the first column and its short description in the second.
var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List all commands and subcommands in two columns",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ListCommands(cmd.OutOrStdout(), collectCommandData(rootCmd, "", ""))
	},
}

func init() {
	listCmd.AddCommand(commandsCmd)
}

// collectCommandData flattens the command tree into indented path and
// description pairs. Hidden, help and completion commands are skipped.
func collectCommandData(cmd *cobra.Command, currentPath string, indent string) []CommandInfo {
	if cmd.Hidden || cmd.Name() == "help" || cmd.Name() == "completion" {
		return nil
	}

	fullPath := cmd.Name()
	if currentPath != "" {
		fullPath = currentPath + " " + cmd.Name()
	}

	all := []CommandInfo{{Path: indent + fullPath, Description: cmd.Short}}
	for _, sub := range cmd.Commands() {
		all = append(all, collectCommandData(sub, fullPath, indent+"  ")...)
	}
	return all
}

// ListCommands prints the command tree in a two-column layout.
func ListCommands(out io.Writer, commands []CommandInfo) {
	width := 0
	for _, c := range commands {
		width = max(width, len(c.Path))
	}

	fmt.Fprintln(out, "Commands and Subcommands:")
	for _, c := range commands {
		fmt.Fprintf(out, "  %s%s%s\n", c.Path, strings.Repeat(" ", width-len(c.Path)+2), c.Description)
	}
}
