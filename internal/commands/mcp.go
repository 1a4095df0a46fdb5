// internal/commands/mcp.go
package capdash

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/mwiater/capdash/internal/mcpserver"
	"github.com/spf13/cobra"
)

// mcpCmd serves the capability tools over MCP stdio.
var mcpCmd = &cobra.Command{
	Use:         "mcp",
	Short:       "Serve capability tools over MCP (stdio)",
	Long:        `Expose list_capabilities, capability_stats, dataset_summary and capability_figure as MCP tools on stdin/stdout.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationStdout: stdoutProtocol},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		snap, st, err := openSnapshot(ctx, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		srv := mcpserver.New(snap, cfg.DefaultCapabilities(), Version())
		return srv.Serve(ctx, os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
