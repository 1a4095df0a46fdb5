// internal/commands/serve.go
package capdash

import (
	"os/signal"
	"syscall"

	"github.com/mwiater/capdash/internal/dashboard"
	"github.com/mwiater/capdash/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serveCmd starts the dashboard web server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the capability dashboard",
	Long: `Load the capability, tabular and benchmark data once, copy the tabular
records into the SQLite store and serve the dashboard pages and JSON API until
interrupted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		snap, st, err := openSnapshot(ctx, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Records().Load(ctx, snap.Table); err != nil {
			return err
		}
		if n, err := st.Cache().Purge(ctx); err == nil && n > 0 {
			logging.LogDebug("purged %d expired cache entries", n)
		}

		srv := dashboard.New(snap, dashboard.Options{
			DefaultSelection: cfg.DefaultCapabilities(),
			GraphsDir:        cfg.GraphsDirPath(),
			StaticDir:        cfg.StaticDirPath(),
			Records:          st.Records(),
		})
		return srv.ListenAndServe(ctx, cfg.ListenAddr())
	},
}

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default 127.0.0.1:8050)")
	_ = viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))
	rootCmd.AddCommand(serveCmd)
}
