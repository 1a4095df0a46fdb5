package capdash

import (
	"github.com/mwiater/capdash/internal/appconfig"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// showConfigCmd implements the 'show config' command, which displays the current configuration settings.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON configs are loaded properly and overridden by flags and CAPDASH_* environment variables accordingly.`,
	Run: func(cmd *cobra.Command, args []string) {
		fallback := appconfig.Config{
			Debug:   viper.GetBool("debug"),
			LogFile: viper.GetString("logFile"),
			DataDir: viper.GetString("dataDir"),
		}
		appconfig.ShowConfig(cmd.OutOrStdout(), viper.ConfigFileUsed(), currentConfig, fallback)
	},
}

func init() {
	showCmd.AddCommand(showConfigCmd)
}
