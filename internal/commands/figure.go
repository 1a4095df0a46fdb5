// internal/commands/figure.go
package capdash

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/mwiater/capdash/internal/figure"
	"github.com/mwiater/capdash/internal/logging"
	"github.com/mwiater/capdash/internal/render"
	"github.com/mwiater/capdash/internal/util"
	"github.com/spf13/cobra"
)

var (
	figureOutput string
	figurePNGDir string
)

// figureCmd writes the dashboard figure as plotly JSON and, optionally, PNGs.
var figureCmd = &cobra.Command{
	Use:   "figure [capability...]",
	Short: "Export the dashboard figure",
	Long: `Build the timeline, improvement and annual-growth panels for the named
capabilities (or the default selection) and write them as a plotly JSON
document. With --png-dir each non-empty panel is also rendered to PNG.`,
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
		spec, err := figure.Build(selected, ds)
		if err != nil {
			return err
		}

		data, err := spec.JSON()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if figureOutput == "" || figureOutput == "-" {
			_, err = fmt.Fprintln(out, string(data))
			if err != nil {
				return err
			}
		} else {
			if err := util.WriteFile(figureOutput, data); err != nil {
				return err
			}
			fmt.Fprintf(out, "Wrote %s\n", figureOutput)
		}

		if figurePNGDir == "" {
			return nil
		}
		for _, name := range render.PanelNames() {
			img, err := render.Panel(spec, name)
			if errors.Is(err, render.ErrEmptyPanel) {
				logging.LogEvent("skipping empty %s panel", name)
				continue
			}
			if err != nil {
				return err
			}
			path := filepath.Join(figurePNGDir, name+".png")
			if err := util.WriteFile(path, img); err != nil {
				return err
			}
			fmt.Fprintf(out, "Wrote %s\n", path)
		}
		return nil
	},
}

func init() {
	figureCmd.Flags().StringVarP(&figureOutput, "output", "o", "", "write the plotly JSON here instead of stdout")
	figureCmd.Flags().StringVar(&figurePNGDir, "png-dir", "", "also render each panel as PNG into this directory")
	rootCmd.AddCommand(figureCmd)
}
