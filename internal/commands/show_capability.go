package capdash

import (
	"fmt"

	"github.com/k0kubun/pp"
	"github.com/mwiater/capdash/internal/capability"
	"github.com/spf13/cobra"
)

type capabilityDump struct {
	Name         string
	Label        string
	Category     string
	Color        string
	Series       []capability.Point
	Improvement  float64
	AnnualGrowth *float64
	CurrentScore float64
}

// showCapabilityCmd dumps one capability record and its derived values.
var showCapabilityCmd = &cobra.Command{
	Use:   "capability <name>",
	Short: "Show one capability record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(GetConfig())
		if err != nil {
			return err
		}
		rec, err := ds.Get(args[0])
		if err != nil {
			return err
		}
		span, err := rec.Span()
		if err != nil {
			return err
		}

		dump := capabilityDump{
			Name:         rec.Name,
			Label:        capability.Label(rec.Name),
			Category:     rec.Category,
			Color:        capability.ColorFor(rec.Category),
			Series:       rec.Series(),
			Improvement:  span.Improvement(),
			CurrentScore: span.Current(),
		}
		if g, ok := span.AnnualGrowth(); ok {
			dump.AnnualGrowth = &g
		}
		_, err = pp.Fprintln(cmd.OutOrStdout(), dump)
		return err
	},
}

// listCapabilitiesCmd prints every capability name with its category.
var listCapabilitiesCmd = &cobra.Command{
	Use:   "capabilities",
	Short: "List capability names and categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(GetConfig())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, name := range ds.Names() {
			rec, err := ds.Get(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%-32s %s\n", name, rec.Category)
		}
		return nil
	},
}

func init() {
	showCmd.AddCommand(showCapabilityCmd)
	listCmd.AddCommand(listCapabilitiesCmd)
}
