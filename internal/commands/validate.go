// internal/commands/validate.go
package capdash

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/fatih/color"
	"github.com/mwiater/capdash/internal/appconfig"
	"github.com/mwiater/capdash/internal/benchmarks"
	"github.com/mwiater/capdash/internal/capability"
	"github.com/mwiater/capdash/internal/datafile"
	"github.com/mwiater/capdash/internal/summary"
	"github.com/mwiater/capdash/internal/tabular"
	"github.com/mwiater/capdash/internal/util"
	"github.com/spf13/cobra"
)

// ErrValidationFailed is returned by the validate command when any check fails.
var ErrValidationFailed = errors.New("validation failed")

var (
	passResult = color.New(color.FgGreen).SprintFunc()
	failResult = color.New(color.FgRed).SprintFunc()
	skipResult = color.New(color.FgYellow).SprintFunc()
)

type checkStatus int

const (
	checkPass checkStatus = iota
	checkFail
	checkSkip
)

type check struct {
	name   string
	path   string
	status checkStatus
	err    error
}

// validateCmd schema-checks the configuration and data documents.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and data files",
	Long: `Check the config file, the dataset summary, the capability heights document,
the tabular dataset and the benchmark tables. Missing optional inputs are
skipped. Exits non-zero when any check fails.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		checks := runChecks(cfgFile, GetConfig())
		failed := printChecks(cmd.OutOrStdout(), checks)
		if failed > 0 {
			return fmt.Errorf("%w: %d check(s) failed", ErrValidationFailed, failed)
		}
		return nil
	},
}

func runChecks(configPath string, cfg *appconfig.Config) []check {
	var checks []check

	c := check{name: "config", path: configPath}
	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		c.status, c.err = checkSkip, fmt.Errorf("%w: %s", datafile.ErrFileNotFound, configPath)
	} else if _, err := appconfig.Load(configPath); err != nil {
		c.status, c.err = checkFail, err
	}
	checks = append(checks, c)

	checks = append(checks, required("summary", cfg.SummaryFilePath(), func(path string) error {
		data, err := datafile.Read(path)
		if err != nil {
			return err
		}
		if err := datafile.Validate(path, summary.Schema, data); err != nil {
			return err
		}
		_, err = summary.Load(path)
		return err
	}))

	checks = append(checks, required("capabilities", cfg.HeightsFilePath(), func(path string) error {
		_, err := capability.Load(path)
		return err
	}))

	checks = append(checks, optional("table", cfg.TableFilePath(), func(path string) error {
		_, err := tabular.Load(path)
		return err
	}))

	checks = append(checks, optional("benchmarks", cfg.BenchmarkDirPath(), func(path string) error {
		_, err := benchmarks.LoadDir(path)
		return err
	}))

	return checks
}

func required(name, path string, fn func(string) error) check {
	c := check{name: name, path: path}
	if err := fn(path); err != nil {
		c.status, c.err = checkFail, err
	}
	return c
}

// optional is like required but a missing file is a skip.
func optional(name, path string, fn func(string) error) check {
	c := required(name, path, fn)
	if errors.Is(c.err, datafile.ErrFileNotFound) {
		c.status = checkSkip
	}
	return c
}

func printChecks(out io.Writer, checks []check) int {
	failed := 0
	for _, c := range checks {
		switch c.status {
		case checkPass:
			fmt.Fprintf(out, "%s  %-12s %s\n", passResult("PASS"), c.name, c.path)
		case checkSkip:
			fmt.Fprintf(out, "%s  %-12s %s (%v)\n", skipResult("SKIP"), c.name, c.path, c.err)
		default:
			failed++
			fmt.Fprintf(out, "%s  %-12s %s\n%s\n", failResult("FAIL"), c.name, c.path, util.Indent(util.WrapToWidth(c.err.Error(), 72), "      "))
		}
	}
	return failed
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
