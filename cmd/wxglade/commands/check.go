package commands

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/wxglade/wxglade/codegen"
	"github.com/wxglade/wxglade/errors"
	"github.com/wxglade/wxglade/prefs"
	"github.com/wxglade/wxglade/project"
)

// CheckCmd represents the check command
var CheckCmd = &cobra.Command{
	Use:   "check <project.wxg>",
	Short: "Check that generated files are up to date",
	Long: `Regenerate a project in memory and compare the result with the files on
disk. Nothing is written. Differences are shown as unified diffs and the
command fails when any file is missing or stale, which makes it usable in CI.

The "generated by" banner line is ignored, so a timestamp alone does not
make a file stale.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		quiet, _ := cmd.Flags().GetBool("quiet")
		return checkFile(args[0], cmd.Flags(), currentPrefs(), cmd.OutOrStdout(), quiet)
	},
}

// ErrStale is returned by check when generated files differ from disk.
var ErrStale = errors.New("generated files are not up to date")

func init() {
	addOverrideFlags(CheckCmd.Flags())
	CheckCmd.Flags().BoolP("quiet", "q", false, "Only list stale files, without diffs")
}

func checkFile(path string, fs *pflag.FlagSet, cfg *prefs.Config, out io.Writer, quiet bool) error {
	reg, err := newRegistry()
	if err != nil {
		return err
	}
	p, err := project.LoadFile(path, reg)
	if err != nil {
		return err
	}
	applyOverrides(fs, &p.Options)

	res, err := newEngine(cfg).Check(p)
	if err != nil {
		return err
	}
	printWarnings(res.Result.Warnings)
	if res.UpToDate {
		fmt.Fprintln(out, pterm.Green("✓ ")+fmt.Sprintf("%d files up to date", len(res.Result.Files)))
		return nil
	}
	printDifferences(out, res.Differences, quiet)
	return errors.WithHintf(ErrStale, "run 'wxglade generate %s' to update them", path)
}

func printDifferences(out io.Writer, diffs []codegen.FileDiff, quiet bool) {
	for _, d := range diffs {
		if d.Missing {
			fmt.Fprintln(out, pterm.Yellow("✗ missing ")+d.Path)
			continue
		}
		fmt.Fprintln(out, pterm.Yellow("✗ stale ")+d.Path)
		if !quiet {
			fmt.Fprintln(out, indentLines(d.Diff, "  "))
		}
	}
}
