package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/wxglade/wxglade/errors"
	"github.com/wxglade/wxglade/prefs"
	"github.com/wxglade/wxglade/project"
)

// ConvertCmd represents the convert command
var ConvertCmd = &cobra.Command{
	Use:   "convert <resource.xrc> [project.wxg]",
	Short: "Convert an XRC resource into a project",
	Long: `Build a project from an XRC resource file. Windows, sizers and their items
are converted; XRC elements without a project equivalent are skipped.

The output defaults to the input path with a .wxg extension. The new project
takes its language, toolkit version and indentation from the preferences.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := args[0]
		out := strings.TrimSuffix(in, filepath.Ext(in)) + ".wxg"
		if len(args) == 2 {
			out = args[1]
		}
		if err := convertFile(in, out, currentPrefs()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), pterm.Green("✓ ")+"wrote "+out)
		return nil
	},
}

func convertFile(in, out string, cfg *prefs.Config) error {
	if filepath.Clean(in) == filepath.Clean(out) {
		return errors.Newf("refusing to overwrite the input file %s", in)
	}
	reg, err := newRegistry()
	if err != nil {
		return err
	}
	return project.ConvertXRCFile(in, out, reg, func(o *project.Options) {
		applyPrefs(cfg, o)
	})
}

// applyPrefs sets the options a new project takes from the preferences.
func applyPrefs(cfg *prefs.Config, o *project.Options) {
	c := cfg.Codegen
	o.Language = c.DefaultLanguage
	o.ForVersion = c.ForVersion
	o.IndentAmount = c.IndentAmount
	o.IndentSymbol = c.IndentSymbol
}
