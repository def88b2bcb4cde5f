package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/wxglade/wxglade/errors"
	"github.com/wxglade/wxglade/logger"
	"github.com/wxglade/wxglade/prefs"
	"github.com/wxglade/wxglade/widget"
	"github.com/wxglade/wxglade/widgets"
)

// skipPrefs marks commands that must run with broken preferences.
const skipPrefs = "skip-prefs"

// loaded holds the preferences of the running command.
var loaded *prefs.Config

// Setup loads the preferences and initializes the global logger. The -v
// count and --json-log override the log section of the preferences.
func Setup(cmd *cobra.Command) error {
	verbosity, _ := cmd.Flags().GetCount("verbose")
	jsonLog, _ := cmd.Flags().GetBool("json-log")

	cfg, err := prefs.Load()
	if err != nil {
		if !skipsPrefs(cmd) {
			return errors.WithHint(err, "fix the file or run 'wxglade prefs validate' to see where it comes from")
		}
		cfg = nil
	}
	if cfg != nil {
		if verbosity == 0 {
			verbosity = cfg.Log.Verbosity
		}
		jsonLog = jsonLog || cfg.Log.JSON
	}
	if err := logger.Initialize(jsonLog, verbosity); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	loaded = cfg
	return nil
}

func skipsPrefs(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipPrefs] != "" {
			return true
		}
	}
	return false
}

// currentPrefs returns the loaded preferences, or the built-in defaults
// when Setup did not run.
func currentPrefs() *prefs.Config {
	if loaded != nil {
		return loaded
	}
	cfg, err := prefs.LoadSources(prefs.Sources{})
	if err != nil {
		// defaults are valid
		panic(err)
	}
	return cfg
}

func newRegistry() (*widget.Registry, error) {
	reg, err := widgets.NewRegistry()
	if err != nil {
		return nil, errors.Wrap(err, "failed to register widget classes")
	}
	return reg, nil
}

// PrintError writes err and its hints for the user.
func PrintError(w io.Writer, err error) {
	fmt.Fprintln(w, pterm.Red("Error: ")+errors.Message(err))
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintln(w, pterm.Gray("  hint: ")+hint)
	}
	if logger.Verbosity >= logger.VerbosityDebug {
		fmt.Fprintf(w, "%+v\n", err)
	}
}

func printWarnings(warnings []string) {
	if !logger.ShouldOutput(logger.Verbosity, logger.OutputWarnings) {
		return
	}
	for _, w := range warnings {
		pterm.Warning.Println(w)
	}
}

func indentLines(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
