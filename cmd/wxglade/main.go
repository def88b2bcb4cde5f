package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/wxglade/wxglade/cmd/wxglade/commands"
	"github.com/wxglade/wxglade/logger"
)

var rootCmd = &cobra.Command{
	Use:   "wxglade",
	Short: "wxglade - Code generator for wxWidgets GUI designs",
	Long: `wxglade - Generate wxWidgets source code from .wxg project files.

A project describes top-level windows, their widgets, sizers and event
handlers. wxglade turns it into Python, C++, Perl, Lisp or XRC, keeping the
code you wrote between the "begin wxGlade" and "end wxGlade" markers.

Available commands:
  generate - Generate source code from a project
  check    - Check that generated files are up to date
  convert  - Convert an XRC resource into a project
  project  - Inspect project files
  widgets  - List widget classes
  prefs    - Manage preferences
  history  - Show recent generation runs

Examples:
  wxglade generate app.wxg              # Generate using the project's options
  wxglade generate app.wxg -l C++ -o .  # Override language and output
  wxglade check app.wxg                 # Fail when generated files are stale
  wxglade history                       # Recent runs`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return commands.Setup(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json-log", false, "Write logs as JSON lines to stderr")

	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.CheckCmd)
	rootCmd.AddCommand(commands.ConvertCmd)
	rootCmd.AddCommand(commands.ProjectCmd)
	rootCmd.AddCommand(commands.WidgetsCmd)
	rootCmd.AddCommand(commands.PrefsCmd)
	rootCmd.AddCommand(commands.HistoryCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	err := rootCmd.Execute()
	logger.Cleanup()
	if err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
