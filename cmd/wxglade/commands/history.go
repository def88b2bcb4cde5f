package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/wxglade/wxglade/display"
	"github.com/wxglade/wxglade/errors"
	"github.com/wxglade/wxglade/history"
	"github.com/wxglade/wxglade/logger"
)

// HistoryCmd represents the history command
var HistoryCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Show recent generation runs",
	Long: `Show the generation runs recorded in the history database, newest first,
or the files of one run.

Examples:
  wxglade history                 # Last 20 runs
  wxglade history --limit 5
  wxglade history <run-id>        # Files written by one run`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

var historyLimit int

func init() {
	HistoryCmd.Flags().IntVar(&historyLimit, "limit", 20, "Number of runs to show")
	HistoryCmd.Flags().BoolP("json", "j", false, "Output as JSON")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := currentPrefs()
	path := cfg.HistoryPath()
	if path == "" {
		return errors.New("no history database configured")
	}
	store, err := history.Open(path, logger.Logger)
	if err != nil {
		return err
	}
	defer store.Close()

	asJSON := display.ShouldOutputJSON(cmd)
	if len(args) == 1 {
		return showRunFiles(cmd.Context(), cmd.OutOrStdout(), store, args[0], asJSON)
	}
	return showRuns(cmd.Context(), cmd.OutOrStdout(), store, historyLimit, asJSON)
}

func showRuns(ctx context.Context, out io.Writer, store *history.Store, limit int, asJSON bool) error {
	runs, err := store.Recent(ctx, limit)
	if err != nil {
		return err
	}
	if asJSON {
		return display.OutputJSON(out, runs)
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No generation runs recorded yet")
		return nil
	}
	data := pterm.TableData{{"Run", "Started", "Language", "Status", "Files", "Warnings", "Project"}}
	for _, r := range runs {
		status := string(r.Status)
		if r.Status == history.StatusFailed {
			status = pterm.Red(status)
		}
		data = append(data, []string{
			short(r.ID, 8),
			r.StartedAt.Local().Format(time.DateTime),
			r.Language,
			status,
			strconv.Itoa(r.FileCount),
			strconv.Itoa(r.Warnings),
			r.Project,
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(out).Render(); err != nil {
		return err
	}
	for _, r := range runs {
		if r.Error != "" {
			fmt.Fprintf(out, "%s: %s\n", short(r.ID, 8), r.Error)
		}
	}
	return nil
}

func showRunFiles(ctx context.Context, out io.Writer, store *history.Store, id string, asJSON bool) error {
	files, err := store.Files(ctx, id)
	if err != nil {
		return err
	}
	if asJSON {
		return display.OutputJSON(out, files)
	}
	if len(files) == 0 {
		return errors.WithHint(errors.Newf("no files recorded for run %s", id),
			"use the full run id shown by 'wxglade history --json'")
	}
	data := pterm.TableData{{"File", "Role", "Status", "Bytes", "Kept regions", "SHA-256"}}
	for _, f := range files {
		data = append(data, []string{
			f.Path, f.Role, f.Status, strconv.Itoa(f.Bytes), strconv.Itoa(f.Preserved), short(f.SHA256, 12),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(out).Render()
}

func short(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
