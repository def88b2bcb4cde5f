package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/wxglade/wxglade/codegen"
	"github.com/wxglade/wxglade/codegen/langs"
	"github.com/wxglade/wxglade/errors"
	"github.com/wxglade/wxglade/history"
	"github.com/wxglade/wxglade/logger"
	"github.com/wxglade/wxglade/prefs"
	"github.com/wxglade/wxglade/project"
)

// GenerateCmd represents the generate command
var GenerateCmd = &cobra.Command{
	Use:   "generate <project.wxg>",
	Short: "Generate source code from a project",
	Long: `Generate source code for every top-level window of a project.

Code between "begin wxGlade" and "end wxGlade" markers in existing files is
kept unless the project sets overwrite. Files whose content did not change
are not rewritten.

Flags override the options stored in the project file.

Examples:
  wxglade generate app.wxg                     # Use the project's options
  wxglade generate app.wxg --language C++      # Generate C++ instead
  wxglade generate app.wxg -o src/ --multiple-files
  wxglade generate app.wxg --watch             # Regenerate on every save`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

var generateWatch bool

func init() {
	addOverrideFlags(GenerateCmd.Flags())
	GenerateCmd.Flags().BoolVarP(&generateWatch, "watch", "w", false, "Regenerate whenever the project file changes")
}

// addOverrideFlags registers the flags that override project options.
func addOverrideFlags(fs *pflag.FlagSet) {
	fs.StringP("language", "l", "", "Output language: python, C++, perl, lisp, XRC")
	fs.StringP("output", "o", "", "Output file, or directory with --multiple-files")
	fs.Bool("multiple-files", false, "Write one file per top-level class")
	fs.Bool("overwrite", false, "Discard user code in existing files")
	fs.String("for-version", "", "Target toolkit version, e.g. 2.8 or 3.0")
}

// applyOverrides copies the flags the user set onto the project options.
func applyOverrides(fs *pflag.FlagSet, o *project.Options) {
	if fs.Changed("language") {
		o.Language, _ = fs.GetString("language")
	}
	if fs.Changed("output") {
		o.OutputPath, _ = fs.GetString("output")
	}
	if fs.Changed("multiple-files") {
		o.MultipleFiles, _ = fs.GetBool("multiple-files")
	}
	if fs.Changed("overwrite") {
		o.Overwrite, _ = fs.GetBool("overwrite")
	}
	if fs.Changed("for-version") {
		o.ForVersion, _ = fs.GetString("for-version")
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := currentPrefs()
	if generateWatch {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return watchProject(ctx, args[0], cmd.Flags(), cfg, cmd.OutOrStdout())
	}
	_, err := generateFile(cmd.Context(), args[0], cmd.Flags(), cfg, cmd.OutOrStdout())
	return err
}

// newEngine builds an engine configured from the preferences.
func newEngine(cfg *prefs.Config, extra ...codegen.Option) *codegen.Engine {
	opts := []codegen.Option{
		codegen.WithLogger(logger.Logger),
		codegen.WithHeaderComment(cfg.Codegen.HeaderComment),
		codegen.WithTimestamp(cfg.Codegen.WriteTimestamp),
		codegen.WithBackups(cfg.Codegen.BackupFiles),
	}
	return codegen.NewEngine(langs.Default(), append(opts, extra...)...)
}

// progressBar shows one step per top-level class. The bar is created on the
// first callback since the class count is not known before.
type progressBar struct {
	bar *pterm.ProgressbarPrinter
}

func (p *progressBar) update(done, total int, class string) {
	if p.bar == nil {
		p.bar, _ = pterm.DefaultProgressbar.WithTotal(total).WithTitle("Generating").WithRemoveWhenDone(true).Start()
		if p.bar == nil {
			return
		}
	}
	p.bar.UpdateTitle("Generating " + class)
	p.bar.Increment()
}

func (p *progressBar) stop() {
	if p.bar != nil {
		p.bar.Stop()
	}
}

// generateFile loads a project, applies the overrides, generates and writes
// its files and records the pass in the history.
func generateFile(ctx context.Context, path string, fs *pflag.FlagSet, cfg *prefs.Config, out io.Writer) (*codegen.Result, error) {
	reg, err := newRegistry()
	if err != nil {
		return nil, err
	}
	p, err := project.LoadFile(path, reg)
	if err != nil {
		return nil, err
	}
	applyOverrides(fs, &p.Options)

	var extra []codegen.Option
	bar := &progressBar{}
	if logger.ShouldOutput(logger.Verbosity, logger.OutputProgress) && !logger.JSONOutput {
		extra = append(extra, codegen.WithProgress(bar.update))
	}
	e := newEngine(cfg, extra...)

	started := time.Now()
	res, genErr := e.GenerateCode(p)
	bar.stop()
	recordRun(ctx, cfg, path, p.Options.Language, started, res, genErr)
	if genErr != nil {
		return res, genErr
	}

	printWarnings(res.Warnings)
	printResult(out, res)
	return res, nil
}

func printResult(out io.Writer, res *codegen.Result) {
	for _, f := range res.Files {
		switch f.Status {
		case codegen.StatusWritten:
			line := "wrote " + f.Path
			if n := len(f.Preserved); n > 0 {
				line += fmt.Sprintf(" (%d user regions kept)", n)
			}
			fmt.Fprintln(out, pterm.Green("✓ ")+line)
		case codegen.StatusUnchanged:
			if logger.ShouldOutput(logger.Verbosity, logger.OutputUnchanged) {
				fmt.Fprintln(out, pterm.Gray("= unchanged "+f.Path))
			}
		}
	}
}

// recordRun stores the pass in the history database. Failures to record are
// logged and do not fail the command.
func recordRun(ctx context.Context, cfg *prefs.Config, path, language string, started time.Time, res *codegen.Result, genErr error) {
	if !cfg.History.Enabled {
		return
	}
	dbPath := cfg.HistoryPath()
	if dbPath == "" {
		return
	}
	log := logger.Named("history")
	store, err := history.Open(dbPath, log)
	if err != nil {
		log.Warnw("failed to open history", "path", dbPath, "error", err)
		return
	}
	defer store.Close()

	finished := time.Now()
	var run history.Run
	if genErr != nil || res == nil {
		if genErr == nil {
			genErr = errors.New("no result")
		}
		run = history.FailedRun(path, language, started, finished, genErr)
	} else {
		run = history.NewRun(path, res, finished)
	}
	if err := store.Record(ctx, run); err != nil {
		log.Warnw("failed to record generation", "run_id", run.ID, "error", err)
	}
}

// watchProject generates once and then again after every change of the
// project file, until ctx is done.
func watchProject(ctx context.Context, path string, fs *pflag.FlagSet, cfg *prefs.Config, out io.Writer) error {
	regenerate := func(string) error {
		_, err := generateFile(ctx, path, fs, cfg, out)
		if err != nil {
			PrintError(out, err)
		}
		return err
	}
	_ = regenerate(path)

	w, err := project.NewWatcher(path, logger.Logger)
	if err != nil {
		return err
	}
	w.OnChange(regenerate)
	w.Start()
	pterm.Info.Printfln("Watching %s, press Ctrl+C to stop", path)

	select {
	case <-ctx.Done():
	case <-w.Done():
	}
	return w.Stop()
}
