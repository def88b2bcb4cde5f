package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/wxglade/wxglade/errors"
	"github.com/wxglade/wxglade/style"
	"github.com/wxglade/wxglade/widget"
)

// WidgetsCmd represents the widgets command
var WidgetsCmd = &cobra.Command{
	Use:   "widgets [class]",
	Short: "List widget classes",
	Long: `List the widget classes known to the generator, or show the properties,
events and styles of one class.

Examples:
  wxglade widgets                              # All classes
  wxglade widgets wxButton                     # One class
  wxglade widgets wxButton --for-version 2.8   # Mark styles 2.8 lacks`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return listWidgets(cmd.OutOrStdout())
		}
		return showWidget(cmd.OutOrStdout(), args[0], widgetsForVersion)
	},
}

var widgetsForVersion string

func init() {
	WidgetsCmd.Flags().StringVar(&widgetsForVersion, "for-version", "", "Mark styles the toolkit version does not support")
}

var categoryNames = map[widget.Category]string{
	widget.CategoryToplevel:  "toplevel",
	widget.CategoryContainer: "container",
	widget.CategoryControl:   "control",
	widget.CategorySizer:     "sizer",
	widget.CategorySpacer:    "spacer",
}

func listWidgets(out io.Writer) error {
	reg, err := newRegistry()
	if err != nil {
		return err
	}
	data := pterm.TableData{{"Class", "Category", "Editor", "Events"}}
	for _, class := range reg.List() {
		info, _ := reg.Lookup(class)
		events := make([]string, len(info.Events))
		for i, e := range info.Events {
			events[i] = e.Name
		}
		data = append(data, []string{info.Class, categoryNames[info.Category], info.Editor, strings.Join(events, ", ")})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(out).Render()
}

func showWidget(out io.Writer, class, forVersion string) error {
	reg, err := newRegistry()
	if err != nil {
		return err
	}
	info, ok := reg.Lookup(class)
	if !ok {
		return errors.WithHint(errors.Newf("unknown widget class %q", class),
			"run 'wxglade widgets' for the list of classes")
	}
	fmt.Fprintf(out, "%s (%s)\n", info.Class, categoryNames[info.Category])

	data := pterm.TableData{{"Property", "Kind", "Default"}}
	for _, p := range info.Properties {
		data = append(data, []string{p.Name, p.Kind.String(), p.Default})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(out).Render(); err != nil {
		return err
	}

	if len(info.Events) > 0 {
		fmt.Fprintln(out, "\nEvents:")
		for _, e := range info.Events {
			fmt.Fprintf(out, "  %s (%s)\n", e.Name, e.Type)
		}
	}
	return showStyles(out, reg.Catalog(), info.Class, forVersion)
}

func showStyles(out io.Writer, catalog *style.Catalog, class, forVersion string) error {
	sc, ok := catalog.Class(class)
	if !ok || len(sc.Names()) == 0 {
		return nil
	}
	var version *semver.Version
	if forVersion != "" {
		var err error
		if version, err = style.ParseVersion(forVersion); err != nil {
			return err
		}
	}
	fmt.Fprintln(out, "\nStyles:")
	for _, name := range sc.Names() {
		def, _ := sc.Def(name)
		line := "  " + name
		switch {
		case def.Since != "" && def.Until != "":
			line += fmt.Sprintf(" (%s to %s)", def.Since, def.Until)
		case def.Since != "":
			line += " (since " + def.Since + ")"
		case def.Until != "":
			line += " (until " + def.Until + ")"
		}
		if version != nil && !def.SupportedBy(version) {
			line += pterm.Yellow(" not supported by " + forVersion)
		}
		fmt.Fprintln(out, line)
	}
	return nil
}
