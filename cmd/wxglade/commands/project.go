package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/wxglade/wxglade/project"
	"github.com/wxglade/wxglade/widget"
)

// ProjectCmd represents the project command
var ProjectCmd = &cobra.Command{
	Use:   "project",
	Short: "Inspect project files",
	Long: `Inspect and export project files.

Examples:
  wxglade project show app.wxg                 # Widget tree
  wxglade project show app.wxg --format yaml   # Export as YAML
  wxglade project validate app.wxg`,
}

var projectShowCmd = &cobra.Command{
	Use:   "show <project.wxg>",
	Short: "Show a project",
	Long:  "Show the widget tree of a project, or export it as wxg, yaml, json or toml",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return showProject(cmd.OutOrStdout(), args[0], projectFormat)
	},
}

var projectValidateCmd = &cobra.Command{
	Use:   "validate <project.wxg>",
	Short: "Validate a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProject(args[0])
		if err != nil {
			return err
		}
		if err := p.Validate(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), pterm.Green("✓ ")+args[0]+" is valid")
		return nil
	},
}

var projectFormat string

func init() {
	projectShowCmd.Flags().StringVarP(&projectFormat, "format", "f", "tree", "Output format: tree, wxg, yaml, json, toml")

	ProjectCmd.AddCommand(projectShowCmd)
	ProjectCmd.AddCommand(projectValidateCmd)
}

func loadProject(path string) (*project.Project, error) {
	reg, err := newRegistry()
	if err != nil {
		return nil, err
	}
	return project.LoadFile(path, reg)
}

func showProject(out io.Writer, path, format string) error {
	p, err := loadProject(path)
	if err != nil {
		return err
	}
	if format != "tree" {
		data, err := p.Export(format)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	o := p.Options
	fmt.Fprintf(out, "%s (%s, wx %s)\n", path, o.Language, o.ForVersion)
	if o.HasApplication() {
		fmt.Fprintf(out, "application %s (%s), top window %s\n", o.Name, o.Class, o.TopWindow)
	}
	for _, tl := range p.Toplevels() {
		printNode(out, tl, 0)
	}
	return nil
}

func printNode(out io.Writer, n *widget.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	label := n.Name() + " " + pterm.Gray(n.Class())
	if n.Klass != n.Class() {
		label += " " + pterm.Cyan(n.Klass)
	}
	if events := n.Events(); len(events) > 0 {
		label += pterm.Gray(fmt.Sprintf(" [%d handlers]", len(events)))
	}
	fmt.Fprintln(out, indent+label)
	for _, c := range n.Children() {
		printNode(out, c, depth+1)
	}
}
