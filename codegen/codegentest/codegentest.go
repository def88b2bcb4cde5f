// Package codegentest provides project fixtures for generator tests.
package codegentest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wxglade/wxglade/codegen"
	"github.com/wxglade/wxglade/codegen/langs"
	"github.com/wxglade/wxglade/project"
	"github.com/wxglade/wxglade/widget"
	"github.com/wxglade/wxglade/widgets"
)

// Project returns a frame_1 (class MyFrame) holding sizer_1 with button_1
// and text_ctrl_1. button_1 binds EVT_BUTTON to on_button. The application
// is app of class MyApp.
func Project(t testing.TB, language, path string) *project.Project {
	t.Helper()
	reg, err := widgets.NewRegistry()
	require.NoError(t, err)
	p := project.New(reg)
	p.Options.Language = language
	p.Options.OutputPath = path
	p.Options.Name = "app"
	p.Options.Class = "MyApp"

	frame := Add(t, p, "", "wxFrame")
	Add(t, p, frame.Name(), "wxBoxSizer")
	button := Add(t, p, "sizer_1", "wxButton")
	require.NoError(t, button.SetEvent("EVT_BUTTON", "on_button"))
	Add(t, p, "sizer_1", "wxTextCtrl")
	p.Options.TopWindow = frame.Name()
	return p
}

// Add builds a widget of class at the end of parent; "" is the project root.
func Add(t testing.TB, p *project.Project, parent, class string) *widget.Node {
	t.Helper()
	at := p.Root
	if parent != "" {
		at = p.Root.Find(parent)
		require.NotNil(t, at, "no widget %s", parent)
	}
	n, err := p.Registry.Build(class, at, -1)
	require.NoError(t, err)
	return n
}

// Set sets a property of the named widget.
func Set(t testing.TB, p *project.Project, name, prop, value string) {
	t.Helper()
	n := p.Root.Find(name)
	require.NotNil(t, n, "no widget %s", name)
	require.NoError(t, n.SetProperty(prop, value))
}

// Generate renders p in memory and returns the content of each file by
// path.
func Generate(t testing.TB, p *project.Project, opts ...codegen.Option) (map[string]string, *codegen.Result) {
	t.Helper()
	res, err := codegen.NewEngine(langs.Default(), opts...).Generate(p)
	require.NoError(t, err)
	files := make(map[string]string, len(res.Files))
	for _, f := range res.Files {
		files[f.Path] = string(f.Content)
	}
	return files, res
}
