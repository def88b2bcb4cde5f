package codegen_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wxglade/wxglade/codegen"
	"github.com/wxglade/wxglade/codegen/codegentest"
	"github.com/wxglade/wxglade/codegen/langs"
	"github.com/wxglade/wxglade/errors"
	"github.com/wxglade/wxglade/project"
	"github.com/wxglade/wxglade/widget"
)

func newProject(t *testing.T, language, path string) *project.Project {
	return codegentest.Project(t, language, path)
}

func addWidget(t *testing.T, p *project.Project, parent, class string) *widget.Node {
	return codegentest.Add(t, p, parent, class)
}

func newEngine(opts ...codegen.Option) *codegen.Engine {
	return codegen.NewEngine(langs.Default(), opts...)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestGeneratePython(t *testing.T) {
	out := filepath.Join(t.TempDir(), "Ogg1.py")
	p := newProject(t, "python", out)

	res, err := newEngine().GenerateCode(p)
	require.NoError(t, err)
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, []string{out}, res.Written())
	assert.Empty(t, res.Warnings)

	code := readFile(t, out)
	for _, want := range []string{
		"# generated by wxGlade ",
		"import wx\n",
		"# begin wxGlade user code: extracode\n# end wxGlade user code: extracode\n",
		"class MyFrame(wx.Frame):\n",
		`        kwds["style"] = kwds.get("style", 0) | wx.DEFAULT_FRAME_STYLE`,
		"        wx.Frame.__init__(self, *args, **kwds)\n",
		`        self.SetTitle("frame")`,
		"        sizer_1 = wx.BoxSizer(wx.VERTICAL)\n",
		`        self.button_1 = wx.Button(self, wx.ID_ANY, "button_1")`,
		`        self.text_ctrl_1 = wx.TextCtrl(self, wx.ID_ANY, "")`,
		"        sizer_1.Add(self.button_1, 0, 0, 0)\n",
		"        self.SetSizer(sizer_1)\n",
		"        sizer_1.Fit(self)\n",
		"        self.Bind(wx.EVT_BUTTON, self.on_button, self.button_1)\n",
		"    def on_button(self, event):\n",
		"        # begin wxGlade user code: MyFrame.on_button\n",
		"    # begin wxGlade user code: MyFrame.methods\n",
		"class MyApp(wx.App):\n",
		"        self.frame_1 = MyFrame(None, wx.ID_ANY, \"\")\n",
		"        self.frame_1.Show()\n",
		"    app = MyApp(0)\n",
	} {
		assert.Contains(t, code, want)
	}
	// children are added after they are created
	assert.Less(t, strings.Index(code, "self.text_ctrl_1 = "), strings.Index(code, "sizer_1.Add(self.button_1"))
}

func TestNestedPanelSizer(t *testing.T) {
	out := filepath.Join(t.TempDir(), "Ogg1.py")
	p := newProject(t, "python", out)
	panel := addWidget(t, p, "sizer_1", "wxPanel")
	inner := addWidget(t, p, panel.Name(), "wxBoxSizer")
	assert.Equal(t, "sizer_2", inner.Name())
	button := addWidget(t, p, inner.Name(), "wxButton")
	assert.Equal(t, "button_2", button.Name())

	files, _ := codegentest.Generate(t, p)
	code := files[out]
	for _, want := range []string{
		"        self.SetSizer(sizer_1)\n",
		"        panel_1 = wx.Panel(self, wx.ID_ANY)\n",
		"        sizer_2 = wx.BoxSizer(wx.VERTICAL)\n",
		"        self.button_2 = wx.Button(panel_1, wx.ID_ANY, \"button_2\")\n",
		"        sizer_2.Add(self.button_2, 0, 0, 0)\n",
		"        panel_1.SetSizer(sizer_2)\n",
		"        sizer_1.Add(panel_1, 0, 0, 0)\n",
	} {
		assert.Contains(t, code, want)
	}
	assert.NotContains(t, code, "sizer_2.Fit")
	// the panel gets its sizer before it is added to the outer one
	assert.Less(t, strings.Index(code, "sizer_2.Add(self.button_2"), strings.Index(code, "panel_1.SetSizer(sizer_2)"))
	assert.Less(t, strings.Index(code, "panel_1.SetSizer(sizer_2)"), strings.Index(code, "sizer_1.Add(panel_1"))
	assert.Less(t, strings.Index(code, "sizer_1.Add(panel_1"), strings.Index(code, "self.SetSizer(sizer_1)"))
}

func TestRegenerationPreservesUserCode(t *testing.T) {
	out := filepath.Join(t.TempDir(), "Ogg1.py")
	p := newProject(t, "python", out)
	e := newEngine()

	_, err := e.GenerateCode(p)
	require.NoError(t, err)

	code := readFile(t, out)
	code = strings.Replace(code,
		"        print(\"Event handler 'on_button' not implemented!\")\n        event.Skip()\n",
		"        self.Close()\n", 1)
	code = strings.Replace(code,
		"# begin wxGlade user code: extracode\n",
		"# begin wxGlade user code: extracode\nimport os\n", 1)
	require.NoError(t, os.WriteFile(out, []byte(code), 0644))

	addWidget(t, p, "sizer_1", "wxCheckBox")
	res, err := e.GenerateCode(p)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"extracode", "MyFrame.on_button", "MyFrame.init", "MyFrame.methods", "MyApp.init"},
		res.Files[0].Preserved)

	regenerated := readFile(t, out)
	assert.Contains(t, regenerated, "# begin wxGlade user code: extracode\nimport os\n# end wxGlade user code: extracode\n")
	assert.Contains(t, regenerated, "        # begin wxGlade user code: MyFrame.on_button\n        self.Close()\n")
	assert.NotContains(t, regenerated, "not implemented")
	assert.Contains(t, regenerated, `self.checkbox_1 = wx.CheckBox(self, wx.ID_ANY, "checkbox_1")`)
}

func TestOverwriteDiscardsUserCode(t *testing.T) {
	out := filepath.Join(t.TempDir(), "Ogg1.py")
	p := newProject(t, "python", out)
	e := newEngine()
	_, err := e.GenerateCode(p)
	require.NoError(t, err)

	code := strings.Replace(readFile(t, out),
		"# begin wxGlade user code: extracode\n", "# begin wxGlade user code: extracode\nimport os\n", 1)
	require.NoError(t, os.WriteFile(out, []byte(code), 0644))

	p.Options.Overwrite = true
	_, err = e.GenerateCode(p)
	require.NoError(t, err)
	assert.NotContains(t, readFile(t, out), "import os")
}

func TestBrokenMarkersWarn(t *testing.T) {
	out := filepath.Join(t.TempDir(), "Ogg1.py")
	p := newProject(t, "python", out)
	e := newEngine()
	_, err := e.GenerateCode(p)
	require.NoError(t, err)

	code := strings.Replace(readFile(t, out), "# end wxGlade user code: extracode\n", "", 1)
	require.NoError(t, os.WriteFile(out, []byte(code), 0644))

	res, err := e.Generate(p)
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "user code markers are broken")
}

func TestOrphanedRegionsWarn(t *testing.T) {
	out := filepath.Join(t.TempDir(), "Ogg1.py")
	p := newProject(t, "python", out)
	e := newEngine()
	_, err := e.GenerateCode(p)
	require.NoError(t, err)

	code := strings.Replace(readFile(t, out),
		"        print(\"Event handler 'on_button' not implemented!\")\n", "        self.Close()\n", 1)
	require.NoError(t, os.WriteFile(out, []byte(code), 0644))

	require.NoError(t, p.Root.Find("button_1").SetEvent("EVT_BUTTON", "on_press"))
	res, err := e.Generate(p)
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "MyFrame.on_button")
}

func TestUnmatchedRegionsWarn(t *testing.T) {
	out := filepath.Join(t.TempDir(), "Ogg1.py")
	p := newProject(t, "python", out)
	e := newEngine()

	require.NoError(t, os.WriteFile(out, []byte("print('hand written')\n"), 0644))
	res, err := e.Generate(p)
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "no user code markers found")

	empty := "# begin wxGlade user code: OldFrame.init\n# end wxGlade user code: OldFrame.init\n"
	require.NoError(t, os.WriteFile(out, []byte(empty), 0644))
	res, err = e.Generate(p)
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "none of the 1 user regions matched")

	kept := "# begin wxGlade user code: OldFrame.init\nx = 1\n# end wxGlade user code: OldFrame.init\n"
	require.NoError(t, os.WriteFile(out, []byte(kept), 0644))
	res, err = e.Generate(p)
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "OldFrame.init has no place in the new file")
}

func TestMultipleFilesPython(t *testing.T) {
	dir := t.TempDir()
	p := newProject(t, "python", dir)
	p.Options.MultipleFiles = true
	addWidget(t, p, "", "wxDialog")

	res, err := newEngine().GenerateCode(p)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "MyFrame.py"),
		filepath.Join(dir, "MyDialog.py"),
		filepath.Join(dir, "app.py"),
	}, res.Written())

	app := readFile(t, filepath.Join(dir, "app.py"))
	assert.Contains(t, app, "from MyFrame import MyFrame\n")
	assert.Contains(t, app, "class MyApp(wx.App):")
	assert.NotContains(t, app, "class MyFrame(")

	frame := readFile(t, filepath.Join(dir, "MyFrame.py"))
	assert.Contains(t, frame, "class MyFrame(wx.Frame):")
	assert.NotContains(t, frame, "class MyApp(")
	assert.NotContains(t, frame, "class MyDialog(")
}

func TestMultipleFilesCpp(t *testing.T) {
	dir := t.TempDir()
	p := newProject(t, "C++", dir)
	p.Options.MultipleFiles = true

	res, err := newEngine().GenerateCode(p)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "MyFrame.h"),
		filepath.Join(dir, "MyFrame.cpp"),
		filepath.Join(dir, "app_main.cpp"),
	}, res.Written())
	assert.Contains(t, readFile(t, filepath.Join(dir, "app_main.cpp")), `#include "MyFrame.h"`)
}

func TestSingleFileCpp(t *testing.T) {
	out := filepath.Join(t.TempDir(), "Ogg1.cpp")
	p := newProject(t, "C++", out)
	p.Options.HeaderExtension = ".hpp"
	p.Options.SourceExtension = ".cc"

	res, err := newEngine().GenerateCode(p)
	require.NoError(t, err)
	base := strings.TrimSuffix(out, ".cpp")
	assert.Equal(t, []string{base + ".hpp", base + ".cc"}, res.Written())
	assert.Contains(t, readFile(t, base+".cc"), `#include "Ogg1.hpp"`)
}

func TestMultipleFilesPerl(t *testing.T) {
	dir := t.TempDir()
	p := newProject(t, "perl", dir)
	p.Options.MultipleFiles = true

	res, err := newEngine().GenerateCode(p)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "MyFrame.pm"), filepath.Join(dir, "app.pl")}, res.Written())
}

func TestUnchangedFilesAreNotRewritten(t *testing.T) {
	out := filepath.Join(t.TempDir(), "Ogg1.py")
	p := newProject(t, "python", out)
	e := newEngine()
	_, err := e.GenerateCode(p)
	require.NoError(t, err)

	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(out, old, old))

	res, err := e.GenerateCode(p)
	require.NoError(t, err)
	assert.Empty(t, res.Written())
	assert.Equal(t, []string{out}, res.Unchanged())
	st, err := os.Stat(out)
	require.NoError(t, err)
	assert.True(t, st.ModTime().Equal(old))
}

func TestBackups(t *testing.T) {
	out := filepath.Join(t.TempDir(), "Ogg1.py")
	p := newProject(t, "python", out)
	e := newEngine(codegen.WithBackups(true))
	_, err := e.GenerateCode(p)
	require.NoError(t, err)
	assert.NoFileExists(t, out+".bak")
	first := readFile(t, out)

	addWidget(t, p, "sizer_1", "wxGauge")
	_, err = e.GenerateCode(p)
	require.NoError(t, err)
	assert.Equal(t, first, readFile(t, out+".bak"))
}

func TestBannerOptions(t *testing.T) {
	out := filepath.Join(t.TempDir(), "Ogg1.py")
	p := newProject(t, "python", out)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	e := newEngine(codegen.WithTimestamp(true), codegen.WithClock(func() time.Time { return now }),
		codegen.WithHeaderComment("Copyright ACME\nAll rights reserved\n"))

	res, err := e.Generate(p)
	require.NoError(t, err)
	code := string(res.Files[0].Content)
	assert.Contains(t, code, " on "+now.Format(time.RFC1123)+"\n")
	assert.Contains(t, code, "#\n# Copyright ACME\n# All rights reserved\n")
}

func TestTemplateRefused(t *testing.T) {
	p := newProject(t, "python", filepath.Join(t.TempDir(), "x.py"))
	p.Options.IsTemplate = true
	_, err := newEngine().Generate(p)
	require.Error(t, err)
	assert.Equal(t, "Code generation from a template is not possible", errors.Message(err))
}

func TestUnknownLanguage(t *testing.T) {
	_, err := langs.Default().New("cobol", codegen.Config{})
	require.Error(t, err)
	assert.Equal(t, errors.UnsupportedFeature, errors.KindOf(err))
}

func TestXRCRejectsEvents(t *testing.T) {
	p := newProject(t, "XRC", filepath.Join(t.TempDir(), "ui.xrc"))
	_, err := newEngine().Generate(p)
	require.Error(t, err)
	assert.Equal(t, errors.UnsupportedFeature, errors.KindOf(err))
	assert.Contains(t, errors.Message(err), "EVT_BUTTON")
}

func TestXRCSkipsApplication(t *testing.T) {
	out := filepath.Join(t.TempDir(), "ui.xrc")
	p := newProject(t, "XRC", out)
	require.NoError(t, p.Root.Find("button_1").SetEvent("EVT_BUTTON", ""))

	res, err := newEngine().GenerateCode(p)
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "application MyApp is not generated")
	assert.Contains(t, readFile(t, out), `<object class="wxFrame" name="frame_1" subclass="MyFrame">`)
}

func TestLispRejectsNewToolkit(t *testing.T) {
	p := newProject(t, "lisp", filepath.Join(t.TempDir(), "ui.lisp"))
	_, err := newEngine().Generate(p)
	require.Error(t, err)
	assert.Equal(t, "Lisp code generation is not supported for wx 3.0", errors.Message(err))

	p.Options.ForVersion = "2.8"
	_, err = newEngine().Generate(p)
	require.NoError(t, err)
}

func TestOutputPathCheckedFirst(t *testing.T) {
	dir := t.TempDir()
	p := newProject(t, "lisp", filepath.Join(dir, "missing", "ui.lisp"))
	_, err := newEngine().Generate(p)
	require.Error(t, err)
	assert.Equal(t, errors.OutputPath, errors.KindOf(err))

	p.Options.OutputPath = filepath.Join(dir, "ui.py")
	p.Options.Language = "cobol"
	_, err = newEngine().Generate(p)
	require.Error(t, err)
	assert.Equal(t, errors.InvalidOption, errors.KindOf(err))
}

func TestLispRejectsHyperlink(t *testing.T) {
	p := newProject(t, "lisp", filepath.Join(t.TempDir(), "ui.lisp"))
	p.Options.ForVersion = "2.8"
	addWidget(t, p, "sizer_1", "wxHyperlinkCtrl")

	_, err := newEngine().Generate(p)
	require.Error(t, err)
	assert.Equal(t, errors.UnsupportedFeature, errors.KindOf(err))
	assert.Contains(t, errors.Message(err), "wxHyperlinkCtrl")
}

func TestUnsupportedStylesWarn(t *testing.T) {
	p := newProject(t, "python", filepath.Join(t.TempDir(), "Ogg1.py"))
	p.Options.ForVersion = "2.8"
	require.NoError(t, p.Root.Find("button_1").SetProperty("style", "wxBU_NOTEXT"))

	res, err := newEngine().Generate(p)
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "wxBU_NOTEXT")
	assert.Contains(t, string(res.Files[0].Content), `wx.Button(self, wx.ID_ANY, "button_1")`)
}

func TestGenerateDoesNotTouchProject(t *testing.T) {
	p := newProject(t, "python", filepath.Join(t.TempDir(), "Ogg1.py"))
	before, err := p.Export(project.FormatJSON)
	require.NoError(t, err)
	_, err = newEngine().Generate(p)
	require.NoError(t, err)
	after, err := p.Export(project.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestProgress(t *testing.T) {
	p := newProject(t, "python", filepath.Join(t.TempDir(), "Ogg1.py"))
	addWidget(t, p, "", "wxDialog")

	var calls []string
	e := newEngine(codegen.WithProgress(func(done, total int, class string) {
		calls = append(calls, class)
		assert.Equal(t, 2, total)
	}))
	_, err := e.Generate(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"MyFrame", "MyDialog"}, calls)
}

func TestCheck(t *testing.T) {
	out := filepath.Join(t.TempDir(), "Ogg1.py")
	p := newProject(t, "python", out)
	e := newEngine()

	cr, err := e.Check(p)
	require.NoError(t, err)
	assert.False(t, cr.UpToDate)
	require.Len(t, cr.Differences, 1)
	assert.True(t, cr.Differences[0].Missing)

	_, err = e.GenerateCode(p)
	require.NoError(t, err)
	cr, err = e.Check(p)
	require.NoError(t, err)
	assert.True(t, cr.UpToDate)

	addWidget(t, p, "sizer_1", "wxGauge")
	cr, err = e.Check(p)
	require.NoError(t, err)
	require.Len(t, cr.Differences, 1)
	assert.Contains(t, cr.Differences[0].Diff, "+        self.gauge_1 = wx.Gauge(self, wx.ID_ANY, 10")
	assert.NoFileExists(t, out+".bak")
}
