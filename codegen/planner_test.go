package codegen_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wxglade/wxglade/codegen"
	"github.com/wxglade/wxglade/codegen/langs"
	"github.com/wxglade/wxglade/errors"
	"github.com/wxglade/wxglade/project"
	"github.com/wxglade/wxglade/style"
)

func adapter(t *testing.T, language string) codegen.Adapter {
	t.Helper()
	a, err := langs.Default().New(language, codegen.Config{Version: style.MustVersion("2.8"), Indent: "    "})
	require.NoError(t, err)
	return a
}

func TestCheckOutput(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "existing.py")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	tests := []struct {
		name     string
		language string
		opts     func(o *project.Options)
		kind     errors.Kind
		message  string
	}{
		{
			name: "template", language: "python",
			opts:    func(o *project.Options) { o.IsTemplate = true; o.OutputPath = "" },
			kind:    errors.UnsupportedFeature,
			message: "Code generation from a template is not possible",
		},
		{
			name: "xrc multiple files", language: "XRC",
			opts:    func(o *project.Options) { o.MultipleFiles = true; o.OutputPath = dir },
			kind:    errors.UnsupportedFeature,
			message: "XRC code cannot be split into multiple files",
		},
		{
			name: "no path", language: "python",
			opts:    func(o *project.Options) { o.OutputPath = "" },
			kind:    errors.OutputPath,
			message: "No output path set",
		},
		{
			name: "multiple files into file", language: "python",
			opts:    func(o *project.Options) { o.MultipleFiles = true; o.OutputPath = file },
			kind:    errors.OutputPath,
			message: `Output path "` + file + `" must be an existing directory when generating multiple files`,
		},
		{
			name: "single file into directory", language: "python",
			opts:    func(o *project.Options) { o.OutputPath = dir },
			kind:    errors.OutputPath,
			message: `Output path "` + dir + `" can not be a directory when generating a single file`,
		},
		{
			name: "missing directory", language: "perl",
			opts:    func(o *project.Options) { o.OutputPath = filepath.Join(dir, "missing", "x.pl") },
			kind:    errors.OutputPath,
			message: `Directory "` + filepath.Join(dir, "missing") + `" of the output path must be an existing directory`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := project.DefaultOptions()
			tt.opts(&opts)
			err := codegen.CheckOutput(opts, adapter(t, tt.language))
			require.Error(t, err)
			assert.Equal(t, tt.kind, errors.KindOf(err))
			assert.Equal(t, tt.message, errors.Message(err))
		})
	}
}

func TestCheckOutputAccepts(t *testing.T) {
	dir := t.TempDir()
	opts := project.DefaultOptions()
	opts.OutputPath = filepath.Join(dir, "new.py")
	assert.NoError(t, codegen.CheckOutput(opts, adapter(t, "python")))

	opts.OutputPath = dir
	opts.MultipleFiles = true
	assert.NoError(t, codegen.CheckOutput(opts, adapter(t, "C++")))
}

func TestPlanFiles(t *testing.T) {
	tests := []struct {
		name     string
		language string
		multiple bool
		path     string
		app      string
		want     []string
		roles    []codegen.Role
	}{
		{
			name: "python single", language: "python", path: "/out/Ogg1.py", app: "app",
			want:  []string{"/out/Ogg1.py"},
			roles: []codegen.Role{codegen.RoleSource},
		},
		{
			name: "python multiple", language: "python", multiple: true, path: "/out", app: "app",
			want:  []string{"/out/MyFrame.py", "/out/MyDialog.py", "/out/app.py"},
			roles: []codegen.Role{codegen.RoleSource, codegen.RoleSource, codegen.RoleApp},
		},
		{
			name: "python multiple without app", language: "python", multiple: true, path: "/out",
			want:  []string{"/out/MyFrame.py", "/out/MyDialog.py"},
			roles: []codegen.Role{codegen.RoleSource, codegen.RoleSource},
		},
		{
			name: "cpp single", language: "C++", path: "/out/Ogg1.cpp", app: "app",
			want:  []string{"/out/Ogg1.h", "/out/Ogg1.cpp"},
			roles: []codegen.Role{codegen.RoleHeader, codegen.RoleSource},
		},
		{
			name: "cpp multiple", language: "C++", multiple: true, path: "/out", app: "app",
			want: []string{"/out/MyFrame.h", "/out/MyFrame.cpp", "/out/MyDialog.h", "/out/MyDialog.cpp", "/out/app_main.cpp"},
			roles: []codegen.Role{codegen.RoleHeader, codegen.RoleSource, codegen.RoleHeader, codegen.RoleSource,
				codegen.RoleApp},
		},
		{
			name: "perl multiple", language: "perl", multiple: true, path: "/out", app: "app",
			want:  []string{"/out/MyFrame.pm", "/out/MyDialog.pm", "/out/app.pl"},
			roles: []codegen.Role{codegen.RoleSource, codegen.RoleSource, codegen.RoleApp},
		},
		{
			name: "lisp single", language: "lisp", path: "/out/Ogg1.lisp", app: "app",
			want:  []string{"/out/Ogg1.lisp"},
			roles: []codegen.Role{codegen.RoleSource},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := project.DefaultOptions()
			opts.MultipleFiles = tt.multiple
			opts.OutputPath = filepath.FromSlash(tt.path)
			plan, err := codegen.PlanFiles(opts, adapter(t, tt.language), []string{"MyFrame", "MyDialog"}, tt.app)
			require.NoError(t, err)

			want := make([]string, len(tt.want))
			for i, p := range tt.want {
				want[i] = filepath.FromSlash(p)
			}
			assert.Equal(t, want, plan.Paths())
			for i, f := range plan.Files {
				assert.Equal(t, tt.roles[i], f.Role, f.Path)
			}
		})
	}
}

func TestPlanFilesSingleFileHoldsEverything(t *testing.T) {
	opts := project.DefaultOptions()
	opts.OutputPath = "Ogg1.py"
	plan, err := codegen.PlanFiles(opts, adapter(t, "python"), []string{"MyFrame", "MyDialog"}, "app")
	require.NoError(t, err)
	require.Len(t, plan.Files, 1)
	assert.Equal(t, []string{"MyFrame", "MyDialog"}, plan.Files[0].Classes)
	assert.True(t, plan.Files[0].App)
}

func TestPlanFilesCollision(t *testing.T) {
	opts := project.DefaultOptions()
	opts.MultipleFiles = true
	opts.OutputPath = "/out"
	_, err := codegen.PlanFiles(opts, adapter(t, "python"), []string{"MyFrame", "app"}, "app")
	require.Error(t, err)
	assert.Equal(t, errors.OutputPath, errors.KindOf(err))
}
