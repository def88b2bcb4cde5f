package codegen

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wxglade/wxglade/errors"
	"github.com/wxglade/wxglade/project"
)

// PlannedFile is one file of a Plan.
type PlannedFile struct {
	Path string
	Role Role
	// Classes are the names of the classes in the file.
	Classes []string
	App     bool
	// Deps are classes defined elsewhere that the file refers to.
	Deps []string
}

// Plan lists the files of a generation pass.
type Plan struct {
	Language  string
	Multiple  bool
	Path      string
	Overwrite bool
	Files     []*PlannedFile
}

// CheckOutput validates the project options against the adapter and the
// file system. It touches nothing on disk.
func CheckOutput(opts project.Options, a Adapter) error {
	if opts.IsTemplate {
		return errors.Unsupportedf("Code generation from a template is not possible")
	}
	if opts.MultipleFiles && !a.Supports(FeatureMultipleFiles) {
		return errors.Unsupportedf("%s code cannot be split into multiple files", a.Language())
	}
	return CheckOutputPath(opts)
}

// CheckOutputPath validates the output location alone, without an adapter.
func CheckOutputPath(opts project.Options) error {
	path := opts.OutputPath
	if path == "" {
		return errors.WithHint(errors.OutputPathf("No output path set"), "set the output path of the project or pass --output")
	}
	if opts.MultipleFiles {
		if !isDir(path) {
			return errors.OutputPathf("Output path %q must be an existing directory when generating multiple files", path)
		}
		return nil
	}
	if isDir(path) {
		return errors.OutputPathf("Output path %q can not be a directory when generating a single file", path)
	}
	dir := filepath.Dir(path)
	if !isDir(dir) {
		return errors.OutputPathf("Directory %q of the output path must be an existing directory", dir)
	}
	return nil
}

func isDir(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.IsDir()
}

// PlanFiles computes the output files for classes and the application. app
// is the application file name; empty when no application is generated.
// It does not validate the output location; see CheckOutput.
func PlanFiles(opts project.Options, a Adapter, classes []string, app string) (*Plan, error) {
	n := a.Naming()
	plan := &Plan{
		Language:  a.Language(),
		Multiple:  opts.MultipleFiles,
		Path:      opts.OutputPath,
		Overwrite: opts.Overwrite,
	}

	if !opts.MultipleFiles {
		path := opts.OutputPath
		if n.Header != "" {
			base := strings.TrimSuffix(path, filepath.Ext(path))
			plan.Files = append(plan.Files, &PlannedFile{Path: base + a.FileExtension(RoleHeader), Role: RoleHeader, Classes: classes})
			path = base + a.FileExtension(RoleSource)
		}
		plan.Files = append(plan.Files, &PlannedFile{Path: path, Role: RoleSource, Classes: classes, App: app != ""})
		return plan, nil
	}

	for _, c := range classes {
		base := filepath.Join(opts.OutputPath, c)
		if n.Header != "" {
			plan.Files = append(plan.Files, &PlannedFile{Path: base + a.FileExtension(RoleHeader), Role: RoleHeader, Classes: []string{c}})
		}
		plan.Files = append(plan.Files, &PlannedFile{Path: base + a.FileExtension(RoleSource), Role: RoleSource, Classes: []string{c}})
	}
	if app != "" {
		plan.Files = append(plan.Files, &PlannedFile{
			Path: filepath.Join(opts.OutputPath, app+n.AppSuffix+a.FileExtension(RoleApp)),
			Role: RoleApp,
			App:  true,
		})
	}

	seen := make(map[string]bool, len(plan.Files))
	for _, f := range plan.Files {
		if seen[f.Path] {
			return nil, errors.WithHint(errors.OutputPathf("Output file %q would be written twice", f.Path),
				"the application name must differ from the class names")
		}
		seen[f.Path] = true
	}
	return plan, nil
}

// Paths returns the planned paths.
func (p *Plan) Paths() []string {
	out := make([]string, len(p.Files))
	for i, f := range p.Files {
		out[i] = f.Path
	}
	return out
}

func sortStrings(s []string) {
	sort.Strings(s)
}
