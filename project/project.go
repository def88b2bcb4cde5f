// Package project holds a design together with its application-level
// options, and persists it as a .wxg document.
package project

import (
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/wxglade/wxglade/errors"
	"github.com/wxglade/wxglade/style"
	"github.com/wxglade/wxglade/widget"
)

// Languages lists the values accepted for Options.Language.
var Languages = []string{"python", "C++", "perl", "lisp", "XRC"}

// Options are the application-level settings stored on the <application>
// element of a project file.
type Options struct {
	// Name and Class of the generated application object. Application code
	// is only generated when both are set.
	Name      string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Class     string `json:"class,omitempty" yaml:"class,omitempty" toml:"class,omitempty"`
	TopWindow string `json:"top_window,omitempty" yaml:"top_window,omitempty" toml:"top_window,omitempty"`

	Language      string `json:"language" yaml:"language" toml:"language"`
	OutputPath    string `json:"path" yaml:"path" toml:"path"`
	MultipleFiles bool   `json:"multiple_files" yaml:"multiple_files" toml:"multiple_files"`
	Overwrite     bool   `json:"overwrite" yaml:"overwrite" toml:"overwrite"`
	IsTemplate    bool   `json:"is_template" yaml:"is_template" toml:"is_template"`
	ForVersion    string `json:"for_version" yaml:"for_version" toml:"for_version"`

	IndentAmount int    `json:"indent_amount" yaml:"indent_amount" toml:"indent_amount"`
	IndentSymbol string `json:"indent_symbol" yaml:"indent_symbol" toml:"indent_symbol"`
	Encoding     string `json:"encoding" yaml:"encoding" toml:"encoding"`
	UseGettext   bool   `json:"use_gettext" yaml:"use_gettext" toml:"use_gettext"`

	// HeaderExtension and SourceExtension override the C++ file extensions.
	HeaderExtension string `json:"header_extension,omitempty" yaml:"header_extension,omitempty" toml:"header_extension,omitempty"`
	SourceExtension string `json:"source_extension,omitempty" yaml:"source_extension,omitempty" toml:"source_extension,omitempty"`
}

// DefaultOptions returns the options of a new project.
func DefaultOptions() Options {
	return Options{
		Language:        "python",
		ForVersion:      "3.0",
		IndentAmount:    4,
		IndentSymbol:    "space",
		Encoding:        "UTF-8",
		HeaderExtension: ".h",
		SourceExtension: ".cpp",
	}
}

var versionRe = regexp.MustCompile(`^\d+\.\d+(\.\d+)?$`)

func languageRule(value any) error {
	s, _ := value.(string)
	for _, l := range Languages {
		if l == s {
			return nil
		}
	}
	return validation.NewError("project.language", "must be one of "+strings.Join(Languages, ", "))
}

func identifierRule(value any) error {
	s, _ := value.(string)
	if s == "" || widget.IsIdentifier(strings.ReplaceAll(s, "::", "_")) {
		return nil
	}
	return validation.NewError("project.identifier", "must be a valid identifier")
}

// Validate checks the options for values that can not be generated from.
func (o Options) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Language, validation.Required, validation.By(languageRule)),
		validation.Field(&o.ForVersion, validation.Required, validation.Match(versionRe)),
		validation.Field(&o.IndentAmount, validation.Min(0), validation.Max(16)),
		validation.Field(&o.IndentSymbol, validation.In("space", "tab")),
		validation.Field(&o.Name, validation.By(identifierRule)),
		validation.Field(&o.Class, validation.By(identifierRule)),
	)
}

// Indent returns one indentation level.
func (o Options) Indent() string {
	if o.IndentSymbol == "tab" {
		return strings.Repeat("\t", o.IndentAmount)
	}
	return strings.Repeat(" ", o.IndentAmount)
}

// HasApplication reports whether application code is requested.
func (o Options) HasApplication() bool {
	return o.Name != "" && o.Class != ""
}

// Project is a design and its options.
type Project struct {
	// Path is the file the project was loaded from, if any.
	Path     string
	Options  Options
	Root     *widget.Node
	Registry *widget.Registry
}

// New returns an empty project.
func New(reg *widget.Registry) *Project {
	return &Project{
		Options:  DefaultOptions(),
		Root:     widget.NewRoot(reg.Catalog()),
		Registry: reg,
	}
}

// Toplevels returns the top-level windows in document order.
func (p *Project) Toplevels() []*widget.Node {
	return p.Root.Toplevels()
}

// TopWindow returns the window the application shows first: the one named by
// TopWindow, else the first top-level window.
func (p *Project) TopWindow() *widget.Node {
	tls := p.Toplevels()
	for _, tl := range tls {
		if tl.Name() == p.Options.TopWindow {
			return tl
		}
	}
	if len(tls) > 0 {
		return tls[0]
	}
	return nil
}

// Validate checks options and top-window reference.
func (p *Project) Validate() error {
	if err := p.Options.Validate(); err != nil {
		return errors.InvalidOptionf("invalid project options: %v", err)
	}
	if p.Options.TopWindow != "" {
		found := false
		for _, tl := range p.Toplevels() {
			if tl.Name() == p.Options.TopWindow {
				found = true
			}
		}
		if !found {
			return errors.WithHintf(errors.InvalidOptionf("top window %q does not exist", p.Options.TopWindow),
				"top-level windows: %s", strings.Join(p.toplevelNames(), ", "))
		}
	}
	return nil
}

func (p *Project) toplevelNames() []string {
	var names []string
	for _, tl := range p.Toplevels() {
		names = append(names, tl.Name())
	}
	return names
}

// ToolkitVersion parses Options.ForVersion.
func (p *Project) ToolkitVersion() (*semver.Version, error) {
	return style.ParseVersion(p.Options.ForVersion)
}
