// Package codegen turns a project's widget tree into source files.
//
// # Architecture
//
// Generation is split in two layers:
//  1. The engine walks the tree, builds a language-neutral model of every
//     top-level class (Widget, Class, App) and plans the output files.
//  2. An Adapter per target language renders widgets and files from that
//     model. The engine only talks to adapters through this interface; it
//     never asks which language it is generating.
//
// Generated files mark user-owned regions with anchor comments:
//
//	# begin wxGlade user code: MyFrame.init
//	# end wxGlade user code: MyFrame.init
//
// When a file is regenerated without overwrite, the bodies of these regions
// are carried over from the file on disk.
//
// # Adding a language
//
//  1. Create a package under codegen/ implementing Adapter.
//  2. Register its Factory in codegen/langs.
//  3. Add the language to project.Languages.
package codegen

import (
	"sort"
	"sync"

	"github.com/Masterminds/semver/v3"

	"github.com/wxglade/wxglade/errors"
	"github.com/wxglade/wxglade/style"
	"github.com/wxglade/wxglade/widget"
)

// Feature is an optional capability of an adapter.
type Feature string

const (
	// FeatureMultipleFiles allows one file per top-level class.
	FeatureMultipleFiles Feature = "multiple files"
	// FeatureEvents allows event bindings and handler stubs.
	FeatureEvents Feature = "event handlers"
	// FeatureApplication allows an application entry point.
	FeatureApplication Feature = "application code"
	// FeatureUserCode allows user code regions.
	FeatureUserCode Feature = "user code"
)

// Role is the purpose of a generated file.
type Role int

const (
	// RoleSource holds class definitions, and in single-file mode the
	// application too.
	RoleSource Role = iota
	// RoleHeader holds class declarations for languages that split them.
	RoleHeader
	// RoleApp holds the application entry point in multi-file mode.
	RoleApp
)

func (r Role) String() string {
	switch r {
	case RoleSource:
		return "source"
	case RoleHeader:
		return "header"
	case RoleApp:
		return "application"
	}
	return "unknown"
}

// Naming is the file naming convention of a language.
type Naming struct {
	// Source is the extension of class files, e.g. ".py".
	Source string
	// Header is the extension of declaration files; empty when the
	// language has none.
	Header string
	// App is the extension of the application file; defaults to Source.
	App string
	// AppSuffix is appended to the application name to form the
	// application file name, e.g. "_main".
	AppSuffix string
	// CommentStart and CommentEnd wrap a line comment.
	CommentStart string
	CommentEnd   string
}

// Extension returns the file extension used for role, or "" when the
// language does not produce such files.
func (n Naming) Extension(role Role) string {
	switch role {
	case RoleHeader:
		return n.Header
	case RoleApp:
		if n.App != "" {
			return n.App
		}
	}
	return n.Source
}

// Config is the per-run configuration handed to an adapter factory.
type Config struct {
	Version *semver.Version
	// Indent is one indentation level.
	Indent          string
	Gettext         bool
	Encoding        string
	HeaderExtension string
	SourceExtension string
}

// AtLeast reports whether the target toolkit version is v or newer.
func (c Config) AtLeast(v string) bool {
	return c.Version != nil && !c.Version.LessThan(style.MustVersion(v))
}

// Adapter renders the generator model in one target language.
type Adapter interface {
	Language() string
	Naming() Naming
	// FileExtension returns the extension of files with role.
	FileExtension(role Role) string
	Supports(f Feature) bool
	// SupportsClass reports whether widgets of a class can be rendered.
	SupportsClass(info *widget.ClassInfo) bool
	// RenderStyle returns the literal of the styles of set supported by
	// the target version; "" when none are.
	RenderStyle(set *style.Set) string
	// RenderWidget renders one widget. Constructs the language cannot
	// express are reported as errors of kind UnsupportedFeature.
	RenderWidget(w *Widget) (*Fragment, error)
	// RenderFile lays out a planned file.
	RenderFile(f *File) (*Doc, error)
}

// Factory creates an adapter for one generation pass. It fails when the
// language cannot target cfg.Version.
type Factory func(cfg Config) (Adapter, error)

// Languages maps language names to adapter factories.
type Languages struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewLanguages returns an empty language registry.
func NewLanguages() *Languages {
	return &Languages{factories: make(map[string]Factory)}
}

// Register adds a language.
func (l *Languages) Register(name string, f Factory) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.factories[name]; exists {
		return errors.Newf("language already registered: %s", name)
	}
	l.factories[name] = f
	return nil
}

// Lookup returns the factory of a language.
func (l *Languages) Lookup(name string) (Factory, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	f, ok := l.factories[name]
	return f, ok
}

// List returns the registered languages in sorted order.
func (l *Languages) List() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.factories))
	for name := range l.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New creates the adapter of a language.
func (l *Languages) New(name string, cfg Config) (Adapter, error) {
	f, ok := l.Lookup(name)
	if !ok {
		return nil, errors.WithHintf(errors.Unsupportedf("no code generator for language %q", name),
			"available languages: %v", l.List())
	}
	return f(cfg)
}
