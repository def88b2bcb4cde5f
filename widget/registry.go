package widget

import (
	"fmt"
	"sort"
	"sync"

	"github.com/wxglade/wxglade/errors"
	"github.com/wxglade/wxglade/style"
)

// Category groups widget classes by their role in the tree.
type Category int

const (
	// CategoryToplevel classes become one generated class each.
	CategoryToplevel Category = iota
	// CategoryContainer windows hold other windows or one sizer.
	CategoryContainer
	// CategoryControl windows are leaves.
	CategoryControl
	CategorySizer
	CategorySpacer
)

// CtorKind selects how a class is constructed in generated code.
type CtorKind int

const (
	// CtorWindow is Class(parent, id, <Args...>, style=...).
	CtorWindow CtorKind = iota
	// CtorSizer is Class(<Args...>).
	CtorSizer
	// CtorStaticBoxSizer wraps a static box created from the label.
	CtorStaticBoxSizer
	// CtorSpacer adds empty space to the containing sizer.
	CtorSpacer
	// CtorCustom instantiates a user class with user arguments.
	CtorCustom
)

// EventSpec declares an event a class can emit.
type EventSpec struct {
	Name string // EVT_BUTTON
	Type string // wxCommandEvent
}

// Setter is a property applied after construction, e.g. SetValue(1).
type Setter struct {
	Property string
	Method   string
}

// CodeSpec carries the code generation hints of a class.
type CodeSpec struct {
	Ctor CtorKind
	// Args are property names passed to the constructor after parent and id.
	Args    []string
	Setters []Setter
	// Module is the Python module of the class when it is not in "wx", and
	// ModuleSince the toolkit version that moved it there.
	Module      string
	ModuleSince string
	// Header is the C++ include providing the class.
	Header string
}

// ClassInfo describes a widget class registered with a Registry.
type ClassInfo struct {
	Class    string // wxHyperlinkCtrl
	Editor   string // EditHyperlinkCtrl
	Category Category
	// NamePattern generates default names, e.g. "hyperlink_%d".
	NamePattern string
	Properties  []*PropertySpec
	Events      []EventSpec
	Code        CodeSpec
	// Builder adjusts a freshly built node, e.g. forcing defaults that
	// differ from the property defaults.
	Builder func(n *Node) error
}

// PropertySpec returns the declaration of a property.
func (c *ClassInfo) PropertySpec(name string) (*PropertySpec, bool) {
	for _, p := range c.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Event returns the declaration of an event.
func (c *ClassInfo) Event(name string) (EventSpec, bool) {
	for _, e := range c.Events {
		if e.Name == name {
			return e, true
		}
	}
	return EventSpec{}, false
}

// IsSizer reports whether the class lays out children.
func (c *ClassInfo) IsSizer() bool { return c.Category == CategorySizer }

// IsWindow reports whether the class is a window.
func (c *ClassInfo) IsWindow() bool {
	return c.Category == CategoryToplevel || c.Category == CategoryContainer || c.Category == CategoryControl
}

// Registry maps widget classes to their declarations. It is populated once
// during initialisation and then passed to the loader and the generator.
type Registry struct {
	mu      sync.RWMutex
	classes map[string]*ClassInfo
	editors map[string]*ClassInfo
	catalog *style.Catalog
}

// NewRegistry creates an empty registry backed by a style catalog.
func NewRegistry(catalog *style.Catalog) *Registry {
	if catalog == nil {
		catalog = style.Default()
	}
	return &Registry{
		classes: make(map[string]*ClassInfo),
		editors: make(map[string]*ClassInfo),
		catalog: catalog,
	}
}

// Catalog returns the style catalog.
func (r *Registry) Catalog() *style.Catalog { return r.catalog }

// Register adds a class. Duplicate classes or editors and properties
// referring to unknown style classes are rejected.
func (r *Registry) Register(info *ClassInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if info.Class == "" {
		return errors.New("widget class without a name")
	}
	if _, exists := r.classes[info.Class]; exists {
		return errors.Newf("widget class already registered: %s", info.Class)
	}
	if info.Editor != "" {
		if _, exists := r.editors[info.Editor]; exists {
			return errors.Newf("widget editor already registered: %s", info.Editor)
		}
	}
	seen := make(map[string]bool, len(info.Properties))
	for _, p := range info.Properties {
		if seen[p.Name] {
			return errors.Newf("%s declares property %s twice", info.Class, p.Name)
		}
		seen[p.Name] = true
		if p.Kind == KindStyle {
			if _, ok := r.catalog.Class(p.StyleClass); !ok {
				return errors.Newf("%s.%s: no style class %q in catalog", info.Class, p.Name, p.StyleClass)
			}
		}
	}
	for _, name := range info.Code.Args {
		if !seen[name] {
			return errors.Newf("%s: constructor argument %s is not a property", info.Class, name)
		}
	}

	r.classes[info.Class] = info
	if info.Editor != "" {
		r.editors[info.Editor] = info
	}
	return nil
}

// Lookup returns the declaration of class.
func (r *Registry) Lookup(class string) (*ClassInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.classes[class]
	return info, ok
}

// LookupEditor returns the declaration registered under an editor name.
func (r *Registry) LookupEditor(editor string) (*ClassInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.editors[editor]
	return info, ok
}

// List returns all registered class names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.classes))
	for name := range r.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewNode creates a detached node of class with default properties.
func (r *Registry) NewNode(class, name string) (*Node, error) {
	info, ok := r.Lookup(class)
	if !ok {
		return nil, errors.Newf("unknown widget class %s", class)
	}
	return newNode(info, name, r.catalog)
}

// Build creates a node of class with a fresh default name, runs the class
// builder and inserts it into parent at index (-1 appends).
func (r *Registry) Build(class string, parent *Node, index int) (*Node, error) {
	info, ok := r.Lookup(class)
	if !ok {
		return nil, errors.Newf("unknown widget class %s", class)
	}
	name := info.Class
	if info.NamePattern != "" {
		name = parent.NextName(info.NamePattern)
	}
	n, err := newNode(info, name, r.catalog)
	if err != nil {
		return nil, err
	}
	if info.Builder != nil {
		if err := info.Builder(n); err != nil {
			return nil, errors.Wrapf(err, "build %s", class)
		}
	}
	if err := parent.InsertChild(index, n); err != nil {
		return nil, err
	}
	return n, nil
}

// NextName returns the first name generated from pattern that is not used
// in the name scope of n.
func (n *Node) NextName(pattern string) string {
	used := make(map[string]bool)
	for _, name := range scopeOf(n).scopeNames() {
		used[name] = true
	}
	for i := 1; ; i++ {
		name := fmt.Sprintf(pattern, i)
		if !used[name] {
			return name
		}
	}
}
