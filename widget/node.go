// Package widget is the in-memory descriptor model of a design: a tree of
// nodes carrying a class tag, a name, ordered typed properties and event
// bindings, rooted at an application node whose children are the top-level
// windows.
//
// Mutations go through Node methods that keep names unique within a
// top-level window and keep the tree acyclic.
package widget

import (
	"regexp"
	"strings"

	"github.com/wxglade/wxglade/errors"
	"github.com/wxglade/wxglade/style"
)

const categoryRoot Category = -1

var rootInfo = &ClassInfo{Class: "application", Category: categoryRoot}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// IsIdentifier reports whether s is usable as a name in every target
// language.
func IsIdentifier(s string) bool { return identRe.MatchString(s) }

// EventBinding connects an event to a handler method.
type EventBinding struct {
	Event   string
	Handler string
}

var sizerItemSpecs = []*PropertySpec{
	{Name: "option", Kind: KindInt, Default: "0", Help: "Proportion in the containing sizer", AlwaysActive: true},
	{Name: "flag", Kind: KindStyle, StyleClass: "sizeritem", AlwaysActive: true},
	{Name: "border", Kind: KindInt, Default: "0", AlwaysActive: true},
}

// SizerItem holds the layout properties of a node placed in a sizer.
type SizerItem struct {
	Option *Property
	Flag   *Property
	Border *Property
}

func newSizerItem(cat *style.Catalog) *SizerItem {
	props := make([]*Property, len(sizerItemSpecs))
	for i, spec := range sizerItemSpecs {
		p, err := newProperty(spec, cat)
		if err != nil {
			// the sizeritem class ships with the embedded catalog
			panic(err)
		}
		props[i] = p
	}
	return &SizerItem{Option: props[0], Flag: props[1], Border: props[2]}
}

func (s *SizerItem) properties() []*Property {
	return []*Property{s.Option, s.Flag, s.Border}
}

// Node is one widget, sizer or spacer of the design.
type Node struct {
	// Klass is the generated class name of top-level windows and the user
	// class of custom widgets; other nodes use their toolkit class.
	Klass string

	info     *ClassInfo
	name     string
	props    []*Property
	index    map[string]int
	item     *SizerItem
	events   []EventBinding
	parent   *Node
	children []*Node
	catalog  *style.Catalog
}

// NewRoot returns an empty application node.
func NewRoot(catalog *style.Catalog) *Node {
	if catalog == nil {
		catalog = style.Default()
	}
	return &Node{info: rootInfo, name: "app", Klass: "application", catalog: catalog, index: map[string]int{}}
}

func newNode(info *ClassInfo, name string, cat *style.Catalog) (*Node, error) {
	n := &Node{
		info:    info,
		name:    name,
		Klass:   info.Class,
		catalog: cat,
		index:   make(map[string]int, len(info.Properties)),
	}
	if info.Category == CategoryToplevel {
		n.Klass = "My" + strings.TrimPrefix(info.Class, "wx")
	}
	for _, spec := range info.Properties {
		p, err := newProperty(spec, cat)
		if err != nil {
			return nil, errors.Wrapf(err, "%s", info.Class)
		}
		n.index[spec.Name] = len(n.props)
		n.props = append(n.props, p)
	}
	return n, nil
}

// Class returns the toolkit class tag.
func (n *Node) Class() string { return n.info.Class }

// Info returns the class declaration.
func (n *Node) Info() *ClassInfo { return n.info }

// Name returns the node name.
func (n *Node) Name() string { return n.name }

// IsRoot reports whether n is the application node.
func (n *Node) IsRoot() bool { return n.info.Category == categoryRoot }

// IsToplevel reports whether n is a top-level window.
func (n *Node) IsToplevel() bool { return n.info.Category == CategoryToplevel }

// Toplevel returns the enclosing top-level window, or nil.
func (n *Node) Toplevel() *Node {
	for p := n; p != nil; p = p.parent {
		if p.IsToplevel() {
			return p
		}
	}
	return nil
}

// Root returns the top of the tree containing n.
func (n *Node) Root() *Node {
	p := n
	for p.parent != nil {
		p = p.parent
	}
	return p
}

// Parent returns the parent node, nil for roots and detached nodes.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int { return len(n.children) }

// Child returns the child at index i, nil if out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// IndexInParent returns the position of n among its siblings, -1 if
// detached.
func (n *Node) IndexInParent() int {
	if n.parent == nil {
		return -1
	}
	for i, c := range n.parent.children {
		if c == n {
			return i
		}
	}
	return -1
}

// NextSibling returns the following sibling, nil if n is the last child.
func (n *Node) NextSibling() *Node {
	if n.parent == nil {
		return nil
	}
	return n.parent.Child(n.IndexInParent() + 1)
}

// PrevSibling returns the preceding sibling, nil if n is the first child.
func (n *Node) PrevSibling() *Node {
	if n.parent == nil {
		return nil
	}
	return n.parent.Child(n.IndexInParent() - 1)
}

// Path returns the slash-separated names from the top-level window down to
// n, used in diagnostics.
func (n *Node) Path() string {
	var parts []string
	for p := n; p != nil && !p.IsRoot(); p = p.parent {
		parts = append(parts, p.name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}

// Item returns the sizer item properties, nil unless n sits in a sizer.
func (n *Node) Item() *SizerItem { return n.item }

// Properties returns the class properties in declared order followed by the
// sizer item properties.
func (n *Node) Properties() []*Property {
	props := append([]*Property(nil), n.props...)
	if n.item != nil {
		props = append(props, n.item.properties()...)
	}
	return props
}

// Property looks up a property by name.
func (n *Node) Property(name string) (*Property, error) {
	if p := n.Prop(name); p != nil {
		return p, nil
	}
	return nil, errors.UnknownPropertyf("%s %q has no property %q", n.info.Class, n.name, name)
}

// Prop is Property without the error, nil when absent.
func (n *Node) Prop(name string) *Property {
	if i, ok := n.index[name]; ok {
		return n.props[i]
	}
	if n.item != nil {
		for _, p := range n.item.properties() {
			if p.Name() == name {
				return p
			}
		}
	}
	return nil
}

// Value returns the text value of a property, "" when absent.
func (n *Node) Value(name string) string {
	if p := n.Prop(name); p != nil {
		return p.Value()
	}
	return ""
}

// IsActive reports whether a property exists and is active.
func (n *Node) IsActive(name string) bool {
	p := n.Prop(name)
	return p != nil && p.IsActive()
}

// SetProperty sets a property by name. "name" and "class" address the node
// name and Klass.
func (n *Node) SetProperty(name, value string) error {
	switch name {
	case "name":
		return n.SetName(value)
	case "class":
		return n.SetKlass(value)
	}
	p, err := n.Property(name)
	if err != nil {
		return err
	}
	return p.Set(value)
}

// AllowUnknownStyles makes every style property of n keep names the catalog
// does not declare.
func (n *Node) AllowUnknownStyles() {
	for _, p := range n.Properties() {
		if p.styles != nil {
			p.styles.AllowUnknown = true
		}
	}
}

// SetName renames n, keeping names unique within its top-level window.
func (n *Node) SetName(name string) error {
	if name == n.name {
		return nil
	}
	if !IsIdentifier(name) {
		return errors.Structuralf("%q is not a valid name", name)
	}
	if n.IsToplevel() && n.parent != nil {
		for _, sib := range n.parent.children {
			if sib != n && sib.name == name {
				return errors.Structuralf("name %q is already used by another top-level window", name)
			}
		}
	}
	if n.info.Category != CategorySpacer {
		for _, used := range scopeOf(n).scopeNames() {
			if used == name {
				return errors.Structuralf("name %q is already used in %s", name, scopeLabel(n))
			}
		}
	}
	n.name = name
	return nil
}

// SetKlass changes the generated class name of a top-level window or the
// user class of a custom widget.
func (n *Node) SetKlass(klass string) error {
	if !IsIdentifier(strings.ReplaceAll(klass, "::", "_")) {
		return errors.Structuralf("%q is not a valid class name", klass)
	}
	if n.IsToplevel() && n.parent != nil {
		for _, sib := range n.parent.children {
			if sib != n && sib.Klass == klass {
				return errors.Structuralf("class %q is already used by %s", klass, sib.name)
			}
		}
	}
	n.Klass = klass
	return nil
}

// Events returns the event bindings.
func (n *Node) Events() []EventBinding {
	return append([]EventBinding(nil), n.events...)
}

// SetEvent binds event to handler. An empty handler removes the binding.
func (n *Node) SetEvent(event, handler string) error {
	if _, ok := n.info.Event(event); !ok {
		return errors.UnknownPropertyf("%s %q has no event %s", n.info.Class, n.name, event)
	}
	for i, b := range n.events {
		if b.Event != event {
			continue
		}
		if handler == "" {
			n.events = append(n.events[:i], n.events[i+1:]...)
			return nil
		}
		if !IsIdentifier(handler) {
			return errors.Structuralf("%q is not a valid handler name", handler)
		}
		n.events[i].Handler = handler
		return nil
	}
	if handler == "" {
		return nil
	}
	if !IsIdentifier(handler) {
		return errors.Structuralf("%q is not a valid handler name", handler)
	}
	n.events = append(n.events, EventBinding{Event: event, Handler: handler})
	return nil
}

// InsertChild attaches a detached child at index; -1 appends.
func (n *Node) InsertChild(index int, child *Node) error {
	if child == nil {
		return errors.Structuralf("cannot insert nil into %s", n.name)
	}
	if child.parent != nil {
		return errors.Structuralf("%s already has a parent (%s)", child.name, child.parent.name)
	}
	for p := n; p != nil; p = p.parent {
		if p == child {
			return errors.Structuralf("inserting %s into %s would create a cycle", child.name, n.name)
		}
	}
	if child.IsRoot() {
		return errors.Structuralf("the application node cannot be a child")
	}
	if err := n.checkContainment(child); err != nil {
		return err
	}
	if err := n.checkNames(child); err != nil {
		return err
	}
	if index < -1 || index > len(n.children) {
		return errors.Structuralf("index %d out of range for %s", index, n.name)
	}
	if index == -1 {
		index = len(n.children)
	}

	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	child.parent = n

	if n.info.IsSizer() {
		if child.item == nil {
			child.item = newSizerItem(n.catalog)
		}
	} else {
		child.item = nil
	}
	return nil
}

// RemoveChild detaches child.
func (n *Node) RemoveChild(child *Node) error {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return nil
		}
	}
	name := "<nil>"
	if child != nil {
		name = child.name
	}
	return errors.Structuralf("%s is not a child of %s", name, n.name)
}

func (n *Node) checkContainment(child *Node) error {
	c := child.info.Category
	switch n.info.Category {
	case categoryRoot:
		if c != CategoryToplevel {
			return errors.Structuralf("%s %s cannot be a top-level window", child.info.Class, child.name)
		}
		return nil
	case CategoryControl, CategorySpacer:
		return errors.Structuralf("%s %s cannot contain children", n.info.Class, n.name)
	}
	if c == CategoryToplevel {
		return errors.Structuralf("top-level window %s cannot be placed inside %s", child.name, n.name)
	}
	if c == CategorySpacer && !n.info.IsSizer() {
		return errors.Structuralf("spacer can only be placed in a sizer, not in %s", n.name)
	}
	if c == CategorySizer && !n.info.IsSizer() {
		for _, sib := range n.children {
			if sib.info.IsSizer() {
				return errors.Structuralf("%s already has sizer %s", n.name, sib.name)
			}
		}
	}
	return nil
}

func (n *Node) checkNames(child *Node) error {
	if n.IsRoot() {
		for _, sib := range n.children {
			if sib.name == child.name {
				return errors.Structuralf("name %q is already used by another top-level window", child.name)
			}
			if sib.Klass == child.Klass {
				return errors.Structuralf("class %q is already used by %s", child.Klass, sib.name)
			}
		}
		return nil
	}

	used := make(map[string]bool)
	for _, name := range scopeOf(n).scopeNames() {
		used[name] = true
	}
	own := make(map[string]bool)
	return child.Walk(func(c *Node) error {
		if c.info.Category == CategorySpacer {
			return nil
		}
		if used[c.name] {
			return errors.Structuralf("name %q is already used in %s", c.name, scopeLabel(n))
		}
		if own[c.name] {
			return errors.Structuralf("name %q appears twice in the inserted subtree", c.name)
		}
		own[c.name] = true
		return nil
	})
}

// scopeOf returns the node whose subtree defines the name scope of n.
func scopeOf(n *Node) *Node {
	if tl := n.Toplevel(); tl != nil {
		return tl
	}
	return n.Root()
}

func (n *Node) scopeNames() []string {
	var names []string
	if n.IsRoot() {
		for _, c := range n.children {
			names = append(names, c.name)
		}
		return names
	}
	_ = n.Walk(func(c *Node) error {
		if c.info.Category != CategorySpacer {
			names = append(names, c.name)
		}
		return nil
	})
	return names
}

func scopeLabel(n *Node) string {
	if tl := n.Toplevel(); tl != nil {
		return tl.name
	}
	return "the application"
}

// Find returns the first node named name in the subtree of n.
func (n *Node) Find(name string) *Node {
	var found *Node
	_ = n.Walk(func(c *Node) error {
		if c.name == name {
			found = c
			return ErrStop
		}
		return nil
	})
	return found
}

// Toplevels returns the top-level windows under an application node.
func (n *Node) Toplevels() []*Node {
	var tls []*Node
	for _, c := range n.children {
		if c.IsToplevel() {
			tls = append(tls, c)
		}
	}
	return tls
}

// Clone returns a detached deep copy of the subtree of n.
func (n *Node) Clone() *Node {
	c := &Node{
		Klass:   n.Klass,
		info:    n.info,
		name:    n.name,
		index:   n.index,
		events:  append([]EventBinding(nil), n.events...),
		catalog: n.catalog,
	}
	c.props = make([]*Property, len(n.props))
	for i, p := range n.props {
		c.props[i] = p.clone()
	}
	if n.item != nil {
		c.item = &SizerItem{Option: n.item.Option.clone(), Flag: n.item.Flag.clone(), Border: n.item.Border.clone()}
	}
	for _, child := range n.children {
		cc := child.Clone()
		cc.parent = c
		c.children = append(c.children, cc)
	}
	return c
}
