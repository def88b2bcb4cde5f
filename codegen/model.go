package codegen

import (
	"strconv"
	"strings"

	"github.com/wxglade/wxglade/style"
	"github.com/wxglade/wxglade/widget"
)

// ValueKind selects how an adapter writes a Value.
type ValueKind int

const (
	ValString ValueKind = iota
	ValInt
	ValBool
	// ValConst is a toolkit constant in its C++ spelling, e.g. wxVERTICAL.
	ValConst
	ValSize
	ValColour
	ValFont
	// ValStyle is a style set, written with Adapter.RenderStyle.
	ValStyle
)

// Value is a literal argument in generated code.
type Value struct {
	Kind ValueKind
	Text string
	Int  int
	Bool bool
	// Translate marks user-visible strings for gettext.
	Translate bool
	// Width, Height and DialogUnits describe a ValSize.
	Width, Height int
	DialogUnits   bool
	Font          *widget.Font
	Styles        *style.Set
}

// Str returns a string value.
func Str(s string, translate bool) Value {
	return Value{Kind: ValString, Text: s, Translate: translate}
}

// Int returns an integer value.
func Int(n int) Value { return Value{Kind: ValInt, Int: n} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{Kind: ValBool, Bool: b} }

// Const returns a toolkit constant.
func Const(name string) Value { return Value{Kind: ValConst, Text: name} }

// RGB splits a "#rrggbb" colour. ok is false for system colours.
func (v Value) RGB() (r, g, b int, ok bool) {
	if v.Kind != ValColour || len(v.Text) != 7 || v.Text[0] != '#' {
		return 0, 0, 0, false
	}
	n, err := strconv.ParseUint(v.Text[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(n >> 16 & 0xff), int(n >> 8 & 0xff), int(n & 0xff), true
}

// Call is a toolkit method applied to a widget after construction. Method
// names are the toolkit's, shared by all bindings.
type Call struct {
	Method string
	Args   []Value
}

// Item holds the sizer item settings of a widget.
type Item struct {
	Option int
	Flag   *style.Set
	Border int
}

// Event is an event binding of a widget.
type Event struct {
	Name    string // EVT_BUTTON
	Type    string // wxCommandEvent
	Handler string
	// Module is the binding module of the event class, if any.
	Module string
}

// Widget is the language-neutral model of one node.
type Widget struct {
	Node *widget.Node
	Info *widget.ClassInfo
	Name string
	// Klass is the generated class of top-level windows and the user class
	// of custom widgets.
	Klass string
	// Attribute stores the widget as a member of its class.
	Attribute bool
	// Top is set on the top-level window of a class.
	Top bool
	// Window is the enclosing window; nil for the top-level window.
	Window *Widget
	// Container is the tree parent; nil for the top-level window.
	Container *Widget
	// Sizer is the sizer laying out the children of a window.
	Sizer    *Widget
	Children []*Widget
	// Module is the binding module of the class for the target version.
	Module string
	Args   []Value
	// Style is nil when the widget keeps its class default.
	Style *style.Set
	Calls []Call
	Item  *Item
	// Custom holds the constructor arguments of a custom widget.
	Custom []string
	Events []Event
	// Fragment is filled in by the engine from Adapter.RenderWidget.
	Fragment *Fragment
}

// IsSizer reports whether the widget is a sizer.
func (w *Widget) IsSizer() bool { return w.Info.IsSizer() }

// IsSpacer reports whether the widget is a spacer.
func (w *Widget) IsSpacer() bool { return w.Info.Category == widget.CategorySpacer }

// Fragment is the code of one widget.
type Fragment struct {
	// Includes are modules or headers the code needs.
	Includes []string
	// IDs are symbolic window identifiers the class declares.
	IDs []string
	// Members are class member declarations.
	Members []string
	// Init creates the widget; emitted in tree order.
	Init []string
	// Layout adds the widget to its sizer; emitted after the children.
	Layout []string
	// Events binds event handlers.
	Events []string
}

// Handler is an event handler method of a class.
type Handler struct {
	Name      string
	EventType string
}

// Class is the model of one top-level window.
type Class struct {
	Name string
	Top  *Widget
	// Widgets in tree order, starting with Top.
	Widgets  []*Widget
	Handlers []Handler

	// Collected fragment code in emission order.
	Includes []string
	IDs      []string
	Members  []string
	Init     []string
	Layout   []string
	Events   []string
}

// Base returns the toolkit class the generated class derives from.
func (c *Class) Base() string { return c.Top.Info.Class }

// Attributes returns the widgets stored as class members.
func (c *Class) Attributes() []*Widget {
	var out []*Widget
	for _, w := range c.Widgets[1:] {
		if w.Attribute {
			out = append(out, w)
		}
	}
	return out
}

func (c *Class) add(w *Widget, f *Fragment) {
	c.Includes = appendUnique(c.Includes, f.Includes...)
	c.IDs = append(c.IDs, f.IDs...)
	c.Members = append(c.Members, f.Members...)
	c.Init = append(c.Init, f.Init...)
	c.Events = append(c.Events, f.Events...)
	for _, e := range w.Events {
		if !c.hasHandler(e.Handler) {
			c.Handlers = append(c.Handlers, Handler{Name: e.Handler, EventType: e.Type})
		}
	}
}

func (c *Class) hasHandler(name string) bool {
	for _, h := range c.Handlers {
		if h.Name == name {
			return true
		}
	}
	return false
}

// App is the application entry point.
type App struct {
	// Name is the application instance and file name.
	Name string
	// Class is the application class.
	Class string
	// Top is the class of the top window; TopName its instance name.
	Top     *Class
	TopName string
}

// File is a planned file with the models it contains.
type File struct {
	Path    string
	Role    Role
	Classes []*Class
	App     *App
	// Deps are classes defined in other files that this file refers to.
	Deps []*Class
	// Banner lines are written as a comment at the top of the file.
	Banner []string
}

// Includes returns the includes of all classes in f.
func (f *File) Includes() []string {
	var out []string
	for _, c := range f.Classes {
		out = appendUnique(out, c.Includes...)
	}
	return out
}

func appendUnique(list []string, items ...string) []string {
	for _, it := range items {
		found := false
		for _, x := range list {
			if x == it {
				found = true
				break
			}
		}
		if !found {
			list = append(list, it)
		}
	}
	return list
}

// SubstituteArgs replaces $parent and $id in custom widget arguments.
func SubstituteArgs(args []string, parent, id string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		a = strings.ReplaceAll(a, "$parent", parent)
		out[i] = strings.ReplaceAll(a, "$id", id)
	}
	return out
}

// Owner returns the model of the top-level window owning w.
func (w *Widget) Owner() *Widget {
	for w.Container != nil {
		w = w.Container
	}
	return w
}

// FontConstants returns the toolkit constants of a font's family, style and
// weight.
func FontConstants(f *widget.Font) (family, style, weight string) {
	c := func(prefix, v string) string {
		if strings.HasPrefix(v, "wx") {
			return v
		}
		if v == "" {
			v = "default"
		}
		if prefix != "wxFONTFAMILY_" && v == "default" {
			v = "normal"
		}
		return prefix + strings.ToUpper(v)
	}
	return c("wxFONTFAMILY_", f.Family), c("wxFONTSTYLE_", f.Style), c("wxFONTWEIGHT_", f.Weight)
}

// SetterName returns the toolkit setter of a property, e.g. SetTitle.
func SetterName(prop string) string {
	var b strings.Builder
	b.WriteString("Set")
	for _, part := range strings.Split(prop, "_") {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

// IDName returns the symbolic identifier of a widget, e.g. ID_BUTTON_1.
func IDName(w *Widget) string {
	return "ID_" + strings.ToUpper(w.Name)
}
