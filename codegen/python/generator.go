// Package python generates wxPython code.
package python

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wxglade/wxglade/codegen"
	"github.com/wxglade/wxglade/style"
	"github.com/wxglade/wxglade/widget"
)

// Language is the name the generator is registered under.
const Language = "python"

var naming = codegen.Naming{Source: ".py", CommentStart: "#"}

// Generator implements codegen.Adapter for wxPython.
type Generator struct {
	cfg codegen.Config
}

// New creates a Python generator.
func New(cfg codegen.Config) (codegen.Adapter, error) {
	return &Generator{cfg: cfg}, nil
}

// Language returns "python"
func (g *Generator) Language() string { return Language }

// Naming returns the Python file naming convention.
func (g *Generator) Naming() codegen.Naming { return naming }

// FileExtension returns ".py" for every role.
func (g *Generator) FileExtension(role codegen.Role) string { return naming.Extension(role) }

// Supports reports true for every feature.
func (g *Generator) Supports(codegen.Feature) bool { return true }

// SupportsClass reports true for every class.
func (g *Generator) SupportsClass(*widget.ClassInfo) bool { return true }

// constant converts wxFOO to wx.FOO, or to <module>.FOO.
func constant(name, module string) string {
	if module == "" {
		module = "wx"
	}
	if strings.HasPrefix(name, "wx") {
		return module + "." + name[2:]
	}
	return name
}

// RenderStyle joins the supported styles of set.
func (g *Generator) RenderStyle(set *style.Set) string {
	return g.styleLiteral(set, "")
}

func (g *Generator) styleLiteral(set *style.Set, module string) string {
	if set == nil {
		return ""
	}
	names := set.Supported(g.cfg.Version)
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = constant(n, module)
	}
	return strings.Join(parts, " | ")
}

func (g *Generator) str(s string, translate bool) string {
	q := strconv.Quote(s)
	if translate && g.cfg.Gettext {
		return "_(" + q + ")"
	}
	return q
}

func (g *Generator) value(v codegen.Value, module string) string {
	switch v.Kind {
	case codegen.ValString:
		return g.str(v.Text, v.Translate)
	case codegen.ValInt:
		return strconv.Itoa(v.Int)
	case codegen.ValBool:
		if v.Bool {
			return "True"
		}
		return "False"
	case codegen.ValConst:
		return constant(v.Text, "")
	case codegen.ValSize:
		size := fmt.Sprintf("(%d, %d)", v.Width, v.Height)
		if v.DialogUnits {
			return "self.ConvertDialogToPixels(" + size + ")"
		}
		return size
	case codegen.ValColour:
		if r, gr, b, ok := v.RGB(); ok {
			return fmt.Sprintf("wx.Colour(%d, %d, %d)", r, gr, b)
		}
		return "wx.SystemSettings.GetColour(" + constant(v.Text, "") + ")"
	case codegen.ValFont:
		family, st, weight := codegen.FontConstants(v.Font)
		underlined := 0
		if v.Font.Underlined {
			underlined = 1
		}
		return fmt.Sprintf("wx.Font(%d, %s, %s, %s, %d, %s)", v.Font.Size,
			constant(family, ""), constant(st, ""), constant(weight, ""), underlined, strconv.Quote(v.Font.Face))
	case codegen.ValStyle:
		if lit := g.styleLiteral(v.Styles, module); lit != "" {
			return lit
		}
		return "0"
	}
	return v.Text
}

// ref is the expression naming w inside its class.
func ref(w *codegen.Widget) string {
	switch {
	case w.Top:
		return "self"
	case w.Attribute:
		return "self." + w.Name
	}
	return w.Name
}

func className(w *codegen.Widget) string {
	return constant(w.Info.Class, w.Module)
}

func (g *Generator) method(m string) string {
	if m == "SetToolTip" && !g.cfg.AtLeast("3.0") {
		return "SetToolTipString"
	}
	return m
}

// RenderWidget renders the construction, layout and bindings of w.
func (g *Generator) RenderWidget(w *codegen.Widget) (*codegen.Fragment, error) {
	f := &codegen.Fragment{}
	if w.Module != "" {
		f.Includes = append(f.Includes, w.Module)
	}
	self := ref(w)

	switch {
	case w.Top:
		if lit := g.styleLiteral(w.Style, w.Module); lit != "" {
			f.Init = append(f.Init, fmt.Sprintf(`kwds["style"] = kwds.get("style", 0) | %s`, lit))
		}
		f.Init = append(f.Init, className(w)+".__init__(self, *args, **kwds)")
		for i, name := range w.Info.Code.Args {
			f.Init = append(f.Init, fmt.Sprintf("self.%s(%s)", codegen.SetterName(name), g.value(w.Args[i], w.Module)))
		}
	default:
		ctor, err := g.constructor(w)
		if err != nil {
			return nil, err
		}
		if ctor != "" {
			f.Init = append(f.Init, self+" = "+ctor)
		}
	}
	for _, c := range w.Calls {
		args := make([]string, len(c.Args))
		for i, a := range c.Args {
			args[i] = g.value(a, w.Module)
		}
		f.Init = append(f.Init, fmt.Sprintf("%s.%s(%s)", self, g.method(c.Method), strings.Join(args, ", ")))
	}

	f.Layout = g.layout(w)

	for _, e := range w.Events {
		evt := constant("wx"+e.Name, e.Module)
		if w.Top {
			f.Events = append(f.Events, fmt.Sprintf("self.Bind(%s, self.%s)", evt, e.Handler))
		} else {
			f.Events = append(f.Events, fmt.Sprintf("self.Bind(%s, self.%s, %s)", evt, e.Handler, self))
		}
	}
	return f, nil
}

func (g *Generator) args(w *codegen.Widget) []string {
	out := make([]string, len(w.Args))
	for i, a := range w.Args {
		out[i] = g.value(a, w.Module)
	}
	return out
}

func (g *Generator) constructor(w *codegen.Widget) (string, error) {
	switch w.Info.Code.Ctor {
	case widget.CtorSpacer:
		return "", nil
	case widget.CtorSizer:
		return fmt.Sprintf("%s(%s)", className(w), strings.Join(g.args(w), ", ")), nil
	case widget.CtorStaticBoxSizer:
		args := g.args(w)
		return fmt.Sprintf("wx.StaticBoxSizer(wx.StaticBox(%s, wx.ID_ANY, %s), %s)", ref(w.Window), args[1], args[0]), nil
	case widget.CtorCustom:
		args := codegen.SubstituteArgs(w.Custom, ref(w.Window), "wx.ID_ANY")
		return fmt.Sprintf("%s(%s)", w.Klass, strings.Join(args, ", ")), nil
	}
	args := append([]string{ref(w.Window), "wx.ID_ANY"}, g.args(w)...)
	if lit := g.styleLiteral(w.Style, w.Module); lit != "" {
		args = append(args, "style="+lit)
	}
	return fmt.Sprintf("%s(%s)", className(w), strings.Join(args, ", ")), nil
}

func (g *Generator) layout(w *codegen.Widget) []string {
	var out []string
	self := ref(w)
	if w.Sizer != nil {
		out = append(out, fmt.Sprintf("%s.SetSizer(%s)", self, ref(w.Sizer)))
		if w.Top {
			out = append(out, fmt.Sprintf("%s.Fit(self)", ref(w.Sizer)))
		}
	}
	if w.Top {
		out = append(out, "self.Layout()")
	}
	if w.Item != nil {
		item := self
		if w.IsSpacer() {
			item = fmt.Sprintf("(%d, %d)", w.Args[0].Int, w.Args[1].Int)
		}
		flag := g.RenderStyle(w.Item.Flag)
		if flag == "" {
			flag = "0"
		}
		out = append(out, fmt.Sprintf("%s.Add(%s, %d, %s, %d)", ref(w.Container), item, w.Item.Option, flag, w.Item.Border))
	}
	return out
}

// RenderFile lays out a module with its classes and the application.
func (g *Generator) RenderFile(f *codegen.File) (*codegen.Doc, error) {
	doc := &codegen.Doc{}
	in := g.cfg.Indent
	in2 := in + in

	doc.In("", codegen.BlockHeader)
	doc.Line("#!/usr/bin/env python")
	doc.Line("# -*- coding: " + g.cfg.Encoding + " -*-")
	doc.Line("#")
	doc.Lines("", codegen.Comment(naming, f.Banner))
	doc.Line("#")
	doc.Line("")
	doc.Line("import wx")
	for _, inc := range f.Includes() {
		doc.Line("import " + inc)
	}
	if g.cfg.Gettext {
		doc.Line("import gettext")
	}
	for _, dep := range f.Deps {
		doc.Line(fmt.Sprintf("from %s import %s", dep.Name, dep.Name))
	}
	doc.Line("")
	doc.Region("extracode", "")
	doc.Line("")

	for _, c := range f.Classes {
		doc.In(c.Name, codegen.BlockDeclaration)
		doc.Line("")
		doc.Line(fmt.Sprintf("class %s(%s):", c.Name, className(c.Top)))
		doc.In(c.Name, codegen.BlockConstructor)
		doc.Line(in + "def __init__(self, *args, **kwds):")
		doc.Lines(in2, c.Init)
		doc.Lines(in2, c.Layout)
		doc.Lines(in2, c.Events)
		doc.Region(c.Name+".init", in2)
		for _, h := range c.Handlers {
			doc.In(c.Name, codegen.BlockHandlers)
			doc.Line("")
			doc.Line(fmt.Sprintf("%sdef %s(self, event):", in, h.Name))
			doc.Region(c.Name+"."+h.Name, in2,
				in2+fmt.Sprintf("print(\"Event handler '%s' not implemented!\")", h.Name),
				in2+"event.Skip()")
		}
		doc.In(c.Name, codegen.BlockMembers)
		doc.Line("")
		doc.Region(c.Name+".methods", in)
		doc.In(c.Name, codegen.BlockFooter)
		doc.Line("")
		doc.Line("# end of class " + c.Name)
	}

	if app := f.App; app != nil {
		top := app.TopName
		doc.In(app.Class, codegen.BlockApplication)
		doc.Line("")
		doc.Line(fmt.Sprintf("class %s(wx.App):", app.Class))
		doc.Line(in + "def OnInit(self):")
		doc.Line(fmt.Sprintf("%sself.%s = %s(None, wx.ID_ANY, \"\")", in2, top, app.Top.Name))
		doc.Line(fmt.Sprintf("%sself.SetTopWindow(self.%s)", in2, top))
		if app.Top.Base() == "wxDialog" {
			doc.Line(fmt.Sprintf("%sself.%s.ShowModal()", in2, top))
			doc.Line(fmt.Sprintf("%sself.%s.Destroy()", in2, top))
		} else {
			doc.Line(fmt.Sprintf("%sself.%s.Show()", in2, top))
		}
		doc.Region(app.Class+".init", in2)
		doc.Line(in2 + "return True")
		doc.Line("")
		doc.Line("# end of class " + app.Class)
		doc.Line("")
		doc.Line(`if __name__ == "__main__":`)
		if g.cfg.Gettext {
			doc.Line(fmt.Sprintf("%sgettext.install(%s)", in, strconv.Quote(app.Name)))
			doc.Line("")
		}
		doc.Line(fmt.Sprintf("%s%s = %s(0)", in, app.Name, app.Class))
		doc.Line(fmt.Sprintf("%s%s.MainLoop()", in, app.Name))
	}
	return doc, nil
}
