// Package cpp generates C++ code for wxWidgets. Every class is declared in a
// header and defined in a source file.
package cpp

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/wxglade/wxglade/codegen"
	"github.com/wxglade/wxglade/style"
	"github.com/wxglade/wxglade/widget"
)

// Language is the name the generator is registered under.
const Language = "C++"

// Generator implements codegen.Adapter for C++.
type Generator struct {
	cfg    codegen.Config
	naming codegen.Naming
}

// New creates a C++ generator. The header and source extensions come from
// the project options.
func New(cfg codegen.Config) (codegen.Adapter, error) {
	n := codegen.Naming{
		Source:       cfg.SourceExtension,
		Header:       cfg.HeaderExtension,
		AppSuffix:    "_main",
		CommentStart: "//",
	}
	if n.Source == "" {
		n.Source = ".cpp"
	}
	if n.Header == "" {
		n.Header = ".h"
	}
	return &Generator{cfg: cfg, naming: n}, nil
}

// Language returns "C++"
func (g *Generator) Language() string { return Language }

// Naming returns the C++ file naming convention.
func (g *Generator) Naming() codegen.Naming { return g.naming }

// FileExtension returns the header or source extension.
func (g *Generator) FileExtension(role codegen.Role) string { return g.naming.Extension(role) }

// Supports reports true for every feature.
func (g *Generator) Supports(codegen.Feature) bool { return true }

// SupportsClass reports true for every class.
func (g *Generator) SupportsClass(*widget.ClassInfo) bool { return true }

// RenderStyle joins the supported styles of set.
func (g *Generator) RenderStyle(set *style.Set) string {
	if set == nil {
		return ""
	}
	return strings.Join(set.Supported(g.cfg.Version), "|")
}

func (g *Generator) str(s string, translate bool) string {
	if s == "" && !translate {
		return "wxEmptyString"
	}
	q := strconv.Quote(s)
	if translate && g.cfg.Gettext {
		return "_(" + q + ")"
	}
	return "wxT(" + q + ")"
}

func (g *Generator) value(v codegen.Value) string {
	switch v.Kind {
	case codegen.ValString:
		return g.str(v.Text, v.Translate)
	case codegen.ValInt:
		return strconv.Itoa(v.Int)
	case codegen.ValBool:
		return strconv.FormatBool(v.Bool)
	case codegen.ValSize:
		size := fmt.Sprintf("wxSize(%d, %d)", v.Width, v.Height)
		if v.DialogUnits {
			return "ConvertDialogToPixels(" + size + ")"
		}
		return size
	case codegen.ValColour:
		if r, gr, b, ok := v.RGB(); ok {
			return fmt.Sprintf("wxColour(%d, %d, %d)", r, gr, b)
		}
		return "wxSystemSettings::GetColour(" + v.Text + ")"
	case codegen.ValFont:
		family, st, weight := codegen.FontConstants(v.Font)
		underlined := 0
		if v.Font.Underlined {
			underlined = 1
		}
		return fmt.Sprintf("wxFont(%d, %s, %s, %s, %d, %s)", v.Font.Size, family, st, weight, underlined, g.str(v.Font.Face, false))
	case codegen.ValStyle:
		if lit := g.RenderStyle(v.Styles); lit != "" {
			return lit
		}
		return "0"
	}
	return v.Text
}

func (g *Generator) args(w *codegen.Widget) []string {
	out := make([]string, len(w.Args))
	for i, a := range w.Args {
		out[i] = g.value(a)
	}
	return out
}

// ref is the expression naming w inside its class.
func ref(w *codegen.Widget) string {
	if w.Top {
		return "this"
	}
	return w.Name
}

// typeName is the C++ class of w.
func typeName(w *codegen.Widget) string {
	if w.Info.Code.Ctor == widget.CtorCustom {
		return w.Klass
	}
	return w.Info.Class
}

func windowID(w *codegen.Widget) string {
	if len(w.Events) > 0 {
		return codegen.IDName(w)
	}
	return "wxID_ANY"
}

// RenderWidget renders the construction, layout and event table entries of w.
func (g *Generator) RenderWidget(w *codegen.Widget) (*codegen.Fragment, error) {
	f := &codegen.Fragment{}
	if h := w.Info.Code.Header; h != "" {
		f.Includes = append(f.Includes, h)
	}
	self := ref(w)

	if w.Top {
		for i, name := range w.Info.Code.Args {
			f.Init = append(f.Init, fmt.Sprintf("%s(%s);", codegen.SetterName(name), g.value(w.Args[i])))
		}
	} else if ctor := g.constructor(w); ctor != "" {
		if w.Attribute {
			f.Members = append(f.Members, typeName(w)+"* "+w.Name+";")
			f.Init = append(f.Init, w.Name+" = "+ctor+";")
		} else {
			f.Init = append(f.Init, typeName(w)+"* "+w.Name+" = "+ctor+";")
		}
	}
	for _, c := range w.Calls {
		args := make([]string, len(c.Args))
		for i, a := range c.Args {
			args[i] = g.value(a)
		}
		call := fmt.Sprintf("%s(%s);", c.Method, strings.Join(args, ", "))
		if !w.Top {
			call = self + "->" + call
		}
		f.Init = append(f.Init, call)
	}

	f.Layout = g.layout(w)

	owner := w.Owner().Klass
	for _, e := range w.Events {
		if w.Top {
			f.Events = append(f.Events, fmt.Sprintf("%s(%s::%s)", e.Name, owner, e.Handler))
		} else {
			f.Events = append(f.Events, fmt.Sprintf("%s(%s, %s::%s)", e.Name, codegen.IDName(w), owner, e.Handler))
		}
	}
	if len(w.Events) > 0 && !w.Top {
		f.IDs = append(f.IDs, codegen.IDName(w))
	}
	return f, nil
}

func (g *Generator) constructor(w *codegen.Widget) string {
	switch w.Info.Code.Ctor {
	case widget.CtorSpacer:
		return ""
	case widget.CtorSizer:
		return fmt.Sprintf("new %s(%s)", w.Info.Class, strings.Join(g.args(w), ", "))
	case widget.CtorStaticBoxSizer:
		args := g.args(w)
		return fmt.Sprintf("new wxStaticBoxSizer(new wxStaticBox(%s, wxID_ANY, %s), %s)", ref(w.Window), args[1], args[0])
	case widget.CtorCustom:
		args := codegen.SubstituteArgs(w.Custom, ref(w.Window), windowID(w))
		return fmt.Sprintf("new %s(%s)", w.Klass, strings.Join(args, ", "))
	}
	args := append([]string{ref(w.Window), windowID(w)}, g.args(w)...)
	if lit := g.RenderStyle(w.Style); lit != "" {
		args = append(args, "wxDefaultPosition", "wxDefaultSize", lit)
	}
	return fmt.Sprintf("new %s(%s)", w.Info.Class, strings.Join(args, ", "))
}

func (g *Generator) layout(w *codegen.Widget) []string {
	var out []string
	if w.Sizer != nil {
		if w.Top {
			out = append(out, fmt.Sprintf("SetSizer(%s);", w.Sizer.Name))
			out = append(out, fmt.Sprintf("%s->Fit(this);", w.Sizer.Name))
		} else {
			out = append(out, fmt.Sprintf("%s->SetSizer(%s);", w.Name, w.Sizer.Name))
		}
	}
	if w.Top {
		out = append(out, "Layout();")
	}
	if w.Item != nil {
		item := w.Name
		if w.IsSpacer() {
			item = fmt.Sprintf("%d, %d", w.Args[0].Int, w.Args[1].Int)
		}
		flag := g.RenderStyle(w.Item.Flag)
		if flag == "" {
			flag = "0"
		}
		out = append(out, fmt.Sprintf("%s->Add(%s, %d, %s, %d);", w.Container.Name, item, w.Item.Option, flag, w.Item.Border))
	}
	return out
}

// RenderFile lays out a header, a source file or the application file.
func (g *Generator) RenderFile(f *codegen.File) (*codegen.Doc, error) {
	doc := &codegen.Doc{}
	doc.In("", codegen.BlockHeader)
	doc.Line("// -*- C++ -*-")
	doc.Line("//")
	doc.Lines("", codegen.Comment(g.naming, f.Banner))
	doc.Line("//")
	doc.Line("")

	switch f.Role {
	case codegen.RoleHeader:
		g.header(doc, f)
	default:
		g.source(doc, f)
	}
	return doc, nil
}

func guard(path string) string {
	base := filepath.Base(path)
	var b strings.Builder
	for _, r := range strings.ToUpper(base) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

func (g *Generator) header(doc *codegen.Doc, f *codegen.File) {
	in := g.cfg.Indent
	in2 := in + in
	gd := guard(f.Path)

	doc.Line("#ifndef " + gd)
	doc.Line("#define " + gd)
	doc.Line("")
	doc.Line("#include <wx/wx.h>")
	doc.Line("#include <wx/image.h>")
	for _, inc := range f.Includes() {
		if inc != "<wx/wx.h>" {
			doc.Line("#include " + inc)
		}
	}
	if g.cfg.Gettext {
		doc.Line("#include <wx/intl.h>")
	}
	doc.Line("")
	doc.Region("extracode", "")
	doc.Line("")

	for _, c := range f.Classes {
		base := c.Base()
		doc.In(c.Name, codegen.BlockDeclaration)
		doc.Line("")
		doc.Line(fmt.Sprintf("class %s: public %s {", c.Name, base))
		doc.Line("public:")
		if len(c.IDs) > 0 {
			doc.Line(in + "enum {")
			for i, id := range c.IDs {
				doc.Line(fmt.Sprintf("%s%s = wxID_HIGHEST + %d,", in2, id, 1000+i))
			}
			doc.Line(in + "};")
			doc.Line("")
		}
		topStyle := g.RenderStyle(c.Top.Style)
		if topStyle == "" {
			topStyle = "0"
		}
		doc.Line(fmt.Sprintf("%s%s(wxWindow* parent, wxWindowID id, const wxString& title, "+
			"const wxPoint& pos=wxDefaultPosition, const wxSize& size=wxDefaultSize, long style=%s);",
			in, c.Name, topStyle))
		doc.Line("")
		doc.Line("private:")
		doc.Region(c.Name+".methods", in)
		doc.In(c.Name, codegen.BlockMembers)
		doc.Line("")
		doc.Line("protected:")
		doc.Lines(in, c.Members)
		if len(c.Events) > 0 {
			doc.Line("")
			doc.Line(in + "DECLARE_EVENT_TABLE();")
		}
		if len(c.Handlers) > 0 {
			doc.In(c.Name, codegen.BlockHandlers)
			doc.Line("")
			doc.Line("public:")
			for _, h := range c.Handlers {
				doc.Line(fmt.Sprintf("%svirtual void %s(%s &event);", in, h.Name, h.EventType))
			}
		}
		doc.In(c.Name, codegen.BlockFooter)
		doc.Line("}; // wxGlade: end class")
		doc.Line("")
	}
	doc.In("", codegen.BlockFooter)
	doc.Line("")
	doc.Line("#endif // " + gd)
}

func (g *Generator) source(doc *codegen.Doc, f *codegen.File) {
	in := g.cfg.Indent

	if f.Role == codegen.RoleApp {
		doc.Line("#include <wx/wx.h>")
		doc.Line("#include <wx/image.h>")
		if g.cfg.Gettext {
			doc.Line("#include <wx/intl.h>")
		}
		for _, dep := range f.Deps {
			doc.Line(fmt.Sprintf("#include \"%s%s\"", dep.Name, g.naming.Header))
		}
	} else {
		base := strings.TrimSuffix(filepath.Base(f.Path), filepath.Ext(f.Path))
		doc.Line(fmt.Sprintf("#include \"%s%s\"", base, g.naming.Header))
	}
	doc.Line("")
	doc.Region("extracode", "")
	doc.Line("")

	for _, c := range f.Classes {
		base := c.Base()
		doc.In(c.Name, codegen.BlockConstructor)
		doc.Line("")
		doc.Line(fmt.Sprintf("%s::%s(wxWindow* parent, wxWindowID id, const wxString& title, "+
			"const wxPoint& pos, const wxSize& size, long style):", c.Name, c.Name))
		doc.Line(fmt.Sprintf("%s%s(parent, id, title, pos, size, style)", in, base))
		doc.Line("{")
		doc.Lines(in, c.Init)
		doc.Lines(in, c.Layout)
		doc.Region(c.Name+".init", in)
		doc.In(c.Name, codegen.BlockConstructor)
		doc.Line("}")
		doc.Line("")

		if len(c.Events) > 0 {
			doc.In(c.Name, codegen.BlockEventTable)
			doc.Line("")
			doc.Line(fmt.Sprintf("BEGIN_EVENT_TABLE(%s, %s)", c.Name, base))
			doc.Lines(in, c.Events)
			doc.Line("END_EVENT_TABLE();")
			doc.Line("")
		}
		for _, h := range c.Handlers {
			doc.In(c.Name, codegen.BlockHandlers)
			doc.Line("")
			doc.Line(fmt.Sprintf("void %s::%s(%s &event)", c.Name, h.Name, h.EventType))
			doc.Line("{")
			doc.Region(c.Name+"."+h.Name, in,
				in+"event.Skip();",
				in+fmt.Sprintf("wxLogDebug(wxT(\"Event handler (%s::%s) not implemented yet\"));", c.Name, h.Name))
			doc.In(c.Name, codegen.BlockHandlers)
			doc.Line("}")
			doc.Line("")
		}
		doc.In(c.Name, codegen.BlockMembers)
		doc.Line("")
		doc.Region(c.Name+".methods", "")
		doc.In(c.Name, codegen.BlockFooter)
		doc.Line("")
	}

	if app := f.App; app != nil {
		g.application(doc, app)
	}
}

func (g *Generator) application(doc *codegen.Doc, app *codegen.App) {
	in := g.cfg.Indent
	top := app.TopName
	doc.In(app.Class, codegen.BlockApplication)
	doc.Line("")
	doc.Line(fmt.Sprintf("class %s: public wxApp {", app.Class))
	doc.Line("public:")
	doc.Line(in + "bool OnInit();")
	if g.cfg.Gettext {
		doc.Line("protected:")
		doc.Line(in + "wxLocale m_locale;")
	}
	doc.Line("};")
	doc.Line("")
	doc.Line(fmt.Sprintf("IMPLEMENT_APP(%s)", app.Class))
	doc.Line("")
	doc.Line(fmt.Sprintf("bool %s::OnInit()", app.Class))
	doc.Line("{")
	if g.cfg.Gettext {
		doc.Line(in + "m_locale.Init();")
		doc.Line(fmt.Sprintf("%sm_locale.AddCatalog(wxT(%s));", in, strconv.Quote(app.Name)))
		doc.Line("")
	}
	doc.Line(in + "wxInitAllImageHandlers();")
	doc.Line(fmt.Sprintf("%s%s* %s = new %s(NULL, wxID_ANY, wxEmptyString);", in, app.Top.Name, top, app.Top.Name))
	doc.Line(fmt.Sprintf("%sSetTopWindow(%s);", in, top))
	if app.Top.Base() == "wxDialog" {
		doc.Line(fmt.Sprintf("%s%s->ShowModal();", in, top))
		doc.Line(fmt.Sprintf("%s%s->Destroy();", in, top))
	} else {
		doc.Line(fmt.Sprintf("%s%s->Show();", in, top))
	}
	doc.Region(app.Class+".init", in)
	doc.In(app.Class, codegen.BlockApplication)
	doc.Line(in + "return true;")
	doc.Line("}")
}
