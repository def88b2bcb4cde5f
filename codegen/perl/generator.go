// Package perl generates wxPerl code.
package perl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wxglade/wxglade/codegen"
	"github.com/wxglade/wxglade/style"
	"github.com/wxglade/wxglade/widget"
)

// Language is the name the generator is registered under.
const Language = "perl"

// Classes live in modules, the application in a script.
var naming = codegen.Naming{Source: ".pm", App: ".pl", CommentStart: "#"}

// Generator implements codegen.Adapter for wxPerl.
type Generator struct {
	cfg codegen.Config
}

// New creates a Perl generator.
func New(cfg codegen.Config) (codegen.Adapter, error) {
	return &Generator{cfg: cfg}, nil
}

// Language returns "perl"
func (g *Generator) Language() string { return Language }

// Naming returns the Perl file naming convention.
func (g *Generator) Naming() codegen.Naming { return naming }

// FileExtension returns ".pm" for classes and ".pl" for the application.
func (g *Generator) FileExtension(role codegen.Role) string { return naming.Extension(role) }

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

var quoter = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`, `@`, `\@`, "\n", `\n`, "\t", `\t`, "\r", `\r`)

// quote writes a double-quoted Perl string without interpolation.
func quote(s string) string {
	return `"` + quoter.Replace(s) + `"`
}

func (g *Generator) str(s string, translate bool) string {
	if translate && g.cfg.Gettext {
		return "_T(" + quote(s) + ")"
	}
	return quote(s)
}

func (g *Generator) value(v codegen.Value) string {
	switch v.Kind {
	case codegen.ValString:
		return g.str(v.Text, v.Translate)
	case codegen.ValInt:
		return strconv.Itoa(v.Int)
	case codegen.ValBool:
		if v.Bool {
			return "1"
		}
		return "0"
	case codegen.ValSize:
		size := fmt.Sprintf("Wx::Size->new(%d, %d)", v.Width, v.Height)
		if v.DialogUnits {
			return "$self->ConvertDialogToPixels(" + size + ")"
		}
		return size
	case codegen.ValColour:
		if r, gr, b, ok := v.RGB(); ok {
			return fmt.Sprintf("Wx::Colour->new(%d, %d, %d)", r, gr, b)
		}
		return "Wx::SystemSettings::GetColour(" + v.Text + ")"
	case codegen.ValFont:
		family, st, weight := codegen.FontConstants(v.Font)
		underlined := 0
		if v.Font.Underlined {
			underlined = 1
		}
		return fmt.Sprintf("Wx::Font->new(%d, %s, %s, %s, %d, %s)", v.Font.Size, family, st, weight, underlined, quote(v.Font.Face))
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
	switch {
	case w.Top:
		return "$self"
	case w.Attribute:
		return "$self->{" + w.Name + "}"
	}
	return "$" + w.Name
}

// perlClass converts wxButton to Wx::Button.
func perlClass(class string) string {
	return "Wx::" + strings.TrimPrefix(class, "wx")
}

// RenderWidget renders the construction, layout and bindings of w.
func (g *Generator) RenderWidget(w *codegen.Widget) (*codegen.Fragment, error) {
	f := &codegen.Fragment{}
	self := ref(w)

	if w.Top {
		for i, name := range w.Info.Code.Args {
			f.Init = append(f.Init, fmt.Sprintf("$self->%s(%s);", codegen.SetterName(name), g.value(w.Args[i])))
		}
	} else if ctor := g.constructor(w); ctor != "" {
		if w.Attribute {
			f.Init = append(f.Init, self+" = "+ctor+";")
		} else {
			f.Init = append(f.Init, "my "+self+" = "+ctor+";")
		}
	}
	for _, c := range w.Calls {
		args := make([]string, len(c.Args))
		for i, a := range c.Args {
			args[i] = g.value(a)
		}
		f.Init = append(f.Init, fmt.Sprintf("%s->%s(%s);", self, c.Method, strings.Join(args, ", ")))
	}

	f.Layout = g.layout(w)

	for _, e := range w.Events {
		if w.Top {
			f.Events = append(f.Events, fmt.Sprintf("Wx::Event::%s($self, $self->can('%s'));", e.Name, e.Handler))
		} else {
			f.Events = append(f.Events, fmt.Sprintf("Wx::Event::%s($self, %s->GetId, $self->can('%s'));", e.Name, self, e.Handler))
		}
	}
	return f, nil
}

func (g *Generator) constructor(w *codegen.Widget) string {
	switch w.Info.Code.Ctor {
	case widget.CtorSpacer:
		return ""
	case widget.CtorSizer:
		return fmt.Sprintf("%s->new(%s)", perlClass(w.Info.Class), strings.Join(g.args(w), ", "))
	case widget.CtorStaticBoxSizer:
		args := g.args(w)
		return fmt.Sprintf("Wx::StaticBoxSizer->new(Wx::StaticBox->new(%s, wxID_ANY, %s), %s)", ref(w.Window), args[1], args[0])
	case widget.CtorCustom:
		args := codegen.SubstituteArgs(w.Custom, ref(w.Window), "wxID_ANY")
		return fmt.Sprintf("%s->new(%s)", w.Klass, strings.Join(args, ", "))
	}
	args := append([]string{ref(w.Window), "wxID_ANY"}, g.args(w)...)
	if lit := g.RenderStyle(w.Style); lit != "" {
		args = append(args, "wxDefaultPosition", "wxDefaultSize", lit)
	}
	return fmt.Sprintf("%s->new(%s)", perlClass(w.Info.Class), strings.Join(args, ", "))
}

func (g *Generator) layout(w *codegen.Widget) []string {
	var out []string
	self := ref(w)
	if w.Sizer != nil {
		out = append(out, fmt.Sprintf("%s->SetSizer(%s);", self, ref(w.Sizer)))
		if w.Top {
			out = append(out, fmt.Sprintf("%s->Fit($self);", ref(w.Sizer)))
		}
	}
	if w.Top {
		out = append(out, "$self->Layout();")
	}
	if w.Item != nil {
		item := self
		if w.IsSpacer() {
			item = fmt.Sprintf("%d, %d", w.Args[0].Int, w.Args[1].Int)
		}
		flag := g.RenderStyle(w.Item.Flag)
		if flag == "" {
			flag = "0"
		}
		out = append(out, fmt.Sprintf("%s->Add(%s, %d, %s, %d);", ref(w.Container), item, w.Item.Option, flag, w.Item.Border))
	}
	return out
}

// RenderFile lays out packages for the classes and the application.
func (g *Generator) RenderFile(f *codegen.File) (*codegen.Doc, error) {
	doc := &codegen.Doc{}
	in := g.cfg.Indent

	doc.In("", codegen.BlockHeader)
	doc.Line("#!/usr/bin/perl -w -- ")
	doc.Line("#")
	doc.Lines("", codegen.Comment(naming, f.Banner))
	doc.Line("#")
	doc.Line("# To get wxPerl visit http://www.wxperl.it")
	doc.Line("#")
	doc.Line("")
	doc.Line("use Wx qw[:allclasses];")
	doc.Line("use strict;")
	for _, dep := range f.Deps {
		doc.Line("use " + dep.Name + ";")
	}
	doc.Line("")
	doc.Region("extracode", "")
	doc.Line("")

	for _, c := range f.Classes {
		g.class(doc, c, in)
	}
	if app := f.App; app != nil {
		g.application(doc, app, in)
	}
	return doc, nil
}

func (g *Generator) class(doc *codegen.Doc, c *codegen.Class, in string) {
	in2 := in + in
	topStyle := g.RenderStyle(c.Top.Style)
	if topStyle == "" {
		topStyle = "0"
	}

	doc.In(c.Name, codegen.BlockDeclaration)
	doc.Line("")
	doc.Line("package " + c.Name + ";")
	doc.Line("")
	doc.Line("use Wx qw[:everything];")
	doc.Line(fmt.Sprintf("use base qw(%s);", perlClass(c.Base())))
	doc.Line("use strict;")
	if g.cfg.Gettext {
		doc.Line("")
		doc.Line("use Wx::Locale gettext => '_T';")
	}
	doc.Line("")

	doc.In(c.Name, codegen.BlockConstructor)
	doc.Line("sub new {")
	doc.Line(in + "my( $self, $parent, $id, $title, $pos, $size, $style, $name ) = @_;")
	doc.Line(in + "$parent = undef              unless defined $parent;")
	doc.Line(in + "$id     = -1                 unless defined $id;")
	doc.Line(in + `$title  = ""                 unless defined $title;`)
	doc.Line(in + "$pos    = wxDefaultPosition  unless defined $pos;")
	doc.Line(in + "$size   = wxDefaultSize      unless defined $size;")
	doc.Line(in + `$name   = ""                 unless defined $name;`)
	doc.Line("")
	doc.Line(fmt.Sprintf("%s$style = %s", in, topStyle))
	doc.Line(in2 + "unless defined $style;")
	doc.Line("")
	doc.Line(in + "$self = $self->SUPER::new( $parent, $id, $title, $pos, $size, $style, $name );")
	doc.Lines(in, c.Init)
	doc.Lines(in, c.Layout)
	doc.Lines(in, c.Events)
	doc.Region(c.Name+".init", in)
	doc.In(c.Name, codegen.BlockConstructor)
	doc.Line(in + "return $self;")
	doc.Line("}")

	for _, h := range c.Handlers {
		doc.In(c.Name, codegen.BlockHandlers)
		doc.Line("")
		doc.Line("sub " + h.Name + " {")
		doc.Line(in + "my ($self, $event) = @_;")
		doc.Region(c.Name+"."+h.Name, in,
			in+fmt.Sprintf(`warn "Event handler (%s) not implemented";`, h.Name),
			in+"$event->Skip;")
		doc.In(c.Name, codegen.BlockHandlers)
		doc.Line("}")
	}

	doc.In(c.Name, codegen.BlockMembers)
	doc.Line("")
	doc.Region(c.Name+".methods", "")
	doc.In(c.Name, codegen.BlockFooter)
	doc.Line("")
	doc.Line("# end of class " + c.Name)
	doc.Line("")
	doc.Line("1;")
	doc.Line("")
}

func (g *Generator) application(doc *codegen.Doc, app *codegen.App, in string) {
	top := "$" + app.TopName
	doc.In(app.Class, codegen.BlockApplication)
	doc.Line("package " + app.Class + ";")
	doc.Line("")
	doc.Line("use base qw(Wx::App);")
	doc.Line("use strict;")
	doc.Line("")
	doc.Line("sub OnInit {")
	doc.Line(in + "my( $self ) = shift;")
	doc.Line("")
	doc.Line(in + "Wx::InitAllImageHandlers();")
	doc.Line("")
	doc.Line(fmt.Sprintf("%smy %s = %s->new();", in, top, app.Top.Name))
	doc.Line("")
	doc.Line(fmt.Sprintf("%s$self->SetTopWindow(%s);", in, top))
	if app.Top.Base() == "wxDialog" {
		doc.Line(fmt.Sprintf("%s%s->ShowModal();", in, top))
		doc.Line(fmt.Sprintf("%s%s->Destroy();", in, top))
	} else {
		doc.Line(fmt.Sprintf("%s%s->Show(1);", in, top))
	}
	doc.Region(app.Class+".init", in)
	doc.In(app.Class, codegen.BlockApplication)
	doc.Line("")
	doc.Line(in + "return 1;")
	doc.Line("}")
	doc.Line("# end of class " + app.Class)
	doc.Line("")
	doc.Line("package main;")
	doc.Line("")
	doc.Line("unless(caller){")
	if g.cfg.Gettext {
		doc.Line(fmt.Sprintf("%smy $local = Wx::Locale->new(\"English\", \"en\", \"en\");", in))
		doc.Line(fmt.Sprintf("%s$local->AddCatalog(%s);", in, quote(app.Name)))
		doc.Line("")
	}
	doc.Line(fmt.Sprintf("%smy $%s = %s->new();", in, app.Name, app.Class))
	doc.Line(fmt.Sprintf("%s$%s->MainLoop();", in, app.Name))
	doc.Line("}")
}
