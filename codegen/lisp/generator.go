// Package lisp generates wxCL code. wxCL binds wxWidgets 2.8 only.
package lisp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wxglade/wxglade/codegen"
	"github.com/wxglade/wxglade/errors"
	"github.com/wxglade/wxglade/style"
	"github.com/wxglade/wxglade/widget"
)

// Language is the name the generator is registered under.
const Language = "lisp"

var naming = codegen.Naming{Source: ".lisp", CommentStart: ";;;"}

// eventTypes maps event macros to wxCL event type functions.
var eventTypes = map[string]string{
	"EVT_BUTTON":      "wxEVT_COMMAND_BUTTON_CLICKED",
	"EVT_TEXT":        "wxEVT_COMMAND_TEXT_UPDATED",
	"EVT_TEXT_ENTER":  "wxEVT_COMMAND_TEXT_ENTER",
	"EVT_CHECKBOX":    "wxEVT_COMMAND_CHECKBOX_CLICKED",
	"EVT_CLOSE":       "wxEVT_CLOSE_WINDOW",
	"EVT_SIZE":        "wxEVT_SIZE",
	"EVT_INIT_DIALOG": "wxEVT_INIT_DIALOG",
}

// unsupported lists classes wxCL does not wrap.
var unsupported = map[string]bool{
	"wxHyperlinkCtrl": true,
}

// Generator implements codegen.Adapter for wxCL.
type Generator struct {
	cfg codegen.Config
}

// New creates a Lisp generator. It fails for toolkit versions above 2.8.
func New(cfg codegen.Config) (codegen.Adapter, error) {
	if cfg.AtLeast("3.0") {
		return nil, errors.WithHint(
			errors.Unsupportedf("Lisp code generation is not supported for wx %s", cfg.Version.Original()),
			"set for_version to 2.8 or choose another language")
	}
	return &Generator{cfg: cfg}, nil
}

// Language returns "lisp"
func (g *Generator) Language() string { return Language }

// Naming returns the Lisp file naming convention.
func (g *Generator) Naming() codegen.Naming { return naming }

// FileExtension returns ".lisp" for every role.
func (g *Generator) FileExtension(role codegen.Role) string { return naming.Extension(role) }

// Supports reports true for every feature.
func (g *Generator) Supports(codegen.Feature) bool { return true }

// SupportsClass reports whether wxCL wraps the class.
func (g *Generator) SupportsClass(info *widget.ClassInfo) bool { return !unsupported[info.Class] }

// RenderStyle returns a single constant or a logior form.
func (g *Generator) RenderStyle(set *style.Set) string {
	if set == nil {
		return ""
	}
	names := set.Supported(g.cfg.Version)
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	return "(logior " + strings.Join(names, " ") + ")"
}

var quoter = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func quote(s string) string { return `"` + quoter.Replace(s) + `"` }

func (g *Generator) value(v codegen.Value) string {
	switch v.Kind {
	case codegen.ValString:
		return quote(v.Text)
	case codegen.ValInt:
		return strconv.Itoa(v.Int)
	case codegen.ValBool:
		if v.Bool {
			return "1"
		}
		return "0"
	case codegen.ValSize:
		if v.DialogUnits {
			return fmt.Sprintf("(wxWindow_ConvertDialogToPixels (slot-top-window obj) %d %d)", v.Width, v.Height)
		}
		return fmt.Sprintf("%d %d", v.Width, v.Height)
	case codegen.ValColour:
		if r, gr, b, ok := v.RGB(); ok {
			return fmt.Sprintf("(wxColour_CreateRGB %d %d %d 255)", r, gr, b)
		}
		return "(wxSystemSettings_GetColour " + v.Text + ")"
	case codegen.ValFont:
		family, st, weight := codegen.FontConstants(v.Font)
		underlined := 0
		if v.Font.Underlined {
			underlined = 1
		}
		return fmt.Sprintf("(wxFont_Create %d %s %s %s %d %s wxFONTENCODING_DEFAULT)",
			v.Font.Size, family, st, weight, underlined, quote(v.Font.Face))
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

// slot is the slot name of w; wxCL keeps every widget in a slot.
func slot(w *codegen.Widget) string {
	if w.Top {
		return "top-window"
	}
	return strings.ReplaceAll(w.Name, "_", "-")
}

func ref(w *codegen.Widget) string {
	return "(slot-" + slot(w) + " obj)"
}

// RenderWidget renders the construction, layout and event connections of w.
func (g *Generator) RenderWidget(w *codegen.Widget) (*codegen.Fragment, error) {
	f := &codegen.Fragment{}
	self := ref(w)
	if !w.IsSpacer() {
		f.Members = append(f.Members, fmt.Sprintf("(%s :initform nil :accessor slot-%s)", slot(w), slot(w)))
	}

	if ctor := g.constructor(w); ctor != "" {
		f.Init = append(f.Init, fmt.Sprintf("(setf %s %s)", self, ctor))
	}
	if w.Top {
		for i, name := range w.Info.Code.Args {
			f.Init = append(f.Init, fmt.Sprintf("(wxWindow_%s %s %s)", codegen.SetterName(name), self, g.value(w.Args[i])))
		}
	}
	for _, c := range w.Calls {
		args := []string{self}
		for _, a := range c.Args {
			args = append(args, g.value(a))
		}
		f.Init = append(f.Init, fmt.Sprintf("(wxWindow_%s %s)", c.Method, strings.Join(args, " ")))
	}

	f.Layout = g.layout(w)

	for _, e := range w.Events {
		evt, ok := eventTypes[e.Name]
		if !ok {
			return nil, errors.Unsupportedf("Lisp code does not support event %s", e.Name)
		}
		f.Events = append(f.Events, fmt.Sprintf("(wxEvtHandler_Connect (slot-top-window obj) (wxWindow_GetId %s) (exp%s) (wxClosure_Create #'%s obj))",
			self, evt, e.Handler))
	}
	return f, nil
}

func (g *Generator) constructor(w *codegen.Widget) string {
	parent := "nil"
	if w.Window != nil {
		parent = ref(w.Window)
	}
	style := g.RenderStyle(w.Style)
	if style == "" {
		style = "0"
	}
	switch w.Info.Code.Ctor {
	case widget.CtorSpacer:
		return ""
	case widget.CtorSizer:
		return fmt.Sprintf("(%s_Create %s)", w.Info.Class, strings.Join(g.args(w), " "))
	case widget.CtorStaticBoxSizer:
		args := g.args(w)
		return fmt.Sprintf("(wxStaticBoxSizer_Create (wxStaticBox_Create %s wxID_ANY %s -1 -1 -1 -1 0) %s)", parent, args[1], args[0])
	case widget.CtorCustom:
		args := codegen.SubstituteArgs(w.Custom, parent, "wxID_ANY")
		return fmt.Sprintf("(%s_Create %s)", w.Klass, strings.Join(args, " "))
	}
	args := []string{parent, "wxID_ANY"}
	if !w.Top {
		args = append(args, g.args(w)...)
	} else {
		args = append(args, `""`)
	}
	args = append(args, "-1 -1 -1 -1", style)
	return fmt.Sprintf("(%s_Create %s)", w.Info.Class, strings.Join(args, " "))
}

func (g *Generator) layout(w *codegen.Widget) []string {
	var out []string
	self := ref(w)
	if w.Sizer != nil {
		out = append(out, fmt.Sprintf("(wxWindow_SetSizer %s %s)", self, ref(w.Sizer)))
		if w.Top {
			out = append(out, fmt.Sprintf("(wxSizer_Fit %s %s)", ref(w.Sizer), self))
		}
	}
	if w.Top {
		out = append(out, fmt.Sprintf("(wxWindow_Layout %s)", self))
	}
	if w.Item != nil {
		flag := g.RenderStyle(w.Item.Flag)
		if flag == "" {
			flag = "0"
		}
		sizer := ref(w.Container)
		switch {
		case w.IsSpacer():
			out = append(out, fmt.Sprintf("(wxSizer_Add %s %d %d %d %s %d nil)", sizer, w.Args[0].Int, w.Args[1].Int, w.Item.Option, flag, w.Item.Border))
		case w.IsSizer():
			out = append(out, fmt.Sprintf("(wxSizer_AddSizer %s %s %d %s %d nil)", sizer, self, w.Item.Option, flag, w.Item.Border))
		default:
			out = append(out, fmt.Sprintf("(wxSizer_AddWindow %s %s %d %s %d nil)", sizer, self, w.Item.Option, flag, w.Item.Border))
		}
	}
	return out
}

// RenderFile lays out the classes and the application.
func (g *Generator) RenderFile(f *codegen.File) (*codegen.Doc, error) {
	doc := &codegen.Doc{}
	in := g.cfg.Indent
	in2 := in + in

	doc.In("", codegen.BlockHeader)
	doc.Lines("", codegen.Comment(naming, f.Banner))
	doc.Line(";;;")
	doc.Line("")
	doc.Line("(asdf:operate 'asdf:load-op 'wxcl)")
	doc.Line("(use-package \"FFI\")")
	doc.Line("(ffi:default-foreign-language :stdc)")
	for _, dep := range f.Deps {
		doc.Line(fmt.Sprintf("(load %s)", quote(dep.Name+naming.Source)))
	}
	doc.Line("")
	doc.Region("extracode", "")
	doc.Line("")

	for _, c := range f.Classes {
		doc.In(c.Name, codegen.BlockDeclaration)
		doc.Line("")
		doc.Line(fmt.Sprintf("(defclass %s()", c.Name))
		for i, m := range c.Members {
			switch {
			case len(c.Members) == 1:
				doc.Line(in + "(" + m + "))")
			case i == 0:
				doc.Line(in + "(" + m)
			case i == len(c.Members)-1:
				doc.Line(in + " " + m + "))")
			default:
				doc.Line(in + " " + m)
			}
		}
		doc.Line("")
		doc.Line(fmt.Sprintf("(defun make-%s ()", c.Name))
		doc.Line(fmt.Sprintf("%s(let ((obj (make-instance '%s)))", in, c.Name))
		doc.Line(in2 + "(init obj)")
		doc.Line(in2 + "obj))")
		doc.Line("")

		doc.In(c.Name, codegen.BlockConstructor)
		doc.Line(fmt.Sprintf("(defmethod init ((obj %s))", c.Name))
		doc.Line(in + `"Creates the widgets of the class."`)
		doc.Lines(in, c.Init)
		doc.Lines(in, c.Layout)
		doc.Lines(in, c.Events)
		doc.Region(c.Name+".init", in)
		doc.In(c.Name, codegen.BlockConstructor)
		doc.Line(in + ")")

		for _, h := range c.Handlers {
			doc.In(c.Name, codegen.BlockHandlers)
			doc.Line("")
			doc.Line(fmt.Sprintf("(defun %s (function data event)", h.Name))
			doc.Region(c.Name+"."+h.Name, in,
				in+fmt.Sprintf(`(print "Event handler '%s' not implemented!")`, h.Name),
				in+"(when event",
				in2+"(wxEvent:wxEvent_Skip event))")
			doc.In(c.Name, codegen.BlockHandlers)
			doc.Line(")")
		}
		doc.In(c.Name, codegen.BlockMembers)
		doc.Line("")
		doc.Region(c.Name+".methods", "")
		doc.In(c.Name, codegen.BlockFooter)
		doc.Line("")
		doc.Line(";;; end of class " + c.Name)
		doc.Line("")
	}

	if app := f.App; app != nil {
		top := strings.ReplaceAll(app.TopName, "_", "-")
		doc.In(app.Class, codegen.BlockApplication)
		doc.Line("")
		doc.Line("(defun init-func (fun data evt)")
		doc.Line(fmt.Sprintf("%s(let ((%s (make-%s)))", in, top, app.Top.Name))
		doc.Line(fmt.Sprintf("%s(ELJApp_SetTopWindow (slot-top-window %s))", in2, top))
		doc.Line(fmt.Sprintf("%s(wxWindow_Show (slot-top-window %s))", in2, top))
		doc.Region(app.Class+".init", in2)
		doc.In(app.Class, codegen.BlockApplication)
		doc.Line(in2 + "))")
		doc.Line("")
		doc.Line("(unwind-protect")
		doc.Line(in + "(Eljapp_initializeC (wxclosure_Create #'init-func nil) 0 nil))")
	}
	return doc, nil
}
