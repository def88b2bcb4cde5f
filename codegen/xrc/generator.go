// Package xrc generates XRC resource files.
//
// XRC describes widgets only: there is no event binding, no application
// and no place for user code, so the generator writes one file and never
// merges.
package xrc

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/wxglade/wxglade/codegen"
	"github.com/wxglade/wxglade/errors"
	"github.com/wxglade/wxglade/style"
	"github.com/wxglade/wxglade/widget"
)

// Language is the name the generator is registered under.
const Language = "XRC"

// ResourceVersion is the version attribute of the resource element.
const ResourceVersion = "2.3.0.1"

var naming = codegen.Naming{Source: ".xrc", CommentStart: "<!--", CommentEnd: " -->"}

// defaultCustomArgs are the only custom widget arguments XRC can express.
const defaultCustomArgs = "$parent, $id"

// elements maps property names to XRC element names where they differ.
var elements = map[string]string{
	"background": "bg",
	"foreground": "fg",
}

// Generator implements codegen.Adapter for XRC.
type Generator struct {
	cfg codegen.Config
}

// New creates an XRC generator.
func New(cfg codegen.Config) (codegen.Adapter, error) {
	return &Generator{cfg: cfg}, nil
}

// Language returns "XRC"
func (g *Generator) Language() string { return Language }

// Naming returns the XRC file naming convention.
func (g *Generator) Naming() codegen.Naming { return naming }

// FileExtension returns ".xrc".
func (g *Generator) FileExtension(role codegen.Role) string { return naming.Extension(role) }

// Supports reports false for every feature.
func (g *Generator) Supports(codegen.Feature) bool { return false }

// SupportsClass reports true; custom widgets are checked per instance.
func (g *Generator) SupportsClass(*widget.ClassInfo) bool { return true }

// RenderStyle joins the supported names with "|".
func (g *Generator) RenderStyle(set *style.Set) string {
	if set == nil {
		return ""
	}
	return strings.Join(set.Supported(g.cfg.Version), "|")
}

func escape(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func element(name, value string) string {
	return fmt.Sprintf("<%s>%s</%s>", name, escape(value), name)
}

// RenderWidget renders the opening of the object in Init and its closing in
// Layout. Lines are relative to the object; RenderFile nests them.
func (g *Generator) RenderWidget(w *codegen.Widget) (*codegen.Fragment, error) {
	in := g.cfg.Indent
	f := &codegen.Fragment{}
	n := w.Node

	if w.IsSpacer() {
		f.Init = append(f.Init, `<object class="spacer">`)
		f.Init = append(f.Init, prefix(in, g.item(w.Item))...)
		f.Init = append(f.Init, in+element("size", fmt.Sprintf("%d, %d", w.Args[0].Int, w.Args[1].Int)))
		f.Layout = append(f.Layout, "</object>")
		return f, nil
	}

	open := ""
	if w.Item != nil {
		f.Init = append(f.Init, `<object class="sizeritem">`)
		f.Init = append(f.Init, prefix(in, g.item(w.Item))...)
		open = in
	}

	class := w.Info.Class
	if w.Info.Code.Ctor == widget.CtorCustom {
		if args := strings.Join(w.Custom, ", "); args != defaultCustomArgs {
			return nil, errors.WithHint(
				errors.Unsupportedf("XRC code cannot pass the arguments %q to custom widget %s", args, w.Name),
				"reset the arguments to "+defaultCustomArgs)
		}
		class = "unknown"
	}
	tag := fmt.Sprintf(`<object class="%s" name="%s"`, escape(class), escape(w.Name))
	if w.Top && w.Klass != "" && w.Klass != w.Info.Class {
		tag += fmt.Sprintf(` subclass="%s"`, escape(w.Klass))
	}
	f.Init = append(f.Init, open+tag+">")
	f.Init = append(f.Init, prefix(open+in, g.properties(w, n))...)

	f.Layout = append(f.Layout, open+"</object>")
	if w.Item != nil {
		f.Layout = append(f.Layout, "</object>")
	}
	return f, nil
}

func (g *Generator) item(it *codegen.Item) []string {
	out := []string{element("option", strconv.Itoa(it.Option))}
	if flag := g.RenderStyle(it.Flag); flag != "" {
		out = append(out, element("flag", flag))
	}
	return append(out, element("border", strconv.Itoa(it.Border)))
}

func (g *Generator) properties(w *codegen.Widget, n *widget.Node) []string {
	var out []string
	for i, name := range w.Info.Code.Args {
		out = append(out, g.value(name, w.Args[i])...)
	}
	if w.Style != nil {
		if s := g.RenderStyle(w.Style); s != "" {
			out = append(out, element("style", s))
		}
	}
	for _, s := range w.Info.Code.Setters {
		if p := n.Prop(s.Property); p != nil && p.IsActive() {
			out = append(out, element(s.Property, p.Value()))
		}
	}
	for _, name := range []string{"size", "background", "foreground", "font", "tooltip"} {
		p := n.Prop(name)
		if p == nil || !p.IsActive() || p.Value() == "" {
			continue
		}
		if name == "font" {
			out = append(out, font(p.Font(), g.cfg.Indent)...)
			continue
		}
		tag := name
		if e, ok := elements[name]; ok {
			tag = e
		}
		out = append(out, element(tag, p.Value()))
	}
	for _, flag := range []struct{ prop, tag, value string }{
		{"disabled", "enabled", "0"},
		{"focused", "focused", "1"},
		{"hidden", "hidden", "1"},
	} {
		if p := n.Prop(flag.prop); p != nil && p.IsActive() && p.Bool() {
			out = append(out, element(flag.tag, flag.value))
		}
	}
	return out
}

func (g *Generator) value(name string, v codegen.Value) []string {
	switch v.Kind {
	case codegen.ValBool:
		if v.Bool {
			return []string{element(name, "1")}
		}
		return []string{element(name, "0")}
	case codegen.ValInt:
		return []string{element(name, strconv.Itoa(v.Int))}
	case codegen.ValStyle:
		return []string{element(name, g.RenderStyle(v.Styles))}
	case codegen.ValFont:
		return font(v.Font, g.cfg.Indent)
	case codegen.ValSize:
		s := fmt.Sprintf("%d,%d", v.Width, v.Height)
		if v.DialogUnits {
			s += "d"
		}
		return []string{element(name, s)}
	}
	return []string{element(name, v.Text)}
}

func font(f *widget.Font, in string) []string {
	if f == nil {
		return nil
	}
	family, st, weight := codegen.FontConstants(f)
	underlined := "0"
	if f.Underlined {
		underlined = "1"
	}
	out := []string{"<font>",
		in + element("size", strconv.Itoa(f.Size)),
		in + element("family", family),
		in + element("style", st),
		in + element("weight", weight),
		in + element("underlined", underlined),
	}
	if f.Face != "" {
		out = append(out, in+element("face", f.Face))
	}
	return append(out, "</font>")
}

func prefix(p string, lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = p + l
	}
	return out
}

// commentText breaks up "--", which XML does not allow inside a comment.
func commentText(s string) string {
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "- -")
	}
	return s
}

// RenderFile writes the resource document.
func (g *Generator) RenderFile(f *codegen.File) (*codegen.Doc, error) {
	doc := &codegen.Doc{}
	encoding := g.cfg.Encoding
	if encoding == "" {
		encoding = "UTF-8"
	}

	doc.In("", codegen.BlockHeader)
	doc.Line(fmt.Sprintf(`<?xml version="1.0" encoding="%s"?>`, encoding))
	banner := make([]string, len(f.Banner))
	for i, l := range f.Banner {
		banner[i] = commentText(l)
	}
	doc.Lines("", codegen.Comment(naming, banner))
	doc.Line("")
	doc.Line(fmt.Sprintf(`<resource version="%s">`, ResourceVersion))
	for _, c := range f.Classes {
		doc.In(c.Name, codegen.BlockDeclaration)
		g.nest(doc, c.Top, g.cfg.Indent)
	}
	doc.In("", codegen.BlockFooter)
	doc.Line("</resource>")
	return doc, nil
}

// nest writes w and its children. Children of a sizer item are indented one
// level deeper than the item wrapper.
func (g *Generator) nest(doc *codegen.Doc, w *codegen.Widget, indent string) {
	doc.Lines(indent, w.Fragment.Init)
	inner := indent + g.cfg.Indent
	if w.Item != nil && !w.IsSpacer() {
		inner += g.cfg.Indent
	}
	for _, c := range w.Children {
		g.nest(doc, c, inner)
	}
	doc.Lines(indent, w.Fragment.Layout)
}
