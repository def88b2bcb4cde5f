package project

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/wxglade/wxglade/errors"
	"github.com/wxglade/wxglade/logger"
	"github.com/wxglade/wxglade/version"
	"github.com/wxglade/wxglade/widget"
)

// element is a generic XML element.
type element struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []element  `xml:",any"`
}

func (e *element) attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func (e *element) child(name string) *element {
	for i := range e.Children {
		if e.Children[i].XMLName.Local == name {
			return &e.Children[i]
		}
	}
	return nil
}

// fontFields is the element order of a <font> property.
var fontFields = []string{"size", "family", "style", "weight", "underlined", "face"}

// Load reads a .wxg document.
func Load(r io.Reader, reg *widget.Registry) (*Project, error) {
	var root element
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, errors.Wrap(err, "parse project")
	}
	if root.XMLName.Local != "application" {
		return nil, errors.Newf("project root element is <%s>, expected <application>", root.XMLName.Local)
	}

	p := New(reg)
	if err := p.readOptions(&root); err != nil {
		return nil, err
	}
	for i := range root.Children {
		c := &root.Children[i]
		if c.XMLName.Local != "object" {
			continue
		}
		if err := p.readObject(p.Root, c, nil); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// LoadFile reads a .wxg file.
func LoadFile(path string, reg *widget.Registry) (*Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open project %s", path)
	}
	defer f.Close()

	p, err := Load(f, reg)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	p.Path = path
	return p, nil
}

func (p *Project) readOptions(app *element) error {
	o := &p.Options
	for _, a := range app.Attrs {
		v := a.Value
		var err error
		switch a.Name.Local {
		case "name":
			o.Name = v
		case "class":
			o.Class = v
		case "top_window":
			o.TopWindow = v
		case "language":
			o.Language = v
		case "path":
			o.OutputPath = v
		case "option":
			o.MultipleFiles = v == "1"
		case "overwrite":
			o.Overwrite = v == "1"
		case "is_template":
			o.IsTemplate = v == "1"
		case "for_version":
			o.ForVersion = v
		case "indent_amount":
			o.IndentAmount, err = strconv.Atoi(v)
		case "indent_symbol":
			o.IndentSymbol = v
		case "encoding":
			o.Encoding = v
		case "use_gettext":
			o.UseGettext = v == "1"
		case "header_extension":
			o.HeaderExtension = v
		case "source_extension":
			o.SourceExtension = v
		default:
			logger.Debugw("ignoring application attribute", "attribute", a.Name.Local, "value", v)
		}
		if err != nil {
			return errors.Wrapf(err, "application attribute %s", a.Name.Local)
		}
	}
	return nil
}

func (p *Project) readObject(parent *widget.Node, e *element, item *element) error {
	class, _ := e.attr("class")
	if class == "sizeritem" {
		inner := e.child("object")
		if inner == nil {
			return errors.Newf("sizeritem in %s has no object", parent.Path())
		}
		return p.readObject(parent, inner, e)
	}

	name, _ := e.attr("name")
	base, _ := e.attr("base")
	info, ok := p.Registry.LookupEditor(base)
	if !ok {
		info, ok = p.Registry.Lookup(class)
	}
	if !ok {
		return errors.WithHint(errors.Newf("unknown widget %s (base %q) at %s/%s", class, base, parent.Path(), name),
			"registered classes: "+strings.Join(p.Registry.List(), ", "))
	}

	n, err := p.Registry.NewNode(info.Class, name)
	if err != nil {
		return err
	}
	n.AllowUnknownStyles()
	if class != "" && (info.Category == widget.CategoryToplevel || info.Code.Ctor == widget.CtorCustom) {
		if err := n.SetKlass(class); err != nil {
			return err
		}
	}

	for i := range e.Children {
		c := &e.Children[i]
		tag := c.XMLName.Local
		switch tag {
		case "object":
			continue
		case "events":
			for _, h := range c.Children {
				event, _ := h.attr("event")
				if err := n.SetEvent(event, strings.TrimSpace(h.Text)); err != nil {
					return errors.Wrapf(err, "%s", n.Path())
				}
			}
			continue
		}
		prop := n.Prop(tag)
		if prop == nil {
			logger.Warnw("ignoring unknown property", "widget", name, "class", info.Class, "property", tag)
			continue
		}
		value := c.Text
		if prop.Kind() == widget.KindFont {
			value = fontValue(c)
		}
		if err := prop.Set(value); err != nil {
			return errors.Wrapf(err, "%s/%s", parent.Path(), name)
		}
		prop.SetActive(true)
	}

	if err := parent.InsertChild(-1, n); err != nil {
		return err
	}
	if item != nil {
		if err := readItem(n, item); err != nil {
			return err
		}
	}

	for i := range e.Children {
		c := &e.Children[i]
		if c.XMLName.Local != "object" {
			continue
		}
		if err := p.readObject(n, c, nil); err != nil {
			return err
		}
	}
	return nil
}

func readItem(n *widget.Node, item *element) error {
	it := n.Item()
	if it == nil {
		return errors.Structuralf("%s is in a sizeritem but its parent is not a sizer", n.Path())
	}
	n.AllowUnknownStyles()
	for _, p := range []*widget.Property{it.Option, it.Flag, it.Border} {
		c := item.child(p.Name())
		if c == nil {
			continue
		}
		if err := p.Set(c.Text); err != nil {
			return errors.Wrapf(err, "%s", n.Path())
		}
	}
	return nil
}

func fontValue(e *element) string {
	parts := make([]string, len(fontFields))
	for i, f := range fontFields {
		if c := e.child(f); c != nil {
			parts[i] = strings.TrimSpace(c.Text)
		}
	}
	return strings.Join(parts, ",")
}

// Save writes the project as a .wxg document. Only active properties are
// written.
func (p *Project) Save(w io.Writer) error {
	var buf bytes.Buffer
	buf.WriteString("<?xml version=\"1.0\"?>\n")
	fmt.Fprintf(&buf, "<!-- generated by %s -->\n\n", version.Get().Banner())

	buf.WriteString("<application")
	for _, a := range p.optionAttrs() {
		fmt.Fprintf(&buf, " %s=\"%s\"", a[0], escape(a[1]))
	}
	buf.WriteString(">\n")
	for _, tl := range p.Root.Children() {
		writeNode(&buf, tl, 1)
	}
	buf.WriteString("</application>\n")

	_, err := w.Write(buf.Bytes())
	return errors.Wrap(err, "write project")
}

// SaveFile writes the project to path.
func (p *Project) SaveFile(path string) error {
	var buf bytes.Buffer
	if err := p.Save(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}

func (p *Project) optionAttrs() [][2]string {
	o := p.Options
	attrs := map[string]string{
		"name":             o.Name,
		"class":            o.Class,
		"top_window":       o.TopWindow,
		"language":         o.Language,
		"path":             o.OutputPath,
		"option":           boolAttr(o.MultipleFiles),
		"overwrite":        boolAttr(o.Overwrite),
		"is_template":      boolAttr(o.IsTemplate),
		"for_version":      o.ForVersion,
		"indent_amount":    strconv.Itoa(o.IndentAmount),
		"indent_symbol":    o.IndentSymbol,
		"encoding":         o.Encoding,
		"use_gettext":      boolAttr(o.UseGettext),
		"header_extension": o.HeaderExtension,
		"source_extension": o.SourceExtension,
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([][2]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, [2]string{k, attrs[k]})
	}
	return out
}

func boolAttr(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func writeNode(buf *bytes.Buffer, n *widget.Node, depth int) {
	indent := strings.Repeat("    ", depth)
	if it := n.Item(); it != nil {
		fmt.Fprintf(buf, "%s<object class=\"sizeritem\">\n", indent)
		for _, p := range []*widget.Property{it.Option, it.Border, it.Flag} {
			if p.IsActive() {
				fmt.Fprintf(buf, "%s    <%s>%s</%s>\n", indent, p.Name(), escape(p.Value()), p.Name())
			}
		}
		writeObject(buf, n, depth+1)
		fmt.Fprintf(buf, "%s</object>\n", indent)
		return
	}
	writeObject(buf, n, depth)
}

func writeObject(buf *bytes.Buffer, n *widget.Node, depth int) {
	indent := strings.Repeat("    ", depth)
	fmt.Fprintf(buf, "%s<object class=\"%s\" name=\"%s\" base=\"%s\">\n",
		indent, escape(n.Klass), escape(n.Name()), escape(n.Info().Editor))

	inner := indent + "    "
	for _, p := range n.Properties() {
		if n.Item() != nil && (p == n.Item().Option || p == n.Item().Flag || p == n.Item().Border) {
			continue
		}
		if !p.IsActive() {
			continue
		}
		if p.Kind() == widget.KindFont && p.Font() != nil {
			writeFont(buf, inner, p.Font())
			continue
		}
		fmt.Fprintf(buf, "%s<%s>%s</%s>\n", inner, p.Name(), escape(p.Value()), p.Name())
	}
	if events := n.Events(); len(events) > 0 {
		fmt.Fprintf(buf, "%s<events>\n", inner)
		for _, b := range events {
			fmt.Fprintf(buf, "%s    <handler event=\"%s\">%s</handler>\n", inner, escape(b.Event), escape(b.Handler))
		}
		fmt.Fprintf(buf, "%s</events>\n", inner)
	}
	for _, c := range n.Children() {
		writeNode(buf, c, depth+1)
	}
	fmt.Fprintf(buf, "%s</object>\n", indent)
}

func writeFont(buf *bytes.Buffer, indent string, f *widget.Font) {
	underlined := "0"
	if f.Underlined {
		underlined = "1"
	}
	values := []string{strconv.Itoa(f.Size), f.Family, f.Style, f.Weight, underlined, f.Face}
	fmt.Fprintf(buf, "%s<font>\n", indent)
	for i, field := range fontFields {
		fmt.Fprintf(buf, "%s    <%s>%s</%s>\n", indent, field, escape(values[i]), field)
	}
	fmt.Fprintf(buf, "%s</font>\n", indent)
}

func escape(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
