package project

import (
	"encoding/xml"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/wxglade/wxglade/errors"
	"github.com/wxglade/wxglade/logger"
	"github.com/wxglade/wxglade/widget"
)

// xrcProperties maps XRC element names to project property names where they
// differ.
var xrcProperties = map[string]string{
	"bg": "background",
	"fg": "foreground",
}

// ConvertXRC builds a project from an XRC resource document. The resource
// format carries no application settings, so the project gets the default
// options.
func ConvertXRC(r io.Reader, reg *widget.Registry) (*Project, error) {
	var root element
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, errors.Wrap(err, "parse XRC")
	}
	if root.XMLName.Local != "resource" {
		return nil, errors.Newf("XRC root element is <%s>, expected <resource>", root.XMLName.Local)
	}

	p := New(reg)
	p.Options.Language = "XRC"
	for i := range root.Children {
		c := &root.Children[i]
		if c.XMLName.Local != "object" {
			continue
		}
		if err := p.convertObject(p.Root, c, nil); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// ConvertXRCFile converts the XRC file in to the project file out. The
// adjust functions may change the options before the project is saved.
func ConvertXRCFile(in, out string, reg *widget.Registry, adjust ...func(*Options)) error {
	f, err := os.Open(in)
	if err != nil {
		return errors.Wrapf(err, "open %s", in)
	}
	defer f.Close()

	p, err := ConvertXRC(f, reg)
	if err != nil {
		return errors.Wrapf(err, "convert %s", in)
	}
	for _, fn := range adjust {
		fn(&p.Options)
	}
	return p.SaveFile(out)
}

func (p *Project) convertObject(parent *widget.Node, e *element, item *element) error {
	class, _ := e.attr("class")
	switch class {
	case "sizeritem":
		inner := e.child("object")
		if inner == nil {
			return errors.Newf("sizeritem in %s has no object", parent.Path())
		}
		return p.convertObject(parent, inner, e)
	case "spacer":
		return p.convertSpacer(parent, e)
	}

	info, ok := p.Registry.Lookup(class)
	if !ok {
		return errors.WithHint(errors.Newf("XRC class %s is not supported (at %s)", class, parent.Path()),
			"supported classes: "+strings.Join(p.Registry.List(), ", "))
	}

	name, _ := e.attr("name")
	if name == "" || !widget.IsIdentifier(name) {
		name = parent.NextName(namePattern(info))
	}
	n, err := p.Registry.NewNode(info.Class, name)
	if err != nil {
		return err
	}
	n.AllowUnknownStyles()
	if subclass, ok := e.attr("subclass"); ok && subclass != "" {
		if err := n.SetKlass(subclass); err != nil {
			return err
		}
	} else if info.Category == widget.CategoryToplevel {
		n.Klass = uniqueKlass(parent, n.Klass)
	}

	for i := range e.Children {
		c := &e.Children[i]
		tag := c.XMLName.Local
		if tag == "object" {
			continue
		}
		if err := convertProperty(n, tag, c); err != nil {
			return err
		}
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
		if c.XMLName.Local == "object" {
			if err := p.convertObject(n, c, nil); err != nil {
				return err
			}
		}
	}
	return nil
}

func convertProperty(n *widget.Node, tag string, c *element) error {
	value := strings.TrimSpace(c.Text)
	switch tag {
	case "enabled":
		if value == "0" {
			return setActive(n, "disabled", "1")
		}
		return nil
	case "font":
		return setActive(n, "font", fontValue(c))
	}
	if mapped, ok := xrcProperties[tag]; ok {
		tag = mapped
	}
	if n.Prop(tag) == nil {
		logger.Debugw("XRC property has no project equivalent", "widget", n.Name(), "property", tag)
		return nil
	}
	return setActive(n, tag, c.Text)
}

func setActive(n *widget.Node, name, value string) error {
	p, err := n.Property(name)
	if err != nil {
		return err
	}
	if err := p.Set(value); err != nil {
		return errors.Wrapf(err, "%s", n.Name())
	}
	p.SetActive(true)
	return nil
}

// convertSpacer handles XRC spacers, which carry their own sizer item
// settings and a size instead of width and height.
func (p *Project) convertSpacer(parent *widget.Node, e *element) error {
	n, err := p.Registry.NewNode("spacer", "spacer")
	if err != nil {
		return err
	}
	if c := e.child("size"); c != nil {
		parts := strings.Split(c.Text, ",")
		if len(parts) == 2 {
			if err := setActive(n, "width", strings.TrimSpace(parts[0])); err != nil {
				return err
			}
			if err := setActive(n, "height", strings.TrimSpace(parts[1])); err != nil {
				return err
			}
		}
	}
	if err := parent.InsertChild(-1, n); err != nil {
		return err
	}
	return readItem(n, e)
}

func namePattern(info *widget.ClassInfo) string {
	if info.NamePattern != "" {
		return info.NamePattern
	}
	return strings.ToLower(strings.TrimPrefix(info.Class, "wx")) + "_%d"
}

func uniqueKlass(root *widget.Node, klass string) string {
	used := make(map[string]bool)
	for _, tl := range root.Children() {
		used[tl.Klass] = true
	}
	if !used[klass] {
		return klass
	}
	for i := 2; ; i++ {
		candidate := klass + strconv.Itoa(i)
		if !used[candidate] {
			return candidate
		}
	}
}
