package project

import (
	"bytes"
	"encoding/json"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/wxglade/wxglade/errors"
	"github.com/wxglade/wxglade/widget"
)

// Export formats.
const (
	FormatWXG  = "wxg"
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatTOML = "toml"
)

// Document is a read-only view of a project for the export formats.
type Document struct {
	Options Options   `json:"application" yaml:"application" toml:"application"`
	Windows []NodeDoc `json:"windows,omitempty" yaml:"windows,omitempty" toml:"windows,omitempty"`
}

// NodeDoc is one node of a Document. Only active properties are included.
type NodeDoc struct {
	Class      string            `json:"class" yaml:"class" toml:"class"`
	Klass      string            `json:"klass,omitempty" yaml:"klass,omitempty" toml:"klass,omitempty"`
	Name       string            `json:"name" yaml:"name" toml:"name"`
	Properties map[string]string `json:"properties,omitempty" yaml:"properties,omitempty" toml:"properties,omitempty"`
	Item       map[string]string `json:"sizer_item,omitempty" yaml:"sizer_item,omitempty" toml:"sizer_item,omitempty"`
	Events     map[string]string `json:"events,omitempty" yaml:"events,omitempty" toml:"events,omitempty"`
	Children   []NodeDoc         `json:"children,omitempty" yaml:"children,omitempty" toml:"children,omitempty"`
}

// Document returns the export view of p.
func (p *Project) Document() Document {
	doc := Document{Options: p.Options}
	for _, tl := range p.Root.Children() {
		doc.Windows = append(doc.Windows, nodeDoc(tl))
	}
	return doc
}

func nodeDoc(n *widget.Node) NodeDoc {
	d := NodeDoc{Class: n.Class(), Name: n.Name()}
	if n.Klass != n.Class() {
		d.Klass = n.Klass
	}
	var item []*widget.Property
	if it := n.Item(); it != nil {
		item = []*widget.Property{it.Option, it.Flag, it.Border}
		d.Item = make(map[string]string, len(item))
		for _, p := range item {
			d.Item[p.Name()] = p.Value()
		}
	}
	for _, p := range n.Properties() {
		if !p.IsActive() || contains(item, p) {
			continue
		}
		if d.Properties == nil {
			d.Properties = make(map[string]string)
		}
		d.Properties[p.Name()] = p.Value()
	}
	for _, b := range n.Events() {
		if d.Events == nil {
			d.Events = make(map[string]string)
		}
		d.Events[b.Event] = b.Handler
	}
	for _, c := range n.Children() {
		d.Children = append(d.Children, nodeDoc(c))
	}
	return d
}

func contains(list []*widget.Property, p *widget.Property) bool {
	for _, x := range list {
		if x == p {
			return true
		}
	}
	return false
}

// Export renders p in one of the export formats.
func (p *Project) Export(format string) ([]byte, error) {
	switch format {
	case FormatWXG, "":
		var buf bytes.Buffer
		if err := p.Save(&buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatYAML:
		out, err := yaml.Marshal(p.Document())
		return out, errors.Wrap(err, "marshal yaml")
	case FormatJSON:
		out, err := json.MarshalIndent(p.Document(), "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "marshal json")
		}
		return append(out, '\n'), nil
	case FormatTOML:
		out, err := toml.Marshal(p.Document())
		return out, errors.Wrap(err, "marshal toml")
	}
	return nil, errors.WithHint(errors.Newf("unknown export format %q", format), "use wxg, yaml, json or toml")
}
