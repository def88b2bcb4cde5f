package codegen

import (
	"strings"
)

// BlockKind tags the content of a block.
type BlockKind int

const (
	BlockHeader BlockKind = iota
	BlockDeclaration
	BlockMembers
	BlockConstructor
	BlockEventTable
	BlockHandlers
	BlockApplication
	BlockFooter
	// BlockUser is a user code region.
	BlockUser
)

func (k BlockKind) String() string {
	return [...]string{"header", "declaration", "members", "constructor", "event-table",
		"handlers", "application", "footer", "user"}[k]
}

// Block is a contiguous piece of a generated file.
type Block struct {
	// Class owns the block; empty for file-level code.
	Class string
	Kind  BlockKind
	// Text is engine-owned code.
	Text string
	// Region, Indent and Body describe a user code region.
	Region string
	Indent string
	Body   string
}

// Doc is a generated file as an ordered list of blocks.
type Doc struct {
	Blocks []Block
	class  string
	kind   BlockKind
}

// In sets the owner and kind of the blocks added next.
func (d *Doc) In(class string, kind BlockKind) *Doc {
	d.class, d.kind = class, kind
	return d
}

// Line appends a line of engine-owned code.
func (d *Doc) Line(s string) *Doc {
	return d.Text(s + "\n")
}

// Lines appends lines with a prefix.
func (d *Doc) Lines(prefix string, lines []string) *Doc {
	for _, l := range lines {
		if l == "" {
			d.Line("")
			continue
		}
		d.Line(prefix + l)
	}
	return d
}

// Text appends engine-owned code, merging it into the previous block when
// possible.
func (d *Doc) Text(s string) *Doc {
	if n := len(d.Blocks); n > 0 {
		last := &d.Blocks[n-1]
		if last.Region == "" && last.Class == d.class && last.Kind == d.kind {
			last.Text += s
			return d
		}
	}
	d.Blocks = append(d.Blocks, Block{Class: d.class, Kind: d.kind, Text: s})
	return d
}

// Region appends a user code region. body is its default content, one
// string per line, already indented.
func (d *Doc) Region(id, indent string, body ...string) *Doc {
	var b strings.Builder
	for _, l := range body {
		b.WriteString(l)
		b.WriteString("\n")
	}
	d.Blocks = append(d.Blocks, Block{Class: d.class, Kind: BlockUser, Region: id, Indent: indent, Body: b.String()})
	return d
}

// Regions returns the region IDs in order.
func (d *Doc) Regions() []string {
	var ids []string
	for _, b := range d.Blocks {
		if b.Region != "" {
			ids = append(ids, b.Region)
		}
	}
	return ids
}

// Render writes the document with region bodies taken from user where
// present.
func (d *Doc) Render(n Naming, user map[string]string) string {
	var out strings.Builder
	for _, b := range d.Blocks {
		if b.Region == "" {
			out.WriteString(b.Text)
			continue
		}
		out.WriteString(Marker(n, b.Indent, "begin", b.Region))
		if body, ok := user[b.Region]; ok {
			out.WriteString(body)
		} else {
			out.WriteString(b.Body)
		}
		out.WriteString(Marker(n, b.Indent, "end", b.Region))
	}
	return out.String()
}

const markerText = " wxGlade user code: "

// Marker returns a begin or end marker line.
func Marker(n Naming, indent, which, id string) string {
	return indent + n.CommentStart + " " + which + markerText + id + n.CommentEnd + "\n"
}

// Comment formats lines as comments of the language.
func Comment(n Naming, lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		if l == "" {
			out[i] = n.CommentStart + n.CommentEnd
			continue
		}
		out[i] = n.CommentStart + " " + l + n.CommentEnd
	}
	return out
}
