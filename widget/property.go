package widget

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/wxglade/wxglade/errors"
	"github.com/wxglade/wxglade/style"
)

// Kind is the value type of a property.
type Kind int

const (
	KindText Kind = iota
	KindBool
	KindChoice
	KindInt
	KindStyle
	KindFont
	KindColour
	KindSize
)

var kindNames = map[Kind]string{
	KindText:   "text",
	KindBool:   "bool",
	KindChoice: "choice",
	KindInt:    "int",
	KindStyle:  "style",
	KindFont:   "font",
	KindColour: "colour",
	KindSize:   "size",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// PropertySpec declares one property of a widget class.
type PropertySpec struct {
	Name    string
	Kind    Kind
	Default string
	Choices []string
	// StyleClass names the style catalog class backing a KindStyle property.
	StyleClass string
	Help       string
	// AlwaysActive properties are written even when equal to the default.
	AlwaysActive bool
}

// Property is a typed value of one node.
//
// Every value is held in its serialized text form; typed accessors parse on
// demand. A property is active when its value differs from the default or
// when it was explicitly forced, and only active properties are saved.
type Property struct {
	spec   *PropertySpec
	value  string
	active bool
	styles *style.Set
}

func newProperty(spec *PropertySpec, cat *style.Catalog) (*Property, error) {
	p := &Property{spec: spec, value: spec.Default, active: spec.AlwaysActive}
	if spec.Kind == KindStyle {
		cls, ok := cat.Class(spec.StyleClass)
		if !ok {
			return nil, errors.Newf("property %s: no style class %q in catalog", spec.Name, spec.StyleClass)
		}
		p.styles = style.NewSet(cls)
		if err := p.styles.Set(spec.Default); err != nil {
			return nil, errors.Wrapf(err, "property %s: default", spec.Name)
		}
		p.value = p.styles.String()
	}
	return p, nil
}

// Name returns the property name.
func (p *Property) Name() string { return p.spec.Name }

// Kind returns the value type.
func (p *Property) Kind() Kind { return p.spec.Kind }

// Spec returns the declaration.
func (p *Property) Spec() *PropertySpec { return p.spec }

// Default returns the default value in text form.
func (p *Property) Default() string { return p.spec.Default }

// Value returns the value in text form. Style values use the canonical
// "|"-joined form.
func (p *Property) Value() string { return p.value }

// IsActive reports whether the property is written to project files and
// considered by code generation.
func (p *Property) IsActive() bool { return p.active }

// SetActive forces the active flag.
func (p *Property) SetActive(active bool) { p.active = active }

// Set validates and stores v. The property becomes active if v differs from
// the default.
func (p *Property) Set(v string) error {
	normalized, err := p.normalize(v)
	if err != nil {
		return err
	}
	p.value = normalized
	p.active = p.spec.AlwaysActive || normalized != p.normalizedDefault()
	return nil
}

// Reset restores the default and deactivates the property.
func (p *Property) Reset() {
	if p.styles != nil {
		_ = p.styles.Set(p.spec.Default)
		p.value = p.styles.String()
	} else {
		p.value = p.spec.Default
	}
	p.active = p.spec.AlwaysActive
}

func (p *Property) normalizedDefault() string {
	if p.styles == nil {
		return p.spec.Default
	}
	return strings.Join(style.SplitNames(p.spec.Default), "|")
}

var (
	sizeRe   = regexp.MustCompile(`^\s*(-?\d+)\s*,\s*(-?\d+)\s*(d?)\s*$`)
	colourRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

func (p *Property) normalize(v string) (string, error) {
	switch p.spec.Kind {
	case KindBool:
		switch strings.TrimSpace(strings.ToLower(v)) {
		case "1", "true", "yes":
			return "1", nil
		case "0", "false", "no", "":
			return "0", nil
		}
		return "", errors.Newf("property %s: %q is not a boolean", p.spec.Name, v)
	case KindInt:
		v = strings.TrimSpace(v)
		if v == "" {
			return p.spec.Default, nil
		}
		if _, err := strconv.Atoi(v); err != nil {
			return "", errors.Newf("property %s: %q is not an integer", p.spec.Name, v)
		}
		return v, nil
	case KindChoice:
		for _, c := range p.spec.Choices {
			if c == v {
				return v, nil
			}
		}
		return "", errors.Newf("property %s: %q is not one of %s", p.spec.Name, v, strings.Join(p.spec.Choices, ", "))
	case KindSize:
		v = strings.TrimSpace(v)
		if v == "" {
			return "", nil
		}
		m := sizeRe.FindStringSubmatch(v)
		if m == nil {
			return "", errors.Newf("property %s: %q is not a size (expected \"w, h\")", p.spec.Name, v)
		}
		return fmt.Sprintf("%s, %s%s", m[1], m[2], m[3]), nil
	case KindColour:
		v = strings.TrimSpace(v)
		if v == "" || colourRe.MatchString(v) || strings.HasPrefix(v, "wxSYS_COLOUR_") {
			return v, nil
		}
		return "", errors.Newf("property %s: %q is not a colour", p.spec.Name, v)
	case KindFont:
		if strings.TrimSpace(v) == "" {
			return "", nil
		}
		f, err := ParseFont(v)
		if err != nil {
			return "", errors.Wrapf(err, "property %s", p.spec.Name)
		}
		return f.String(), nil
	case KindStyle:
		if err := p.styles.Set(v); err != nil {
			return "", err
		}
		return p.styles.String(), nil
	}
	return v, nil
}

// Bool returns the value of a boolean property.
func (p *Property) Bool() bool { return p.value == "1" }

// Int returns the value of an integer property, 0 if unset.
func (p *Property) Int() int {
	i, _ := strconv.Atoi(p.value)
	return i
}

// Size returns width and height and whether the size is in dialog units.
// ok is false for an empty size.
func (p *Property) Size() (w, h int, dialogUnits bool, ok bool) {
	m := sizeRe.FindStringSubmatch(p.value)
	if m == nil {
		return 0, 0, false, false
	}
	w, _ = strconv.Atoi(m[1])
	h, _ = strconv.Atoi(m[2])
	return w, h, m[3] == "d", true
}

// Font returns the parsed font, nil if unset.
func (p *Property) Font() *Font {
	if p.value == "" {
		return nil
	}
	f, err := ParseFont(p.value)
	if err != nil {
		return nil
	}
	return f
}

// Styles returns the style set of a style property, nil for other kinds.
func (p *Property) Styles() *style.Set { return p.styles }

func (p *Property) clone() *Property {
	c := &Property{spec: p.spec, value: p.value, active: p.active}
	if p.styles != nil {
		c.styles = p.styles.Clone()
	}
	return c
}

// Font is the value of a font property.
type Font struct {
	Size       int
	Family     string
	Style      string
	Weight     string
	Underlined bool
	Face       string
}

var (
	fontFamilies = []string{"default", "decorative", "roman", "script", "swiss", "modern", "teletype"}
	fontStyles   = []string{"normal", "slant", "italic"}
	fontWeights  = []string{"normal", "light", "bold"}
)

// ParseFont parses "size, family, style, weight, underlined, face".
func ParseFont(s string) (*Font, error) {
	parts := strings.Split(s, ",")
	if len(parts) < 5 || len(parts) > 6 {
		return nil, errors.Newf("font %q needs size, family, style, weight, underlined[, face]", s)
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	size, err := strconv.Atoi(parts[0])
	if err != nil || size <= 0 {
		return nil, errors.Newf("font %q: invalid point size", s)
	}
	f := &Font{Size: size, Family: parts[1], Style: parts[2], Weight: parts[3], Underlined: parts[4] == "1"}
	if len(parts) == 6 {
		f.Face = parts[5]
	}
	if !inList(fontFamilies, f.Family) {
		return nil, errors.Newf("font %q: unknown family %q", s, f.Family)
	}
	if !inList(fontStyles, f.Style) {
		return nil, errors.Newf("font %q: unknown style %q", s, f.Style)
	}
	if !inList(fontWeights, f.Weight) {
		return nil, errors.Newf("font %q: unknown weight %q", s, f.Weight)
	}
	return f, nil
}

// String returns the canonical text form.
func (f *Font) String() string {
	underlined := "0"
	if f.Underlined {
		underlined = "1"
	}
	return fmt.Sprintf("%d, %s, %s, %s, %s, %s", f.Size, f.Family, f.Style, f.Weight, underlined, f.Face)
}

func inList(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
