// Package style encodes widget style flags.
//
// A Catalog declares, per widget class, the ordered set of recognized style
// names together with their toolkit bit values and the toolkit versions that
// support them. The catalog is the single source of truth: the same list
// backs property presentation, project validation and code generation.
//
// A Set is the selected subset for one widget. It accepts style names, a
// "|"-joined string or a boolean mask, and reports a canonical string in the
// declared order plus the integer mask for a given toolkit version. Names the
// target version does not know stay in the set and contribute 0 to the mask.
package style

import (
	_ "embed"
	"sort"
	"sync"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/wxglade/wxglade/errors"
)

//go:embed styles.yaml
var defaultCatalogYAML []byte

// Def is one style flag of a class.
type Def struct {
	Name        string   `yaml:"name"`
	Value       *int64   `yaml:"value,omitempty"`
	Combination []string `yaml:"combination,omitempty"`
	Since       string   `yaml:"since,omitempty"`
	Until       string   `yaml:"until,omitempty"`
	Desc        string   `yaml:"desc,omitempty"`

	since *semver.Version
	until *semver.Version
}

// SupportedBy reports whether toolkit version v knows this flag.
// A nil version means "no restriction".
func (d *Def) SupportedBy(v *semver.Version) bool {
	if v == nil {
		return true
	}
	if d.since != nil && v.LessThan(d.since) {
		return false
	}
	if d.until != nil && !v.LessThan(d.until) {
		return false
	}
	return true
}

// Class is the style declaration of one widget class.
type Class struct {
	Name string
	defs []*Def
	// index into defs by name
	index   map[string]int
	catalog *Catalog
}

// Names returns the recognized style names in declared order.
func (c *Class) Names() []string {
	names := make([]string, len(c.defs))
	for i, d := range c.defs {
		names[i] = d.Name
	}
	return names
}

// Def returns the definition of name.
func (c *Class) Def(name string) (*Def, bool) {
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return c.defs[i], true
}

// Value resolves the bit value of name for toolkit version v, expanding
// combinations. Unsupported flags resolve to 0.
func (c *Class) Value(name string, v *semver.Version) int64 {
	return c.value(name, v, 0)
}

func (c *Class) value(name string, v *semver.Version, depth int) int64 {
	if depth > 8 {
		return 0
	}
	d, ok := c.Def(name)
	if !ok {
		d, ok = c.catalog.generic[name]
		if !ok {
			return 0
		}
	}
	if !d.SupportedBy(v) {
		return 0
	}
	if d.Value != nil {
		return *d.Value
	}
	var mask int64
	for _, member := range d.Combination {
		mask |= c.value(member, v, depth+1)
	}
	return mask
}

// Catalog holds the style declarations of all classes.
type Catalog struct {
	classes map[string]*Class
	generic map[string]*Def
}

type catalogFile struct {
	Generic []*Def            `yaml:"generic"`
	Classes map[string][]*Def `yaml:"classes"`
}

// LoadCatalog parses a YAML style catalog.
func LoadCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "parse style catalog")
	}

	cat := &Catalog{
		classes: make(map[string]*Class, len(f.Classes)),
		generic: make(map[string]*Def, len(f.Generic)),
	}
	for _, d := range f.Generic {
		if err := d.parseVersions(); err != nil {
			return nil, err
		}
		cat.generic[d.Name] = d
	}

	for className, defs := range f.Classes {
		cls := &Class{Name: className, index: make(map[string]int, len(defs)), catalog: cat}
		for _, d := range defs {
			if _, dup := cls.index[d.Name]; dup {
				return nil, errors.Newf("style catalog: %s declares %s twice", className, d.Name)
			}
			// bare references inherit value and version window from generic
			if d.Value == nil && len(d.Combination) == 0 {
				g, ok := cat.generic[d.Name]
				if !ok {
					return nil, errors.Newf("style catalog: %s.%s has no value", className, d.Name)
				}
				inherited := *g
				inherited.Desc = firstNonEmpty(d.Desc, g.Desc)
				d = &inherited
			} else if err := d.parseVersions(); err != nil {
				return nil, err
			}
			cls.index[d.Name] = len(cls.defs)
			cls.defs = append(cls.defs, d)
		}
		cat.classes[className] = cls
	}
	return cat, nil
}

func (d *Def) parseVersions() error {
	var err error
	if d.Since != "" {
		if d.since, err = semver.NewVersion(d.Since); err != nil {
			return errors.Wrapf(err, "style %s: since", d.Name)
		}
	}
	if d.Until != "" {
		if d.until, err = semver.NewVersion(d.Until); err != nil {
			return errors.Wrapf(err, "style %s: until", d.Name)
		}
	}
	return nil
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded catalog.
func Default() *Catalog {
	defaultOnce.Do(func() {
		cat, err := LoadCatalog(defaultCatalogYAML)
		if err != nil {
			panic(err)
		}
		defaultCatalog = cat
	})
	return defaultCatalog
}

// Class returns the declaration for a widget class.
func (c *Catalog) Class(name string) (*Class, bool) {
	cls, ok := c.classes[name]
	return cls, ok
}

// Names returns the style names of a widget class in declared order, or nil
// for a class without styles.
func (c *Catalog) Names(class string) []string {
	cls, ok := c.classes[class]
	if !ok {
		return nil
	}
	return cls.Names()
}

// Classes returns the names of all classes with styles, sorted.
func (c *Catalog) Classes() []string {
	names := make([]string, 0, len(c.classes))
	for name := range c.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseVersion parses a toolkit version such as "2.8" or "3.0".
func ParseVersion(s string) (*semver.Version, error) {
	v, err := semver.NewVersion(s)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid toolkit version %q", s)
	}
	return v, nil
}

// MustVersion is ParseVersion for constants.
func MustVersion(s string) *semver.Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}
