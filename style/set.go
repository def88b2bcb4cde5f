package style

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/wxglade/wxglade/errors"
)

// Set is the selected styles of one widget.
//
// Selection is stored as a set; every read-out (Names, String, Mask) walks
// the class's declared order so output is stable regardless of the order in
// which flags were set.
type Set struct {
	class    *Class
	selected map[string]bool
	// forward-compatible names the catalog does not declare, kept in
	// insertion order; only populated when AllowUnknown is on
	unknown []string

	// AllowUnknown keeps names the catalog does not declare instead of
	// rejecting them. Project loading turns it on so files written by a
	// newer catalog survive a load/save cycle.
	AllowUnknown bool
}

// NewSet returns an empty set for class.
func NewSet(class *Class) *Set {
	return &Set{class: class, selected: make(map[string]bool)}
}

// Class returns the class declaration the set is scoped to.
func (s *Set) Class() *Class {
	return s.class
}

// Set replaces the selection. Accepted values:
//
//	nil, ""                 empty selection
//	"wxA|wxB"               "|"-joined names (blanks around names ignored)
//	[]string{"wxA", "wxB"}  names
//	[]bool{true, false}     mask aligned to the declared order
//
// On error the previous selection is left untouched.
func (s *Set) Set(value interface{}) error {
	var names []string
	switch v := value.(type) {
	case nil:
	case string:
		names = SplitNames(v)
	case []string:
		names = v
	case []bool:
		declared := s.class.Names()
		if len(v) > len(declared) {
			return errors.InvalidStylef("style mask for %s has %d entries, only %d styles are defined",
				s.class.Name, len(v), len(declared))
		}
		for i, on := range v {
			if on {
				names = append(names, declared[i])
			}
		}
	default:
		return errors.InvalidStylef("unsupported style value of type %T for %s", value, s.class.Name)
	}

	selected := make(map[string]bool, len(names))
	var unknown []string
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := s.class.Def(name); ok {
			selected[name] = true
			continue
		}
		if !s.AllowUnknown {
			return errors.InvalidStylef("style %q is not defined for %s", name, s.class.Name)
		}
		if !contains(unknown, name) {
			unknown = append(unknown, name)
		}
	}
	s.selected = selected
	s.unknown = unknown
	return nil
}

// Add selects one more style.
func (s *Set) Add(name string) error {
	names := append(s.Names(), name)
	return s.Set(names)
}

// Has reports whether name is selected.
func (s *Set) Has(name string) bool {
	return s.selected[name] || contains(s.unknown, name)
}

// Len returns the number of selected names.
func (s *Set) Len() int {
	return len(s.selected) + len(s.unknown)
}

// Names returns the selected names: declared names in declared order,
// then undeclared names in the order they were set.
func (s *Set) Names() []string {
	var names []string
	for _, d := range s.class.defs {
		if s.selected[d.Name] {
			names = append(names, d.Name)
		}
	}
	return append(names, s.unknown...)
}

// String returns the canonical "|"-joined form.
func (s *Set) String() string {
	return strings.Join(s.Names(), "|")
}

// Mask returns the selection as booleans aligned to the declared order.
func (s *Set) Mask() []bool {
	mask := make([]bool, len(s.class.defs))
	for i, d := range s.class.defs {
		mask[i] = s.selected[d.Name]
	}
	return mask
}

// Supported returns the selected names known to toolkit version v, in
// declared order. These are the names code generation emits.
func (s *Set) Supported(v *semver.Version) []string {
	var names []string
	for _, d := range s.class.defs {
		if s.selected[d.Name] && d.SupportedBy(v) {
			names = append(names, d.Name)
		}
	}
	return names
}

// Unsupported returns the selected names that toolkit version v does not
// know, including undeclared ones.
func (s *Set) Unsupported(v *semver.Version) []string {
	var names []string
	for _, d := range s.class.defs {
		if s.selected[d.Name] && !d.SupportedBy(v) {
			names = append(names, d.Name)
		}
	}
	return append(names, s.unknown...)
}

// Int returns the integer style mask for toolkit version v.
// Unsupported and undeclared names contribute 0.
func (s *Set) Int(v *semver.Version) int64 {
	var mask int64
	for _, name := range s.Supported(v) {
		mask |= s.class.Value(name, v)
	}
	return mask
}

// Clone returns an independent copy.
func (s *Set) Clone() *Set {
	c := &Set{
		class:        s.class,
		selected:     make(map[string]bool, len(s.selected)),
		unknown:      append([]string(nil), s.unknown...),
		AllowUnknown: s.AllowUnknown,
	}
	for k, v := range s.selected {
		c.selected[k] = v
	}
	return c
}

// SplitNames splits a "|"-joined style string.
func SplitNames(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, "|")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
