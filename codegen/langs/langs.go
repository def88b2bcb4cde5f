// Package langs registers the built-in code generators.
package langs

import (
	"github.com/wxglade/wxglade/codegen"
	"github.com/wxglade/wxglade/codegen/cpp"
	"github.com/wxglade/wxglade/codegen/lisp"
	"github.com/wxglade/wxglade/codegen/perl"
	"github.com/wxglade/wxglade/codegen/python"
	"github.com/wxglade/wxglade/codegen/xrc"
)

// builtin lists the generators in registration order.
var builtin = []struct {
	name    string
	factory codegen.Factory
}{
	{python.Language, python.New},
	{cpp.Language, cpp.New},
	{perl.Language, perl.New},
	{lisp.Language, lisp.New},
	{xrc.Language, xrc.New},
}

// Register adds the built-in generators to l.
func Register(l *codegen.Languages) error {
	for _, b := range builtin {
		if err := l.Register(b.name, b.factory); err != nil {
			return err
		}
	}
	return nil
}

// Default returns a registry holding the built-in generators.
func Default() *codegen.Languages {
	l := codegen.NewLanguages()
	if err := Register(l); err != nil {
		// names are distinct constants
		panic(err)
	}
	return l
}
