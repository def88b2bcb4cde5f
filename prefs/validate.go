package prefs

import (
	"github.com/Masterminds/semver/v3"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/wxglade/wxglade/errors"
)

var (
	languages  = []interface{}{"python", "C++", "perl", "lisp", "XRC"}
	indentSyms = []interface{}{"space", "tab"}
)

func toolkitVersion(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := semver.NewVersion(s); err != nil {
		return validation.NewError("prefs.for_version", "must be a toolkit version such as 3.0")
	}
	return nil
}

// Validate checks the preferences.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(&c.Codegen,
		validation.Field(&c.Codegen.DefaultLanguage, validation.Required, validation.In(languages...)),
		validation.Field(&c.Codegen.ForVersion, validation.Required, validation.By(toolkitVersion)),
		validation.Field(&c.Codegen.IndentAmount, validation.Min(0), validation.Max(16)),
		validation.Field(&c.Codegen.IndentSymbol, validation.Required, validation.In(indentSyms...)),
	)
	if err != nil {
		return errors.WithHint(errors.Wrap(err, "invalid codegen preferences"),
			"languages: python, C++, perl, lisp, XRC; for_version like \"3.0\"; indent_symbol space or tab")
	}
	if c.Log.Verbosity < 0 || c.Log.Verbosity > 4 {
		return errors.Newf("log.verbosity must be between 0 and 4, got %d", c.Log.Verbosity)
	}
	return nil
}
