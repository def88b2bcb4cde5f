// Package errors provides error handling for wxGlade.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints for users (shown below the message by the CLI)
//
// On top of that it defines the code generator's error taxonomy. Every
// failure of a generation pass is an *Error carrying a Kind and a message
// that callers display verbatim:
//
//	err := errors.OutputPathf("%q must be an existing directory", dir)
//	errors.KindOf(err) == errors.OutputPath // true
//	errors.Is(err, errors.ErrOutputPath)    // true
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint      = crdb.WithHint
	WithHintf     = crdb.WithHintf
	WithDetail    = crdb.WithDetail
	WithDetailf   = crdb.WithDetailf
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
	FlattenHints  = crdb.FlattenHints
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Kind classifies a generator failure.
type Kind string

const (
	// StructuralConstraint: a widget tree invariant (unique names, acyclicity) was violated.
	StructuralConstraint Kind = "structural_constraint"
	// UnknownProperty: a property name is not defined for the widget class.
	UnknownProperty Kind = "unknown_property"
	// InvalidStyle: a style operation received malformed input.
	InvalidStyle Kind = "invalid_style"
	// OutputPath: the output planner rejected the configured output location.
	OutputPath Kind = "output_path"
	// UnsupportedFeature: the active language adapter cannot render a construct.
	UnsupportedFeature Kind = "unsupported_feature"
	// InvalidOption: a project option has a value the generator cannot use.
	InvalidOption Kind = "invalid_option"
)

// Error is a classified generator error. Error() returns the message
// unchanged so it can be shown to the user as is.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error of the same kind, which makes the Err* sentinels
// usable with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// Sentinels for errors.Is checks. They match every error of their kind.
var (
	ErrStructuralConstraint = &Error{Kind: StructuralConstraint}
	ErrUnknownProperty      = &Error{Kind: UnknownProperty}
	ErrInvalidStyle         = &Error{Kind: InvalidStyle}
	ErrOutputPath           = &Error{Kind: OutputPath}
	ErrUnsupportedFeature   = &Error{Kind: UnsupportedFeature}
	ErrInvalidOption        = &Error{Kind: InvalidOption}
)

func newKind(kind Kind, format string, args ...interface{}) error {
	return crdb.WithStackDepth(&Error{Kind: kind, Message: fmt.Sprintf(format, args...)}, 2)
}

// Structuralf returns a StructuralConstraint error.
func Structuralf(format string, args ...interface{}) error {
	return newKind(StructuralConstraint, format, args...)
}

// UnknownPropertyf returns an UnknownProperty error.
func UnknownPropertyf(format string, args ...interface{}) error {
	return newKind(UnknownProperty, format, args...)
}

// InvalidStylef returns an InvalidStyle error.
func InvalidStylef(format string, args ...interface{}) error {
	return newKind(InvalidStyle, format, args...)
}

// OutputPathf returns an OutputPath error.
func OutputPathf(format string, args ...interface{}) error {
	return newKind(OutputPath, format, args...)
}

// Unsupportedf returns an UnsupportedFeature error.
func Unsupportedf(format string, args ...interface{}) error {
	return newKind(UnsupportedFeature, format, args...)
}

// InvalidOptionf returns an InvalidOption error.
func InvalidOptionf(format string, args ...interface{}) error {
	return newKind(InvalidOption, format, args...)
}

// KindOf returns the Kind of the first *Error in err's chain, or "" when err
// is not a classified generator error.
func KindOf(err error) Kind {
	var e *Error
	if As(err, &e) {
		return e.Kind
	}
	return ""
}

// Message returns the user-facing message of err: the classified message
// when there is one, otherwise err.Error().
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if As(err, &e) {
		return e.Message
	}
	return err.Error()
}
