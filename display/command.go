// Package display selects and formats machine-readable command output.
package display

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/wxglade/wxglade/errors"
)

// EnvJSON selects JSON output for every command that supports it when set
// to a non-empty value; "compact" also drops the indentation.
const EnvJSON = "WXGLADE_JSON"

// ShouldOutputJSON reports whether cmd should print JSON. An explicit --json
// flag wins over the environment.
func ShouldOutputJSON(cmd *cobra.Command) bool {
	if cmd != nil && cmd.Flags().Lookup("json") != nil && cmd.Flags().Changed("json") {
		on, _ := cmd.Flags().GetBool("json")
		return on
	}
	return os.Getenv(EnvJSON) != ""
}

// OutputJSON writes v as JSON followed by a newline.
func OutputJSON(w io.Writer, v interface{}) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return errors.Wrap(err, "failed to marshal JSON")
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
