package display

import (
	"encoding/json"
	"os"
)

// MarshalJSON indents v for people, or keeps it on one line when
// WXGLADE_JSON=compact.
func MarshalJSON(v interface{}) ([]byte, error) {
	if os.Getenv(EnvJSON) == "compact" {
		return json.Marshal(v)
	}
	return json.MarshalIndent(v, "", "  ")
}
