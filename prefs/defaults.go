package prefs

import (
	"github.com/spf13/viper"
)

// Default permissions for files and directories written by prefs.
const (
	DefaultDirPermissions  = 0750
	DefaultFilePermissions = 0644
)

// defaults is the flat key/value form of the built-in preferences.
var defaults = map[string]interface{}{
	"codegen.default_language": "python",
	"codegen.for_version":      "3.0",
	"codegen.indent_amount":    4,
	"codegen.indent_symbol":    "space",
	"codegen.header_comment":   "",
	"codegen.backup_files":     false,
	"codegen.write_timestamp":  false,

	"history.enabled": true,
	"history.path":    "", // empty = <user dir>/history.db

	"log.json":      false,
	"log.verbosity": 0,
}

// SetDefaults registers the built-in values with v.
func SetDefaults(v *viper.Viper) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}

// Keys returns the known preference keys.
func Keys() []string {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	return sortStrings(keys)
}
