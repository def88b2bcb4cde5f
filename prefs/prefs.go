// Package prefs loads user preferences for code generation.
//
// Values are merged from, lowest to highest precedence: built-in defaults,
// the system file, the user file, the nearest wxglade.toml above the working
// directory, and WXGLADE_* environment variables. Command-line flags and
// project options override preferences at the call site.
package prefs

// Config holds all preferences.
type Config struct {
	Codegen CodegenConfig `mapstructure:"codegen" toml:"codegen"`
	History HistoryConfig `mapstructure:"history" toml:"history"`
	Log     LogConfig     `mapstructure:"log" toml:"log"`
}

// CodegenConfig holds code generation defaults.
type CodegenConfig struct {
	DefaultLanguage string `mapstructure:"default_language" toml:"default_language"`
	ForVersion      string `mapstructure:"for_version" toml:"for_version"`
	IndentAmount    int    `mapstructure:"indent_amount" toml:"indent_amount"`
	IndentSymbol    string `mapstructure:"indent_symbol" toml:"indent_symbol"`
	// HeaderComment is prepended to generated files, after the tool banner.
	HeaderComment string `mapstructure:"header_comment" toml:"header_comment"`
	// BackupFiles keeps the previous version of an overwritten file as <file>.bak.
	BackupFiles bool `mapstructure:"backup_files" toml:"backup_files"`
	// WriteTimestamp adds the generation time to the banner.
	WriteTimestamp bool `mapstructure:"write_timestamp" toml:"write_timestamp"`
}

// HistoryConfig configures the generation ledger.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled" toml:"enabled"`
	Path    string `mapstructure:"path" toml:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	JSON      bool `mapstructure:"json" toml:"json"`
	Verbosity int  `mapstructure:"verbosity" toml:"verbosity"`
}
