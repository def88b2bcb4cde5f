package prefs

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/wxglade/wxglade/errors"
)

// FileName is the name of a preferences file.
const FileName = "wxglade.toml"

// EnvPrefix prefixes environment overrides, e.g. WXGLADE_CODEGEN_FOR_VERSION.
const EnvPrefix = "WXGLADE"

// Sources lists the preference files to merge, lowest precedence first.
// Missing files are skipped.
type Sources struct {
	System  string
	User    string
	Project string
}

// Paths returns the files in merge order.
func (s Sources) Paths() []string {
	var out []string
	for _, p := range []string{s.System, s.User, s.Project} {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// UserDir returns ~/.wxglade, or "" when there is no home directory.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".wxglade")
}

// UserPath returns the user preferences file.
func UserPath() string {
	dir := UserDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, FileName)
}

// DefaultSources returns the system file, the user file and the nearest
// wxglade.toml above the working directory.
func DefaultSources() Sources {
	src := Sources{
		System: filepath.Join("/etc/wxglade", FileName),
		User:   UserPath(),
	}
	if wd, err := os.Getwd(); err == nil {
		src.Project = FindProjectFile(wd)
	}
	return src
}

// FindProjectFile walks up from dir and returns the first wxglade.toml, or "".
func FindProjectFile(dir string) string {
	for {
		candidate := filepath.Join(dir, FileName)
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// NewViper builds a viper instance with defaults, the files of src and
// environment overrides.
func NewViper(src Sources) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	for _, path := range src.Paths() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		fv := viper.New()
		fv.SetConfigFile(path)
		fv.SetConfigType("toml")
		if err := fv.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read preferences %s", path)
		}
		// merged into the config layer so the environment still wins
		if err := v.MergeConfigMap(fv.AllSettings()); err != nil {
			return nil, errors.Wrapf(err, "failed to merge preferences %s", path)
		}
	}
	return v, nil
}

// Load merges the default sources and validates the result.
func Load() (*Config, error) {
	return LoadSources(DefaultSources())
}

// LoadSources merges src and validates the result.
func LoadSources(src Sources) (*Config, error) {
	v, err := NewViper(src)
	if err != nil {
		return nil, err
	}
	return LoadWithViper(v)
}

// LoadWithViper unmarshals and validates the preferences held by v.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal preferences")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromFile reads one preferences file over the defaults, without
// environment overrides.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read preferences %s", path)
	}
	return LoadWithViper(v)
}

// HistoryPath returns the ledger database path, falling back to the user
// directory.
func (c *Config) HistoryPath() string {
	if c.History.Path != "" {
		return c.History.Path
	}
	dir := UserDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "history.db")
}

func sortStrings(s []string) []string {
	sort.Strings(s)
	return s
}
