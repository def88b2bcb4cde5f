package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTOML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := LoadSources(Sources{})
	require.NoError(t, err)

	assert.Equal(t, "python", cfg.Codegen.DefaultLanguage)
	assert.Equal(t, "3.0", cfg.Codegen.ForVersion)
	assert.Equal(t, 4, cfg.Codegen.IndentAmount)
	assert.Equal(t, "space", cfg.Codegen.IndentSymbol)
	assert.False(t, cfg.Codegen.BackupFiles)
	assert.True(t, cfg.History.Enabled)
}

func TestPrecedence(t *testing.T) {
	system := writeTOML(t, t.TempDir(), `
[codegen]
default_language = "perl"
indent_amount = 2
`)
	user := writeTOML(t, t.TempDir(), `
[codegen]
default_language = "C++"
`)
	project := writeTOML(t, t.TempDir(), `
[codegen]
for_version = "2.8"
`)

	cfg, err := LoadSources(Sources{System: system, User: user, Project: project})
	require.NoError(t, err)
	assert.Equal(t, "C++", cfg.Codegen.DefaultLanguage, "user overrides system")
	assert.Equal(t, 2, cfg.Codegen.IndentAmount, "system overrides defaults")
	assert.Equal(t, "2.8", cfg.Codegen.ForVersion)

	t.Setenv("WXGLADE_CODEGEN_DEFAULT_LANGUAGE", "lisp")
	cfg, err = LoadSources(Sources{System: system, User: user, Project: project})
	require.NoError(t, err)
	assert.Equal(t, "lisp", cfg.Codegen.DefaultLanguage, "environment overrides files")
}

func TestMissingFilesSkipped(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadSources(Sources{User: filepath.Join(dir, "nope.toml")})
	require.NoError(t, err)
	assert.Equal(t, "python", cfg.Codegen.DefaultLanguage)
}

func TestMalformedFile(t *testing.T) {
	path := writeTOML(t, t.TempDir(), "[codegen\n")
	_, err := LoadSources(Sources{User: path})
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"language", func(c *Config) { c.Codegen.DefaultLanguage = "ruby" }},
		{"version", func(c *Config) { c.Codegen.ForVersion = "three" }},
		{"indent amount", func(c *Config) { c.Codegen.IndentAmount = -1 }},
		{"indent symbol", func(c *Config) { c.Codegen.IndentSymbol = "nbsp" }},
		{"verbosity", func(c *Config) { c.Log.Verbosity = 9 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadSources(Sources{})
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestFindProjectFile(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	assert.Empty(t, FindProjectFile(nested))

	want := writeTOML(t, root, "")
	assert.Equal(t, want, FindProjectFile(nested))
}

func TestSetValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs", FileName)

	require.NoError(t, SetValue(path, "codegen.indent_amount", "8"))
	require.NoError(t, SetValue(path, "codegen.backup_files", "true"))
	require.NoError(t, SetValue(path, "codegen.default_language", "perl"))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Codegen.IndentAmount)
	assert.True(t, cfg.Codegen.BackupFiles)
	assert.Equal(t, "perl", cfg.Codegen.DefaultLanguage)

	assert.FileExists(t, path+".back1")
	assert.FileExists(t, path+".back2")
	assert.NoFileExists(t, path+".back3")
}

func TestSetValueErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	assert.Error(t, SetValue(path, "codegen.colour", "red"))
	assert.Error(t, SetValue(path, "codegen.indent_amount", "four"))
	assert.Error(t, SetValue(path, "codegen.backup_files", "maybe"))
	assert.NoFileExists(t, path)
}

func TestBackupRotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	cfg, err := LoadSources(Sources{})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		cfg.Codegen.IndentAmount = i
		require.NoError(t, Save(path, cfg))
	}
	for _, suffix := range []string{".back1", ".back2", ".back3"} {
		assert.FileExists(t, path+suffix)
	}
	assert.NoFileExists(t, path+".back4")

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4, loaded.Codegen.IndentAmount)

	prev, err := LoadFromFile(path + ".back1")
	require.NoError(t, err)
	assert.Equal(t, 3, prev.Codegen.IndentAmount)
}

func TestHistoryPath(t *testing.T) {
	cfg := &Config{History: HistoryConfig{Path: "/tmp/h.db"}}
	assert.Equal(t, "/tmp/h.db", cfg.HistoryPath())
}
