package prefs

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/wxglade/wxglade/errors"
	"github.com/wxglade/wxglade/logger"
)

// backups is the number of rotated copies kept by SetValue.
const backups = 3

// createBackup rotates <path>.back1..3 and copies the current file to .back1.
func createBackup(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	oldest := path + ".back" + strconv.Itoa(backups)
	if err := os.Remove(oldest); err != nil && !os.IsNotExist(err) {
		logger.Warnw("failed to delete old backup", "file", oldest, "error", err)
	}
	for i := backups - 1; i >= 1; i-- {
		from := path + ".back" + strconv.Itoa(i)
		to := path + ".back" + strconv.Itoa(i+1)
		if _, err := os.Stat(from); err == nil {
			if err := os.Rename(from, to); err != nil {
				return errors.Wrapf(err, "failed to rotate %s", from)
			}
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read preferences for backup")
	}
	if err := os.WriteFile(path+".back1", content, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}
	return nil
}

// SetValue stores key=value in the preferences file at path, creating it if
// needed. The value is parsed according to the type of the key's default.
func SetValue(path, key, raw string) error {
	def, ok := defaults[key]
	if !ok {
		return errors.WithHint(errors.Newf("unknown preference %q", key),
			"known keys: "+strings.Join(Keys(), ", "))
	}
	var value interface{}
	switch def.(type) {
	case bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return errors.Wrapf(err, "%s expects true or false", key)
		}
		value = b
	case int:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return errors.Wrapf(err, "%s expects an integer", key)
		}
		value = n
	default:
		value = raw
	}

	doc := make(map[string]interface{})
	if data, err := os.ReadFile(path); err == nil {
		if err := toml.Unmarshal(data, &doc); err != nil {
			return errors.Wrapf(err, "failed to parse %s", path)
		}
	}
	section, field, _ := strings.Cut(key, ".")
	table, _ := doc[section].(map[string]interface{})
	if table == nil {
		table = make(map[string]interface{})
	}
	table[field] = value
	doc[section] = table

	return writeDoc(path, doc)
}

// Save writes cfg to path with rotating backups.
func Save(path string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal preferences")
	}
	return writeFile(path, data)
}

func writeDoc(path string, doc map[string]interface{}) error {
	data, err := toml.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "failed to marshal preferences")
	}
	return writeFile(path, data)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), DefaultDirPermissions); err != nil {
		return errors.Wrap(err, "failed to create preferences directory")
	}
	if err := createBackup(path); err != nil {
		return errors.Wrap(err, "failed to create backup")
	}
	if err := os.WriteFile(path, data, DefaultFilePermissions); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}
