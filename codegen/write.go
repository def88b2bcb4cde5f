package codegen

import (
	"os"
	"path/filepath"

	"github.com/wxglade/wxglade/errors"
	"github.com/wxglade/wxglade/project"
)

// Write stores the files of res. Files whose content equals the file on disk
// are left untouched so their modification time is kept.
func (e *Engine) Write(res *Result) error {
	for _, f := range res.Files {
		if !f.Changed() {
			f.Status = StatusUnchanged
			e.log.Debugw("file unchanged", "run_id", res.RunID, "file", f.Path)
			continue
		}
		if e.backups && f.Previous != nil {
			if err := os.WriteFile(f.Path+".bak", f.Previous, 0644); err != nil {
				return errors.Wrapf(err, "back up %s", f.Path)
			}
		}
		if err := writeFile(f.Path, f.Content); err != nil {
			return err
		}
		f.Status = StatusWritten
		e.log.Infow("file written", "run_id", res.RunID, "file", f.Path, "bytes", len(f.Content),
			"preserved_regions", len(f.Preserved))
	}
	return nil
}

// writeFile replaces path through a temporary file in the same directory.
func writeFile(path string, content []byte) error {
	mode := os.FileMode(0644)
	if st, err := os.Stat(path); err == nil {
		mode = st.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	name := tmp.Name()
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(name)
		return errors.Wrapf(err, "write %s", path)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return errors.Wrapf(err, "write %s", path)
	}
	if err := os.Chmod(name, mode); err != nil {
		os.Remove(name)
		return errors.Wrapf(err, "write %s", path)
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}

// GenerateCode runs a generation pass and writes its files.
func (e *Engine) GenerateCode(p *project.Project) (*Result, error) {
	res, err := e.Generate(p)
	if err != nil {
		return nil, err
	}
	if err := e.Write(res); err != nil {
		return res, err
	}
	return res, nil
}
