package history

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/wxglade/wxglade/errors"
	"github.com/wxglade/wxglade/logger"
)

// openDB opens a SQLite database at path with WAL, foreign keys and a busy
// timeout.
func openDB(path string, log *zap.SugaredLogger) (*sql.DB, error) {
	log.Debugw("opening history database", "path", path)
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, errors.Wrapf(err, "create history directory %s", dir)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, errors.Wrapf(err, "failed to apply %q", pragma)
		}
	}
	return db, nil
}

// Open opens the history database at path, creating it and applying pending
// migrations as needed.
func Open(path string, log *zap.SugaredLogger) (*Store, error) {
	log = logger.OrNop(log).Named("history")
	db, err := openDB(path, log)
	if err != nil {
		return nil, err
	}
	if err := migrate(db, log); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "migrate %s", path)
	}
	log.Debugw("history database ready", "path", path)
	return New(db, log), nil
}
