// Package history records generation passes in a SQLite ledger.
package history

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wxglade/wxglade/codegen"
	"github.com/wxglade/wxglade/errors"
	"github.com/wxglade/wxglade/logger"
)

// Status is the outcome of a pass.
type Status string

const (
	StatusOK     Status = "ok"
	StatusFailed Status = "failed"
)

// ErrClosed is returned by a Store after Close.
var ErrClosed = errors.New("history database is closed")

// Run is one recorded generation pass.
type Run struct {
	ID         string    `json:"id"`
	Project    string    `json:"project"`
	Language   string    `json:"language"`
	Status     Status    `json:"status"`
	Error      string    `json:"error,omitempty"`
	Warnings   int       `json:"warnings"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	// FileCount is filled in by Recent; Files by Files.
	FileCount int    `json:"file_count"`
	Files     []File `json:"files,omitempty"`
}

// Duration returns how long the pass took.
func (r Run) Duration() time.Duration { return r.FinishedAt.Sub(r.StartedAt) }

// File is one output file of a run.
type File struct {
	Path      string `json:"path"`
	Role      string `json:"role"`
	SHA256    string `json:"sha256"`
	Bytes     int    `json:"bytes"`
	Status    string `json:"status"`
	Preserved int    `json:"preserved"`
}

// NewRun describes a finished pass from its result.
func NewRun(project string, res *codegen.Result, finished time.Time) Run {
	r := Run{
		ID:         res.RunID,
		Project:    project,
		Language:   res.Language,
		Status:     StatusOK,
		Warnings:   len(res.Warnings),
		StartedAt:  res.Started,
		FinishedAt: finished,
	}
	for _, f := range res.Files {
		sum := sha256.Sum256(f.Content)
		r.Files = append(r.Files, File{
			Path:      f.Path,
			Role:      f.Role.String(),
			SHA256:    hex.EncodeToString(sum[:]),
			Bytes:     len(f.Content),
			Status:    f.Status.String(),
			Preserved: len(f.Preserved),
		})
	}
	r.FileCount = len(r.Files)
	return r
}

// FailedRun describes a pass that ended with err before files were written.
func FailedRun(project, language string, started, finished time.Time, err error) Run {
	return Run{
		ID:         uuid.NewString(),
		Project:    project,
		Language:   language,
		Status:     StatusFailed,
		Error:      errors.Message(err),
		StartedAt:  started,
		FinishedAt: finished,
	}
}

// Store reads and writes the ledger.
type Store struct {
	db     *sql.DB
	log    *zap.SugaredLogger
	closed bool
}

// New wraps an open database whose schema is already migrated.
func New(db *sql.DB, log *zap.SugaredLogger) *Store {
	return &Store{db: db, log: logger.OrNop(log)}
}

// Close closes the database.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

func (s *Store) check(err error) error {
	if err == nil {
		return nil
	}
	if s.closed || strings.Contains(err.Error(), "database is closed") {
		return ErrClosed
	}
	return err
}

// Record stores a run and its files in one transaction.
func (s *Store) Record(ctx context.Context, r Run) error {
	if s.closed {
		return ErrClosed
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(s.check(err), "begin history transaction")
	}
	var errText sql.NullString
	if r.Error != "" {
		errText = sql.NullString{String: r.Error, Valid: true}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, project, language, status, error, warnings, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Project, r.Language, string(r.Status), errText, r.Warnings, r.StartedAt.UTC(), r.FinishedAt.UTC(),
	); err != nil {
		tx.Rollback()
		return errors.Wrapf(s.check(err), "record run %s", r.ID)
	}
	for _, f := range r.Files {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO files (run_id, path, role, sha256, bytes, status, preserved)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.ID, f.Path, f.Role, f.SHA256, f.Bytes, f.Status, f.Preserved,
		); err != nil {
			tx.Rollback()
			return errors.Wrapf(s.check(err), "record file %s of run %s", f.Path, r.ID)
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrapf(s.check(err), "commit run %s", r.ID)
	}
	s.log.Debugw("run recorded", "run_id", r.ID, "status", r.Status, "files", len(r.Files))
	return nil
}

// Recent returns up to limit runs, newest first. limit <= 0 returns all.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.project, r.language, r.status, r.error, r.warnings, r.started_at, r.finished_at,
		        (SELECT COUNT(*) FROM files f WHERE f.run_id = r.id)
		 FROM runs r
		 ORDER BY r.started_at DESC, r.rowid DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(s.check(err), "query runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r       Run
			status  string
			errText sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Project, &r.Language, &status, &errText, &r.Warnings,
			&r.StartedAt, &r.FinishedAt, &r.FileCount); err != nil {
			return nil, errors.Wrap(err, "scan run")
		}
		r.Status = Status(status)
		r.Error = errText.String
		runs = append(runs, r)
	}
	return runs, errors.Wrap(rows.Err(), "iterate runs")
}

// Files returns the files of a run in the order they were recorded.
func (s *Store) Files(ctx context.Context, runID string) ([]File, error) {
	if s.closed {
		return nil, ErrClosed
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, role, sha256, bytes, status, preserved FROM files WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, errors.Wrapf(s.check(err), "query files of run %s", runID)
	}
	defer rows.Close()

	var files []File
	for rows.Next() {
		var f File
		if err := rows.Scan(&f.Path, &f.Role, &f.SHA256, &f.Bytes, &f.Status, &f.Preserved); err != nil {
			return nil, errors.Wrap(err, "scan file")
		}
		files = append(files, f)
	}
	return files, errors.Wrap(rows.Err(), "iterate files")
}
