// Package cache persists compiled-unit diagnostic/hover summaries in a
// pure-Go embedded SQLite database, keyed by source content hash, so a
// language server restarting between documents doesn't re-run the full
// pipeline for unit source it has already analysed (spec.md §5's
// one-context-per-document isolation is purely in-memory; this is the
// on-disk reuse layer on top of it).
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	_ "modernc.org/sqlite"
)

// Summary is what gets cached for one compiled unit: its diagnostic
// count/text and whether it fully type-checked, enough for a language
// server to decide whether to re-show stale results while a fresh
// Analyze runs in the background.
type Summary struct {
	ContentHash string
	FileName    string
	ErrorCount  int
	WarnCount   int
	Diagnostics string // newline-joined rendered diagnostics
	CachedAt    time.Time
}

// Store wraps a SQLite-backed cache of Summary rows.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates or opens the cache database at path, creating parent
// directories and the schema if needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("cache: create directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cache: open: %w", err)
	}
	s := &Store{db: db, path: path}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS units (
		content_hash TEXT PRIMARY KEY,
		file_name    TEXT NOT NULL,
		error_count  INTEGER NOT NULL,
		warn_count   INTEGER NOT NULL,
		diagnostics  TEXT NOT NULL,
		cached_at    DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_units_file ON units(file_name);
	`
	_, err := s.db.Exec(schema)
	return err
}

// HashSource computes the content hash Put/Get key on.
func HashSource(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// Get looks up a cached Summary for the given source content hash.
func (s *Store) Get(contentHash string) (*Summary, bool, error) {
	row := s.db.QueryRow(
		`SELECT content_hash, file_name, error_count, warn_count, diagnostics, cached_at
		 FROM units WHERE content_hash = ?`, contentHash)
	var sum Summary
	if err := row.Scan(&sum.ContentHash, &sum.FileName, &sum.ErrorCount, &sum.WarnCount, &sum.Diagnostics, &sum.CachedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &sum, true, nil
}

// Put inserts or replaces the cached Summary for a content hash.
func (s *Store) Put(sum Summary) error {
	_, err := s.db.Exec(
		`INSERT INTO units (content_hash, file_name, error_count, warn_count, diagnostics, cached_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(content_hash) DO UPDATE SET
			file_name = excluded.file_name,
			error_count = excluded.error_count,
			warn_count = excluded.warn_count,
			diagnostics = excluded.diagnostics,
			cached_at = excluded.cached_at`,
		sum.ContentHash, sum.FileName, sum.ErrorCount, sum.WarnCount, sum.Diagnostics, sum.CachedAt)
	return err
}

// Evict removes a cached unit by content hash.
func (s *Store) Evict(contentHash string) error {
	_, err := s.db.Exec(`DELETE FROM units WHERE content_hash = ?`, contentHash)
	return err
}

// Count returns the number of cached units, humanized for logging.
func (s *Store) Count() (string, error) {
	row := s.db.QueryRow(`SELECT COUNT(*) FROM units`)
	var n int64
	if err := row.Scan(&n); err != nil {
		return "", err
	}
	return humanize.Comma(n), nil
}
