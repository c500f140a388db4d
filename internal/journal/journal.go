// Package journal keeps a durable index of processed transcripts so the same
// recording is never summarized and filed twice.
package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one processed transcript in the journal index.
type Entry struct {
	ContentHash string
	Date        string // YYYY-MM-DD
	Iteration   int
	NotePath    string // relative to the notes directory
	Title       string
	ContentType string
	Engine      string
	Words       int
	Tasks       int
	Reminders   int
	CreatedAt   string // RFC3339 UTC
}

// Store is a SQLite-backed journal index using WAL mode.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates or opens the journal database at dbPath.
func Open(dbPath string) (*Store, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, fmt.Errorf("journal db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("exec %q: %w", p, err)
		}
	}

	s := &Store{db: db, path: dbPath}
	if err := s.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

func (s *Store) ensureSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		content_hash TEXT PRIMARY KEY,
		date         TEXT NOT NULL,
		iteration    INTEGER NOT NULL,
		note_path    TEXT NOT NULL,
		title        TEXT NOT NULL DEFAULT '',
		content_type TEXT NOT NULL DEFAULT 'general',
		engine       TEXT NOT NULL DEFAULT '',
		words        INTEGER NOT NULL DEFAULT 0,
		tasks        INTEGER NOT NULL DEFAULT 0,
		reminders    INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_entries_date ON entries(date, iteration);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Has reports whether a transcript with this content hash was already
// processed.
func (s *Store) Has(contentHash string) (bool, error) {
	var one int
	err := s.db.QueryRow(
		"SELECT 1 FROM entries WHERE content_hash=?", contentHash).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query entry: %w", err)
	}
	return true, nil
}

// Add records a processed transcript.
func (s *Store) Add(e Entry) error {
	if strings.TrimSpace(e.ContentHash) == "" {
		return fmt.Errorf("entry content hash is empty")
	}
	if e.CreatedAt == "" {
		e.CreatedAt = nowUTC()
	}
	_, err := s.db.Exec(`
		INSERT INTO entries (content_hash, date, iteration, note_path, title,
			content_type, engine, words, tasks, reminders, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ContentHash, e.Date, e.Iteration, e.NotePath, e.Title,
		e.ContentType, e.Engine, e.Words, e.Tasks, e.Reminders, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

// NextIteration returns the next per-day sequence number for date.
func (s *Store) NextIteration(date string) (int, error) {
	var max sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(iteration) FROM entries WHERE date=?", date).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("query max iteration: %w", err)
	}
	if !max.Valid {
		return 1, nil
	}
	return int(max.Int64) + 1, nil
}

// Recent returns the most recently processed entries, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(`
		SELECT content_hash, date, iteration, note_path, title,
			content_type, engine, words, tasks, reminders, created_at
		FROM entries ORDER BY created_at DESC, iteration DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ContentHash, &e.Date, &e.Iteration, &e.NotePath,
			&e.Title, &e.ContentType, &e.Engine, &e.Words, &e.Tasks,
			&e.Reminders, &e.CreatedAt); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the total number of journal entries.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&n); err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return n, nil
}

func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
