package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// SQLiteStore persists history in a single key/value table. The whole
// history is one JSON document under the "history" key and the points
// total an integer under "points", so reads and writes stay atomic without
// a schema migration story.
type SQLiteStore struct {
	db *sql.DB
}

const (
	keyHistory = "history"
	keyPoints  = "points"
)

// Open connects to the SQLite database at dsn, applies the recommended
// pragmas, and creates the state table if needed.
func Open(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	const schema = `CREATE TABLE IF NOT EXISTS state (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Record(entry Entry) error {
	entries, err := s.Entries()
	if err != nil {
		return err
	}
	points, err := s.TotalPoints()
	if err != nil {
		return err
	}

	entries = append([]Entry{entry}, entries...)
	raw, err := encodeEntries(entries)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if err := setValue(tx, keyHistory, string(raw)); err != nil {
		return err
	}
	if err := setValue(tx, keyPoints, strconv.Itoa(points+entry.Points)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Entries() ([]Entry, error) {
	raw, ok, err := s.getValue(keyHistory)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return decodeEntries([]byte(raw)), nil
}

func (s *SQLiteStore) TotalPoints() (int, error) {
	raw, ok, err := s.getValue(keyPoints)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		// Unreadable totals read as zero, same as a corrupt history.
		return 0, nil
	}
	return n, nil
}

func (s *SQLiteStore) Reset() error {
	if _, err := s.db.Exec(`DELETE FROM state WHERE key IN (?, ?)`, keyHistory, keyPoints); err != nil {
		return fmt.Errorf("reset state: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) getValue(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return value, true, nil
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func setValue(e execer, key, value string) error {
	const q = `INSERT INTO state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := e.Exec(q, key, value); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. EYERIS_DB environment variable
// 2. $XDG_DATA_HOME/eyeris/eyeris.db
// 3. ~/.local/share/eyeris/eyeris.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("EYERIS_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "eyeris", "eyeris.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
