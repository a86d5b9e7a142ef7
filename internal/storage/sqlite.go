// Package storage provides SQLite-based persistence for high scores.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-2048/internal/core"
)

// Store manages the SQLite database connection for high-score persistence.
// Each key holds exactly one value: the best tile reached.
type Store struct {
	db *sql.DB
}

// HighScoreEntry is the stored best value for one key.
type HighScoreEntry struct {
	Key       string
	Value     int
	UpdatedAt time.Time
}

var _ core.HighScoreStore = (*Store)(nil)

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS high_scores (
			key TEXT PRIMARY KEY,
			value INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// HighScore returns the stored value for key, or 0 if none exists.
func (s *Store) HighScore(key string) (int, error) {
	var value int
	err := s.db.QueryRow("SELECT value FROM high_scores WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return value, nil
}

// SaveHighScore stores value for key unless a larger value is already stored.
func (s *Store) SaveHighScore(key string, value int) error {
	_, err := s.db.Exec(
		`INSERT INTO high_scores (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE
		 SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
		 WHERE excluded.value > high_scores.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save high score: %w", err)
	}
	return nil
}

// Entry returns the stored record for key, or nil if none exists.
func (s *Store) Entry(key string) (*HighScoreEntry, error) {
	var e HighScoreEntry
	var updatedAt any

	err := s.db.QueryRow(
		"SELECT key, value, updated_at FROM high_scores WHERE key = ?",
		key,
	).Scan(&e.Key, &e.Value, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query high score entry: %w", err)
	}

	e.UpdatedAt = parseTimestamp(updatedAt)
	return &e, nil
}

// ClearHighScore removes the stored value for key.
func (s *Store) ClearHighScore(key string) error {
	_, err := s.db.Exec("DELETE FROM high_scores WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("storage: cannot clear high score: %w", err)
	}
	return nil
}

// parseTimestamp handles both time.Time and string datetime columns.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
