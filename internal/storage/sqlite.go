package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS view_state (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// SQLite stores items in a single SQLite table.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database file at path.
func NewSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return &SQLite{db: db}, nil
}

// GetItem returns the value stored under key.
func (s *SQLite) GetItem(key string) (string, bool, error) {
	if s == nil || s.db == nil {
		return "", false, ErrClosed
	}

	var value string
	err := s.db.QueryRow(`SELECT value FROM view_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// SetItem stores value under key.
func (s *SQLite) SetItem(key, value string) error {
	if s == nil || s.db == nil {
		return ErrClosed
	}
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO view_state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// RemoveItem deletes key.
func (s *SQLite) RemoveItem(key string) error {
	if s == nil || s.db == nil {
		return ErrClosed
	}
	_, err := s.db.Exec(`DELETE FROM view_state WHERE key = ?`, key)
	return err
}

// Keys lists stored keys in ascending order.
func (s *SQLite) Keys() ([]string, error) {
	if s == nil || s.db == nil {
		return nil, ErrClosed
	}

	rows, err := s.db.Query(`SELECT key FROM view_state ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// Clear removes every key.
func (s *SQLite) Clear() error {
	if s == nil || s.db == nil {
		return ErrClosed
	}
	_, err := s.db.Exec(`DELETE FROM view_state`)
	return err
}

// Close closes the database.
func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

var _ Storage = (*SQLite)(nil)
