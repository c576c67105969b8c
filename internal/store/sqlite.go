package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLite stores values in a single kv table and keeps a write-through
// in-memory copy so reads never touch the database after startup.
type SQLite struct {
	conn    *sql.DB
	path    string
	cacheMu sync.RWMutex
	cache   map[string][]byte
}

// OpenSQLite opens (creating if needed) the database file at path.
func OpenSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	conn.SetMaxOpenConns(2)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s, err := NewSQLite(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	s.path = path
	return s, nil
}

// NewSQLite wraps an existing connection, migrating and warming the cache.
func NewSQLite(conn *sql.DB) (*SQLite, error) {
	s := &SQLite{conn: conn, cache: make(map[string][]byte)}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	if err := s.loadCache(); err != nil {
		return nil, fmt.Errorf("load cache: %w", err)
	}
	return s, nil
}

func (s *SQLite) migrate() error {
	_, err := s.conn.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key        TEXT PRIMARY KEY,
		value      BLOB NOT NULL,
		updated_at TEXT NOT NULL DEFAULT (datetime('now'))
	)`)
	return err
}

func (s *SQLite) loadCache() error {
	rows, err := s.conn.Query(`SELECT key, value FROM kv`)
	if err != nil {
		return err
	}
	defer rows.Close()

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return err
		}
		s.cache[key] = value
	}
	return rows.Err()
}

func (s *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	s.cacheMu.RLock()
	v, ok := s.cache[key]
	s.cacheMu.RUnlock()
	if ok {
		return append([]byte(nil), v...), nil
	}

	var value []byte
	err := s.conn.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	s.cacheMu.Lock()
	s.cache[key] = value
	s.cacheMu.Unlock()
	return append([]byte(nil), value...), nil
}

func (s *SQLite) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.conn.ExecContext(ctx,
		`INSERT OR REPLACE INTO kv (key, value, updated_at) VALUES (?, ?, datetime('now'))`,
		key, value)
	if err != nil {
		return err
	}
	s.cacheMu.Lock()
	s.cache[key] = append([]byte(nil), value...)
	s.cacheMu.Unlock()
	return nil
}

func (s *SQLite) Delete(ctx context.Context, key string) error {
	if _, err := s.conn.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return err
	}
	s.cacheMu.Lock()
	delete(s.cache, key)
	s.cacheMu.Unlock()
	return nil
}

func (s *SQLite) Close() error {
	return s.conn.Close()
}

// SizeBytes returns the file size of the database, or 0 for wrapped connections.
func (s *SQLite) SizeBytes() (int64, error) {
	if s.path == "" {
		return 0, nil
	}
	info, err := os.Stat(s.path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
