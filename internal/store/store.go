// internal/store/store.go
// Package store persists cached payloads and tabular records in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/glebarez/go-sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// FileName is the database file created inside a cache directory.
const FileName = "capdash.db"

const schema = `
CREATE TABLE IF NOT EXISTS cache (
  key TEXT PRIMARY KEY,
  value BLOB NOT NULL,
  expires_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS restaurants (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT,
  country TEXT,
  city TEXT,
  cuisine TEXT
);
CREATE INDEX IF NOT EXISTS restaurants_country ON restaurants(country);
CREATE INDEX IF NOT EXISTS restaurants_city ON restaurants(city);
`

// Store owns the SQLite handle shared by Cache and Records.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path and applies the schema. Pass
// MemoryPath for a throwaway database.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := path
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
		dsn = path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// a second connection to :memory: would see a different database
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// OpenDir opens FileName inside dir, or an in-memory database when dir is empty.
func OpenDir(ctx context.Context, dir string) (*Store, error) {
	if dir == "" {
		return Open(ctx, MemoryPath)
	}
	return Open(ctx, filepath.Join(dir, FileName))
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Cache returns the key/value cache backed by s.
func (s *Store) Cache() *Cache {
	return &Cache{store: s}
}

// Records returns the tabular record table backed by s.
func (s *Store) Records() *Records {
	return &Records{store: s}
}
