// Package sqlite implements kv.KV backed by a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/colonyops/taskpad/internal/core/kv"
)

const (
	dbFile      = "taskpad.db"
	busyTimeout = 5000 // milliseconds
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS kv_store (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
`

// KV is a SQLite-backed key-value store. A single database file holds
// all keys in the kv_store table.
type KV struct {
	conn *sql.DB
}

var _ kv.KV = (*KV)(nil)

// Open opens (or creates) the database under dataDir and initializes the
// schema. The connection uses WAL mode with a busy timeout.
func Open(dataDir string) (*KV, error) {
	dbPath := filepath.Join(dataDir, dbFile)

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)", dbPath, busyTimeout)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := conn.PingContext(context.Background()); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if _, err := conn.ExecContext(context.Background(), schemaSQL); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return &KV{conn: conn}, nil
}

// Close closes the database connection.
func (s *KV) Close() error {
	return s.conn.Close()
}

// Read returns the value stored under key.
func (s *KV) Read(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.conn.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("kv read %q: %w", key, err)
	}

	return value, true, nil
}

// Write stores value under key, overwriting any previous value.
func (s *KV) Write(ctx context.Context, key string, value []byte) error {
	now := time.Now().UnixNano()

	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO kv_store (key, value, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value      = excluded.value,
			updated_at = excluded.updated_at`,
		key, value, now, now,
	)
	if err != nil {
		return fmt.Errorf("kv write %q: %w", key, err)
	}

	return nil
}
