// Package sqlite provides a SQLite-backed preference store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/louisbranch/postcard/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/postcard/internal/services/postcard/prefs"
	"github.com/louisbranch/postcard/internal/services/postcard/prefs/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists visitor preferences in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens a SQLite preference store and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Get returns one visitor preference.
func (s *Store) Get(ctx context.Context, visitorID, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s == nil || s.sqlDB == nil {
		return "", fmt.Errorf("storage is not configured")
	}
	if err := prefs.ValidateKey(visitorID, key); err != nil {
		return "", err
	}
	var value string
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT pref_value FROM visitor_prefs WHERE visitor_id = ? AND pref_key = ?`,
		visitorID, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", prefs.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get visitor pref: %w", err)
	}
	return value, nil
}

// Put upserts one visitor preference.
func (s *Store) Put(ctx context.Context, visitorID, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if err := prefs.ValidateKey(visitorID, key); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO visitor_prefs (visitor_id, pref_key, pref_value, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(visitor_id, pref_key) DO UPDATE SET
		   pref_value = excluded.pref_value,
		   updated_at = excluded.updated_at`,
		visitorID, key, value, s.now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("put visitor pref: %w", err)
	}
	return nil
}
