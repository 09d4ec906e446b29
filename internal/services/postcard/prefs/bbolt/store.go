// Package bbolt provides a BoltDB-backed preference store.
package bbolt

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/postcard/internal/services/postcard/prefs"
	"go.etcd.io/bbolt"
)

const prefsBucket = "visitor_prefs"

// Store keeps one nested bucket per visitor.
type Store struct {
	db *bbolt.DB
}

// Open opens a BoltDB-backed store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	db, err := bbolt.Open(filepath.Clean(path), 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(prefsBucket)); err != nil {
			return fmt.Errorf("create prefs bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying BoltDB database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns one visitor preference.
func (s *Store) Get(ctx context.Context, visitorID, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s == nil || s.db == nil {
		return "", fmt.Errorf("storage is not configured")
	}
	if err := prefs.ValidateKey(visitorID, key); err != nil {
		return "", err
	}
	var value string
	err := s.db.View(func(tx *bbolt.Tx) error {
		root := tx.Bucket([]byte(prefsBucket))
		if root == nil {
			return fmt.Errorf("prefs bucket is missing")
		}
		visitor := root.Bucket([]byte(visitorID))
		if visitor == nil {
			return prefs.ErrNotFound
		}
		raw := visitor.Get([]byte(key))
		if raw == nil {
			return prefs.ErrNotFound
		}
		value = string(raw)
		return nil
	})
	if err != nil {
		return "", err
	}
	return value, nil
}

// Put stores one visitor preference.
func (s *Store) Put(ctx context.Context, visitorID, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	if err := prefs.ValidateKey(visitorID, key); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		root := tx.Bucket([]byte(prefsBucket))
		if root == nil {
			return fmt.Errorf("prefs bucket is missing")
		}
		visitor, err := root.CreateBucketIfNotExists([]byte(visitorID))
		if err != nil {
			return fmt.Errorf("create visitor bucket: %w", err)
		}
		return visitor.Put([]byte(key), []byte(value))
	})
}
