package postcard

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/louisbranch/postcard/internal/services/postcard/prefs"
	prefsbbolt "github.com/louisbranch/postcard/internal/services/postcard/prefs/bbolt"
	prefssqlite "github.com/louisbranch/postcard/internal/services/postcard/prefs/sqlite"
)

// Store drivers accepted by StoreConfig.
const (
	StoreSQLite = "sqlite"
	StoreBolt   = "bbolt"
	StoreMemory = "memory"
)

// StoreConfig selects and locates the visitor preference store.
type StoreConfig struct {
	Driver     string
	SQLitePath string
	BoltPath   string
}

// OpenStore opens the configured preference store, creating parent
// directories for file-backed drivers.
func OpenStore(ctx context.Context, cfg StoreConfig) (prefs.Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", StoreSQLite:
		if err := ensureParentDir(cfg.SQLitePath); err != nil {
			return nil, err
		}
		return prefssqlite.Open(ctx, cfg.SQLitePath)
	case StoreBolt:
		if err := ensureParentDir(cfg.BoltPath); err != nil {
			return nil, err
		}
		return prefsbbolt.Open(cfg.BoltPath)
	case StoreMemory:
		return prefs.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

func ensureParentDir(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("storage path is required")
	}
	dir := filepath.Dir(filepath.Clean(path))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}
	return nil
}
