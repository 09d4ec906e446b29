package bbolt

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/louisbranch/postcard/internal/services/postcard/prefs"
)

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(""); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	if _, err := store.Get(ctx, "visitor-1", prefs.TutorialShownKey); !errors.Is(err, prefs.ErrNotFound) {
		t.Fatalf("Get() error = %v, want ErrNotFound", err)
	}
	if err := store.Put(ctx, "visitor-1", prefs.TutorialShownKey, prefs.ValueTrue); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	got, err := store.Get(ctx, "visitor-1", prefs.TutorialShownKey)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != prefs.ValueTrue {
		t.Fatalf("value = %q, want %q", got, prefs.ValueTrue)
	}
	if _, err := store.Get(ctx, "visitor-1", "other"); !errors.Is(err, prefs.ErrNotFound) {
		t.Fatalf("Get(other) error = %v, want ErrNotFound", err)
	}
}

func TestGetHonorsCanceledContext(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.Get(ctx, "visitor-1", prefs.TutorialShownKey); !errors.Is(err, context.Canceled) {
		t.Fatalf("Get() error = %v, want context.Canceled", err)
	}
}

func openTempStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "prefs.bolt"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}
