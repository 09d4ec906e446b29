package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/louisbranch/postcard/internal/services/postcard/prefs"
)

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), " "); err == nil {
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
	if err := store.Put(ctx, "visitor-1", prefs.TutorialShownKey, prefs.ValueFalse); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := store.Put(ctx, "visitor-1", prefs.TutorialShownKey, prefs.ValueTrue); err != nil {
		t.Fatalf("Put() overwrite error = %v", err)
	}
	got, err := store.Get(ctx, "visitor-1", prefs.TutorialShownKey)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != prefs.ValueTrue {
		t.Fatalf("value = %q, want %q", got, prefs.ValueTrue)
	}
}

func TestValuesSurviveReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "prefs.db")
	ctx := context.Background()
	store, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := prefs.SetBool(ctx, store, "visitor-1", prefs.TutorialShownKey, true); err != nil {
		t.Fatalf("SetBool() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })
	shown, err := prefs.Bool(ctx, reopened, "visitor-1", prefs.TutorialShownKey)
	if err != nil {
		t.Fatalf("Bool() error = %v", err)
	}
	if !shown {
		t.Fatal("flag lost across reopen")
	}
}

func TestRejectsMissingVisitor(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	if err := store.Put(context.Background(), "", prefs.TutorialShownKey, prefs.ValueTrue); err == nil {
		t.Fatal("expected visitor id error")
	}
}

func openTempStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "prefs.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}
