package tutorial

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	module "github.com/louisbranch/postcard/internal/services/postcard/module"
	"github.com/louisbranch/postcard/internal/services/postcard/platform/visitor"
	"github.com/louisbranch/postcard/internal/services/postcard/prefs"
)

const testVisitorID = "6f1c2d7e-9b0a-4c55-8e3f-2a1b0c9d8e7f"

type failingStore struct{}

func (failingStore) Get(context.Context, string, string) (string, error) {
	return "", errors.New("disk on fire")
}

func (failingStore) Put(context.Context, string, string, string) error {
	return errors.New("disk on fire")
}

func (failingStore) Close() error { return nil }

func newTestHandler(t *testing.T, store prefs.Store) http.Handler {
	t.Helper()
	mount, err := New().Mount(module.Dependencies{Prefs: store, Logger: log.New(&bytes.Buffer{}, "", 0)})
	if err != nil {
		t.Fatalf("Mount() = %v", err)
	}
	return mount.Handler
}

func seenRequest(outcome string) *http.Request {
	form := url.Values{"outcome": {outcome}}
	req := httptest.NewRequest(http.MethodPost, "http://postcard.example/tutorial/seen", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Origin", "http://postcard.example")
	req.AddCookie(&http.Cookie{Name: visitor.CookieName, Value: testVisitorID})
	return req
}

func TestSeenPersistsFlag(t *testing.T) {
	t.Parallel()

	for _, outcome := range []string{OutcomeDismissed, OutcomeCompleted} {
		store := prefs.NewMemory()
		rr := httptest.NewRecorder()
		newTestHandler(t, store).ServeHTTP(rr, seenRequest(outcome))

		if rr.Code != http.StatusSeeOther {
			t.Fatalf("%s: status = %d, want %d", outcome, rr.Code, http.StatusSeeOther)
		}
		if got := rr.Header().Get("Location"); got != "/" {
			t.Fatalf("%s: location = %q, want /", outcome, got)
		}
		shown, err := prefs.Bool(context.Background(), store, testVisitorID, prefs.TutorialShownKey)
		if err != nil {
			t.Fatalf("%s: Bool() = %v", outcome, err)
		}
		if !shown {
			t.Fatalf("%s: expected tutorial flag to be set", outcome)
		}
	}
}

func TestSeenJSONReturnsNoContent(t *testing.T) {
	t.Parallel()

	req := seenRequest(OutcomeDismissed)
	req.Header.Set("Accept", "application/json")
	rr := httptest.NewRecorder()
	newTestHandler(t, prefs.NewMemory()).ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
}

func TestSeenRequiresSameOrigin(t *testing.T) {
	t.Parallel()

	store := prefs.NewMemory()
	req := seenRequest(OutcomeDismissed)
	req.Header.Set("Origin", "https://evil.example")
	rr := httptest.NewRecorder()
	newTestHandler(t, store).ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusForbidden)
	}
	shown, _ := prefs.Bool(context.Background(), store, testVisitorID, prefs.TutorialShownKey)
	if shown {
		t.Fatal("cross-origin request must not set the flag")
	}
}

func TestSeenRejectsUnknownOutcome(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	newTestHandler(t, prefs.NewMemory()).ServeHTTP(rr, seenRequest("maybe"))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestSeenStoreFailureIsUnavailable(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	newTestHandler(t, failingStore{}).ServeHTTP(rr, seenRequest(OutcomeCompleted))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
}

func TestSeenGetNotAllowed(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	newTestHandler(t, prefs.NewMemory()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "http://postcard.example/tutorial/seen", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusMethodNotAllowed)
	}
	if got := rr.Header().Get("Allow"); got != http.MethodPost {
		t.Fatalf("Allow = %q, want POST", got)
	}
}
