package app

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	module "github.com/louisbranch/postcard/internal/services/postcard/module"
)

type stubModule struct {
	id    string
	mount module.Mount
	err   error
}

func (m stubModule) ID() string { return m.id }

func (m stubModule) Mount(module.Dependencies) (module.Mount, error) {
	return m.mount, m.err
}

func statusHandler(status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	})
}

func TestComposeRejectsDuplicateModulePrefix(t *testing.T) {
	t.Parallel()

	_, err := Composer{}.Compose(ComposeInput{
		Modules: []module.Module{
			stubModule{id: "one", mount: module.Mount{Prefix: "/one/", Handler: statusHandler(http.StatusOK)}},
			stubModule{id: "two", mount: module.Mount{Prefix: "one/", Handler: statusHandler(http.StatusOK)}},
		},
	})
	if err == nil {
		t.Fatalf("expected duplicate prefix error")
	}
}

func TestComposeRejectsInvalidModules(t *testing.T) {
	t.Parallel()

	tests := map[string]module.Module{
		"nil module":   nil,
		"no prefix":    stubModule{id: "a", mount: module.Mount{Handler: statusHandler(http.StatusOK)}},
		"no handler":   stubModule{id: "b", mount: module.Mount{Prefix: "/b/"}},
		"mount failed": stubModule{id: "c", err: errors.New("boom")},
	}
	for name, feature := range tests {
		if _, err := (Composer{}).Compose(ComposeInput{Modules: []module.Module{feature}}); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestComposeRoutesByPrefix(t *testing.T) {
	t.Parallel()

	h, err := Composer{}.Compose(ComposeInput{
		Modules: []module.Module{
			stubModule{id: "root", mount: module.Mount{Prefix: "/", Handler: statusHandler(http.StatusOK)}},
			stubModule{id: "health", mount: module.Mount{Prefix: "/healthz", Handler: statusHandler(http.StatusNoContent)}},
			stubModule{id: "tutorial", mount: module.Mount{Prefix: "/tutorial/", Handler: statusHandler(http.StatusAccepted)}},
		},
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	for path, want := range map[string]int{
		"/":              http.StatusOK,
		"/anything":      http.StatusOK,
		"/healthz":       http.StatusNoContent,
		"/tutorial/seen": http.StatusAccepted,
	} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != want {
			t.Fatalf("%s: status = %d, want %d", path, rr.Code, want)
		}
	}
}
