// Package system serves operational endpoints.
package system

import (
	"io"
	"net/http"

	module "github.com/louisbranch/postcard/internal/services/postcard/module"
	"github.com/louisbranch/postcard/internal/services/postcard/routepath"
)

// Module provides the health endpoint.
type Module struct{}

// New returns a system module.
func New() Module { return Module{} }

// ID returns a stable module identifier.
func (Module) ID() string { return "system" }

// Mount wires system route handlers.
func (Module) Mount(module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	mux.HandleFunc(http.MethodGet+" "+routepath.Health, handleHealth)
	return module.Mount{Prefix: routepath.Health, Handler: mux}, nil
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}
