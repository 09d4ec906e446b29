// Package tutorial records that a visitor finished or dismissed the tour.
package tutorial

import (
	"net/http"

	module "github.com/louisbranch/postcard/internal/services/postcard/module"
	"github.com/louisbranch/postcard/internal/services/postcard/platform/httpx"
	"github.com/louisbranch/postcard/internal/services/postcard/routepath"
)

const prefix = "/tutorial/"

// Module provides tutorial routes.
type Module struct{}

// New returns a tutorial module.
func New() Module { return Module{} }

// ID returns a stable module identifier.
func (Module) ID() string { return "tutorial" }

// Mount wires tutorial route handlers.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	h := handlers{prefs: deps.Prefs, logger: deps.Log(), scheme: deps.SchemePolicy}
	mux := http.NewServeMux()
	mux.HandleFunc(http.MethodPost+" "+routepath.TutorialSeen, h.handleSeen)
	mux.HandleFunc(http.MethodGet+" "+routepath.TutorialSeen, httpx.MethodNotAllowed(http.MethodPost))
	return module.Mount{Prefix: prefix, Handler: mux}, nil
}
