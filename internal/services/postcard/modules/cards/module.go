// Package cards serves the postcard page, its edit form and the card API.
package cards

import (
	"net/http"

	module "github.com/louisbranch/postcard/internal/services/postcard/module"
	"github.com/louisbranch/postcard/internal/services/postcard/routepath"
)

// Module provides card routes.
type Module struct{}

// New returns a card module.
func New() Module { return Module{} }

// ID returns a stable module identifier.
func (Module) ID() string { return "cards" }

// Mount wires card route handlers.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(deps)))
	return module.Mount{Prefix: routepath.Root, Handler: mux}, nil
}
