// Package module defines the feature contract used by postcard composition.
package module

import (
	"log"
	"net/http"
	"time"

	"github.com/louisbranch/postcard/internal/services/postcard/platform/requestmeta"
	"github.com/louisbranch/postcard/internal/services/postcard/prefs"
)

// Dependencies carries shared collaborators into feature modules.
type Dependencies struct {
	Prefs          prefs.Store
	Logger         *log.Logger
	PublicBaseURL  string
	SchemePolicy   requestmeta.SchemePolicy
	TileURL        string
	StampZoom      int
	TutorialSettle time.Duration
}

// Log returns the configured logger or the process default.
func (d Dependencies) Log() *log.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return log.Default()
}

// Mount describes a module route mount.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module declares the minimum contract required by postcard composition.
type Module interface {
	ID() string
	Mount(Dependencies) (Mount, error)
}
