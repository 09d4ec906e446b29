// Package postcard hosts the browser-facing postcard service.
package postcard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/postcard/internal/platform/timeouts"
	postcardapp "github.com/louisbranch/postcard/internal/services/postcard/app"
	module "github.com/louisbranch/postcard/internal/services/postcard/module"
	"github.com/louisbranch/postcard/internal/services/postcard/modules"
	"github.com/louisbranch/postcard/internal/services/postcard/platform/httpx"
	"github.com/louisbranch/postcard/internal/services/postcard/platform/observability"
	"github.com/louisbranch/postcard/internal/services/postcard/platform/requestmeta"
	"github.com/louisbranch/postcard/internal/services/postcard/prefs"
	"github.com/louisbranch/postcard/internal/services/postcard/routepath"
	postcardstatic "github.com/louisbranch/postcard/internal/services/postcard/static"
	"go.opentelemetry.io/otel/trace"
)

// Config defines startup inputs for the postcard service.
type Config struct {
	HTTPAddr            string
	PublicBaseURL       string
	TrustForwardedProto bool
	Store               StoreConfig
	TileURL             string
	StampZoom           int
	TutorialSettle      time.Duration
	Logger              *log.Logger
	// TracerProvider defaults to the global provider.
	TracerProvider trace.TracerProvider
}

// Server hosts the postcard HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	store      prefs.Store
}

// NewHandler builds the root handler over store.
func NewHandler(cfg Config, store prefs.Store) (http.Handler, error) {
	if store == nil {
		return nil, errors.New("preference store is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	settle := cfg.TutorialSettle
	if settle <= 0 {
		settle = timeouts.TutorialSettle
	}
	deps := module.Dependencies{
		Prefs:          store,
		Logger:         logger,
		PublicBaseURL:  cfg.PublicBaseURL,
		SchemePolicy:   requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto},
		TileURL:        cfg.TileURL,
		StampZoom:      cfg.StampZoom,
		TutorialSettle: settle,
	}
	h, err := postcardapp.Composer{}.Compose(postcardapp.ComposeInput{
		Dependencies: deps,
		Modules:      modules.Default(),
	})
	if err != nil {
		return nil, err
	}
	rootMux := http.NewServeMux()
	rootMux.Handle(routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(postcardstatic.FS))))
	rootMux.Handle("/", h)
	return httpx.Chain(rootMux,
		httpx.RecoverPanic(),
		httpx.RequestID(),
		observability.Tracing(cfg.TracerProvider),
		observability.RequestLogger(logger),
	), nil
}

// NewServer validates config, opens the preference store and constructs a
// postcard server.
func NewServer(ctx context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	openCtx, cancel := context.WithTimeout(ctx, timeouts.StoreOpen)
	defer cancel()
	store, err := OpenStore(openCtx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open preference store: %w", err)
	}
	handler, err := NewHandler(cfg, store)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("compose postcard handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		store:    store,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.httpAddr
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("postcard server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown postcard http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve postcard http: %w", err)
	}
}

// Close closes the HTTP server and the preference store.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.httpServer != nil {
		_ = s.httpServer.Close()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("close preference store: %v", err)
		}
	}
}
