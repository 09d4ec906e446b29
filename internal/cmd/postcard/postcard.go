// Package postcard parses postcard command flags and runs the service.
package postcard

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/postcard/internal/platform/cmd"
	"github.com/louisbranch/postcard/internal/platform/timeouts"
	server "github.com/louisbranch/postcard/internal/services/postcard"
	"github.com/louisbranch/postcard/internal/services/postcard/view"
)

// Config holds postcard command configuration.
type Config struct {
	HTTPAddr            string        `env:"POSTCARD_HTTP_ADDR"             envDefault:"localhost:8080"`
	PublicBaseURL       string        `env:"POSTCARD_PUBLIC_BASE_URL"`
	TrustForwardedProto bool          `env:"POSTCARD_TRUST_FORWARDED_PROTO" envDefault:"false"`
	StoreDriver         string        `env:"POSTCARD_STORE"                 envDefault:"sqlite"`
	DBPath              string        `env:"POSTCARD_DB_PATH"               envDefault:"data/postcard.db"`
	BoltPath            string        `env:"POSTCARD_BOLT_PATH"             envDefault:"data/postcard.bolt"`
	TileURL             string        `env:"POSTCARD_TILE_URL"              envDefault:"https://tile.openstreetmap.org/{z}/{x}/{y}.png"`
	StampZoom           int           `env:"POSTCARD_STAMP_ZOOM"            envDefault:"12"`
	TutorialSettle      time.Duration `env:"POSTCARD_TUTORIAL_SETTLE"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.TutorialSettle <= 0 {
		cfg.TutorialSettle = timeouts.TutorialSettle
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.PublicBaseURL, "public-base-url", cfg.PublicBaseURL, "public base URL used in share links")
	fs.BoolVar(&cfg.TrustForwardedProto, "trust-forwarded-proto", cfg.TrustForwardedProto, "honor X-Forwarded-Proto from a trusted proxy")
	fs.StringVar(&cfg.StoreDriver, "store", cfg.StoreDriver, "preference store driver: sqlite, bbolt or memory")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite preference database path")
	fs.StringVar(&cfg.BoltPath, "bolt-path", cfg.BoltPath, "BoltDB preference database path")
	fs.StringVar(&cfg.TileURL, "tile-url", cfg.TileURL, "map tile URL template with {z}, {x} and {y}")
	fs.IntVar(&cfg.StampZoom, "stamp-zoom", cfg.StampZoom, "zoom level of the stamp map")
	fs.DurationVar(&cfg.TutorialSettle, "tutorial-settle", cfg.TutorialSettle, "pause between the tutorial settle flips")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.StoreDriver {
	case server.StoreSQLite, server.StoreBolt, server.StoreMemory:
	default:
		return fmt.Errorf("unknown store driver %q", c.StoreDriver)
	}
	if c.StampZoom < 0 || c.StampZoom > view.MaxZoom {
		return fmt.Errorf("stamp zoom %d must be within [0, %d]", c.StampZoom, view.MaxZoom)
	}
	return nil
}

func (c Config) serverConfig() server.Config {
	return server.Config{
		HTTPAddr:            c.HTTPAddr,
		PublicBaseURL:       c.PublicBaseURL,
		TrustForwardedProto: c.TrustForwardedProto,
		Store: server.StoreConfig{
			Driver:     c.StoreDriver,
			SQLitePath: c.DBPath,
			BoltPath:   c.BoltPath,
		},
		TileURL:        c.TileURL,
		StampZoom:      c.StampZoom,
		TutorialSettle: c.TutorialSettle,
	}
}

// Run starts the postcard HTTP service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServicePostcard, func(ctx context.Context) error {
		srv, err := server.NewServer(ctx, cfg.serverConfig())
		if err != nil {
			return err
		}
		defer srv.Close()

		log.Printf("postcard listening addr=%s store=%s", srv.Addr(), cfg.StoreDriver)
		return srv.ListenAndServe(ctx)
	})
}
