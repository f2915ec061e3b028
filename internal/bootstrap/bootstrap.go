// Package bootstrap builds the process-wide collaborators that are created
// once at startup and torn down never: the logger and the shared service
// objects that every view receives explicitly instead of reaching for
// ambient globals.
package bootstrap

import (
	"log/slog"
	"os"

	"github.com/ZawadulAmanHredoy/export-import-hub/internal/api"
	"github.com/ZawadulAmanHredoy/export-import-hub/internal/auth"
	"github.com/ZawadulAmanHredoy/export-import-hub/internal/cache"
	"github.com/ZawadulAmanHredoy/export-import-hub/internal/config"
)

// NewLogger builds the process logger: JSON on stderr, so log output never
// interleaves with table rendering on stdout. Debug level also records
// source locations.
func NewLogger(level string) *slog.Logger {
	lvl := parseLevel(level)
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl == slog.LevelDebug,
	})
	return slog.New(handler)
}

// App bundles the constructed service objects handed to the views.
type App struct {
	Session  *auth.Session
	Cache    *cache.Store
	Products *api.ProductClient
	Exports  *api.ExportClient
	Imports  *api.ImportClient
	PageSize int
	Logger   *slog.Logger
}

// NewApp wires the clients, session and cache from configuration.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	session := auth.Anonymous()
	if cfg.API.Token != "" {
		session = auth.NewSession(auth.NewStaticTokenSource(cfg.API.Token))
	}

	client, err := api.NewClient(api.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Breaker: api.BreakerConfig{
			Enabled:             cfg.Breaker.Enabled,
			ConsecutiveFailures: cfg.Breaker.ConsecutiveFailures,
			OpenTimeout:         cfg.Breaker.OpenTimeout,
		},
	}, session, logger)
	if err != nil {
		return nil, err
	}

	return &App{
		Session:  session,
		Cache:    cache.NewStore(),
		Products: api.NewProductClient(client),
		Exports:  api.NewExportClient(client),
		Imports:  api.NewImportClient(client),
		PageSize: cfg.Catalog.PageSize,
		Logger:   logger,
	}, nil
}

// parseLevel maps the configured level name to slog; anything unrecognized
// falls back to info rather than failing startup.
func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
