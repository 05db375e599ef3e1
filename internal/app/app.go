// Package app wires the showtimes service: one table client and one search
// handler, built once per process and shared by every invocation.
package app

import (
	"context"
	"fmt"
	"time"

	httpapi "github.com/chronoworld/showtimes/internal/api/http"
	"github.com/chronoworld/showtimes/internal/config"
	"github.com/chronoworld/showtimes/internal/log"
	"github.com/chronoworld/showtimes/internal/observability"
	"github.com/chronoworld/showtimes/internal/search"
	"github.com/chronoworld/showtimes/internal/server"
	"github.com/chronoworld/showtimes/internal/storage"
)

// App holds the process-wide resources.
type App struct {
	cfg     *config.Config
	table   storage.Table
	stats   *observability.SearchStats
	handler *search.QueryHandler
}

// Option configures an App.
type Option func(*App)

// WithTable replaces the DynamoDB table, e.g. with a MemoryTable.
func WithTable(t storage.Table) Option {
	return func(a *App) {
		a.table = t
	}
}

// New builds the App from cfg. Unless WithTable is given, a DynamoDB client
// is created for cfg.Table.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	a := &App{
		cfg:   cfg,
		stats: observability.NewSearchStats(time.Hour),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.table == nil {
		table, err := storage.NewDynamoTable(ctx, cfg.Table.Name, storage.DynamoConfig{
			Region:       cfg.Table.Region,
			Endpoint:     cfg.Table.Endpoint,
			ScanAllPages: cfg.Table.ScanAllPages,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize table client: %w", err)
		}
		a.table = table
		log.Logger().Info().
			Str("table", cfg.Table.Name).
			Bool("scan_all_pages", cfg.Table.ScanAllPages).
			Msg("DynamoDB table client initialized")
	}

	a.handler = search.NewQueryHandler(a.table, search.WithRecorder(a.stats))
	return a, nil
}

// Handler returns the shared search handler.
func (a *App) Handler() *search.QueryHandler {
	return a.handler
}

// Stats returns the search statistics collected by the handler.
func (a *App) Stats() *observability.SearchStats {
	return a.stats
}

// NewServer builds the local HTTP server around the handler.
func (a *App) NewServer() *server.Server {
	return server.New(a.cfg.HTTP.Addr, httpapi.NewRouter(a.handler, a.stats), server.Config{
		ReadTimeout:  a.cfg.HTTP.ReadTimeout,
		WriteTimeout: a.cfg.HTTP.WriteTimeout,
		IdleTimeout:  a.cfg.HTTP.IdleTimeout,
	})
}

// Serve runs the local HTTP server until ctx is cancelled.
func (a *App) Serve(ctx context.Context) error {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				a.stats.Prune()
			}
		}
	}()

	return a.NewServer().Run(ctx)
}
