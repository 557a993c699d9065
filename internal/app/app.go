// Package app wires configuration, storage, services and the HTTP stack
// together. Both cmd/api and cmd/contactctl build on it so the server and the
// CLI always run the same business logic against the same storage.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pkordes/contactbook/internal/config"
	"github.com/pkordes/contactbook/internal/handler"
	"github.com/pkordes/contactbook/internal/middleware"
	"github.com/pkordes/contactbook/internal/repo"
	"github.com/pkordes/contactbook/internal/service"
)

// App holds the services built for one configuration.
type App struct {
	Contacts      *service.ContactService
	Organizations *service.OrganizationService
	Tags          *service.TagService
	Export        *service.ExportService

	cfg   config.Config
	log   *slog.Logger
	close func()
}

// NewLogger returns a JSON slog.Logger writing to w at the given level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// Open connects to the configured storage and builds the services.
// For Postgres it verifies the database is reachable before returning.
// Call Close when done.
func Open(ctx context.Context, cfg config.Config, log *slog.Logger) (*App, error) {
	var (
		contacts repo.ContactRepo
		orgs     repo.OrganizationRepo
		tags     repo.TagRepo
		closeFn  = func() {}
	)

	switch cfg.Storage {
	case config.StorageMemory:
		store := repo.NewMemoryStore()
		contacts, orgs, tags = store.Contacts(), store.Organizations(), store.Tags()
		log.Info("using in-memory storage")

	case config.StoragePostgres:
		// New does not open connections immediately; the first query does.
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("app.Open: create database pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("app.Open: connect to database: %w", err)
		}
		log.Info("database connection established")
		contacts, orgs, tags = repo.NewContactRepo(pool), repo.NewOrganizationRepo(pool), repo.NewTagRepo(pool)
		closeFn = pool.Close

	default:
		return nil, fmt.Errorf("app.Open: unknown storage %q", cfg.Storage)
	}

	return &App{
		Contacts:      service.NewContactService(contacts, tags),
		Organizations: service.NewOrganizationService(orgs, tags),
		Tags:          service.NewTagService(tags),
		Export:        service.NewExportService(contacts, orgs),
		cfg:           cfg,
		log:           log,
		close:         closeFn,
	}, nil
}

// Close releases the storage connection, if any.
func (a *App) Close() {
	a.close()
}

// Router returns the full HTTP handler: middleware stack plus every API route.
//
// Middleware is applied in order: RequestID, RealIP, SlogLogger, Recoverer,
// CORS, MaxBodySize. RequestID comes first so every later layer (and every
// log line) sees the ID. Recoverer turns panics into a 500.
func (a *App) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(a.log))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(a.cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(a.cfg.MaxBodyBytes))

	handler.NewServer(a.Contacts, a.Organizations, a.Tags, a.Export, a.log).RegisterRoutes(r)
	return r
}
