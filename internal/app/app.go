// Package app wires the console: the DataSync client, the local store, the
// services and the HTTP router.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"datasync-console/internal/apiproxy"
	"datasync-console/internal/config"
	"datasync-console/internal/datasync"
	"datasync-console/internal/db"
	"datasync-console/internal/db/repository"
	"datasync-console/internal/domain"
	"datasync-console/internal/middleware"
	"datasync-console/internal/service/chat"
	"datasync-console/internal/service/inventory"
	"datasync-console/internal/service/query"
	"datasync-console/internal/service/studio"
	"datasync-console/internal/service/syncsched"
	"datasync-console/internal/ui"
)

// Backend is everything the console needs from DataSync.
type Backend interface {
	domain.MetadataBackend
	domain.GlobalSchemaBackend
	domain.RelationBackend
	domain.AssistantBackend
	domain.QueryBackend
}

// Deps holds what main must provide. Backend is optional; when nil a
// datasync.Client for Cfg.BackendURL is created.
type Deps struct {
	Cfg     *config.Config
	Store   *db.Store
	Backend Backend
	Logger  *slog.Logger
}

// Services groups the console services.
type Services struct {
	Inventory *inventory.Service
	Studio    *studio.Service
	Query     *query.Service
	Chat      *chat.Service
}

// App is the wired console.
type App struct {
	Services  Services
	Sync      *syncsched.Runner
	Scheduler *syncsched.Scheduler // nil when no sync schedule is configured
	UI        *ui.Handler

	cfg    *config.Config
	store  *db.Store
	logger *slog.Logger
}

// New wires repositories, services and the optional sync scheduler.
func New(deps Deps) (*App, error) {
	cfg := deps.Cfg
	logger := deps.Logger

	backend := deps.Backend
	if backend == nil {
		backend = datasync.New(cfg.BackendURL,
			datasync.WithGlobalQueryURL(cfg.GlobalQueryURL),
			datasync.WithHTTPClient(&http.Client{Timeout: cfg.BackendTimeout}),
			datasync.WithLogger(logger.With("component", "datasync")),
		)
	}

	chatRepo := repository.NewChatRepo(deps.Store.Write, deps.Store.Read)
	historyRepo := repository.NewQueryHistoryRepo(deps.Store.Write, deps.Store.Read)

	runner := syncsched.NewRunner(backend, logger.With("component", "sync"))
	services := Services{
		Inventory: inventory.NewService(backend, runner, logger.With("component", "inventory")),
		Studio:    studio.NewService(backend, backend, backend, logger.With("component", "studio")),
		Query:     query.NewService(backend, backend, historyRepo, logger.With("component", "query")),
		Chat:      chat.NewService(backend, chatRepo, logger.With("component", "chat")),
	}

	var scheduler *syncsched.Scheduler
	if cfg.SyncSchedule != "" {
		s, err := syncsched.NewScheduler(runner, cfg.SyncSchedule, cfg.BackendTimeout, logger.With("component", "sync-scheduler"))
		if err != nil {
			return nil, err
		}
		scheduler = s
	}

	return &App{
		Services:  services,
		Sync:      runner,
		Scheduler: scheduler,
		UI: ui.NewHandler(services.Inventory, services.Studio, services.Query, services.Chat,
			cfg.IsProduction(), logger.With("component", "ui")),
		cfg:    cfg,
		store:  deps.Store,
		logger: logger,
	}, nil
}

// Router builds the HTTP handler. Background work it starts (the rate
// limiter sweep) stops when ctx is done.
func (a *App) Router(ctx context.Context) (http.Handler, error) {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(a.logger.With("component", "http")))
	r.Use(chimw.Recoverer)
	r.Use(middleware.NewRateLimiter(ctx, middleware.RateLimitConfig{
		RequestsPerSecond: a.cfg.RateLimitRPS,
		Burst:             a.cfg.RateLimitBurst,
	}).Handler)

	r.Get("/healthz", a.healthz)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ui", http.StatusFound)
	})
	r.Route("/ui", func(r chi.Router) {
		ui.MountRoutes(r, a.UI)
	})

	if a.cfg.ProxyEnabled {
		proxy, err := apiproxy.New(a.cfg.BackendURL, apiproxy.Options{
			AllowedOrigins: a.cfg.CORSAllowedOrigins,
			Logger:         a.logger.With("component", "api-proxy"),
		})
		if err != nil {
			return nil, fmt.Errorf("api proxy: %w", err)
		}
		r.Mount(apiproxy.Prefix, proxy)
	}
	return r, nil
}

// healthz reports console liveness; it checks the local store only.
func (a *App) healthz(w http.ResponseWriter, r *http.Request) {
	status, code := "ok", http.StatusOK
	if err := a.store.Read.PingContext(r.Context()); err != nil {
		a.logger.ErrorContext(r.Context(), "health check failed", "error", err)
		status, code = "unavailable", http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
}

// Start launches the sync scheduler, if configured.
func (a *App) Start(ctx context.Context) error {
	if a.Scheduler == nil {
		return nil
	}
	if err := a.Scheduler.Start(ctx); err != nil {
		return fmt.Errorf("start sync scheduler: %w", err)
	}
	return nil
}

// Stop halts the sync scheduler.
func (a *App) Stop() {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
}
