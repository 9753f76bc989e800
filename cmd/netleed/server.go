package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	v1 "github.com/vmunix/netlee/internal/api/v1"
	"github.com/vmunix/netlee/internal/catalog"
	"github.com/vmunix/netlee/internal/config"
	"github.com/vmunix/netlee/internal/events"
	"github.com/vmunix/netlee/internal/library"
	"github.com/vmunix/netlee/internal/migrations"
	"github.com/vmunix/netlee/internal/resolve"
	"github.com/vmunix/netlee/internal/server"
	"github.com/vmunix/netlee/internal/tmdb"
)

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 200 { // Only capture first WriteHeader call
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, status: 200}
		next.ServeHTTP(wrapped, r)
		log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// openDB opens the SQLite database and applies migrations.
func openDB(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := migrations.Apply(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// buildHandler wires stores, sources and the API into one handler.
func buildHandler(cfg *config.Config, db *sql.DB, logger *slog.Logger) (http.Handler, *events.EventLog, func(), error) {
	libraryStore := library.NewStore(db)
	eventLog := events.NewEventLog(db)
	bus := events.NewBus(eventLog, logger.With("component", "bus"))

	local := catalog.NewLocalSource(libraryStore)

	// Catalog is optional; nil if no TMDB key.
	var (
		catalogSrc resolve.CatalogSource
		tmdbSource *catalog.TMDBSource
	)
	if cfg.TMDB.APIKey != "" {
		client := tmdb.NewClient(cfg.TMDB.APIKey,
			tmdb.WithBaseURL(cfg.TMDB.BaseURL),
			tmdb.WithCacheTTL(cfg.TMDB.CacheTTL.Duration),
		)
		tmdbSource = catalog.NewTMDBSource(client, libraryStore, logger.With("component", "catalog"))
		catalogSrc = tmdbSource
	}

	resolver := resolve.New(local, catalogSrc,
		resolve.WithImageBaseURL(cfg.TMDB.ImageBaseURL),
		resolve.WithLogger(logger.With("component", "resolver")),
	)

	deps := v1.ServerDeps{
		Library:  libraryStore,
		Local:    local,
		Resolver: resolver,
		Bus:      bus,
		EventLog: eventLog,
	}
	// Avoid a typed-nil interface when the catalog is disabled.
	if tmdbSource != nil {
		deps.Catalog = tmdbSource
	}

	api, err := v1.New(deps, v1.Config{
		APIKey:       cfg.Server.APIKey,
		Version:      version,
		StrictOrigin: cfg.Player.StrictOrigin,
		TrailerHost:  cfg.Player.TrailerHost,
		Logger:       logger,
	})
	if err != nil {
		_ = bus.Close()
		return nil, nil, nil, err
	}

	mux := http.NewServeMux()
	api.RegisterRoutes(mux)
	return logRequests(mux, logger), eventLog, func() { _ = bus.Close() }, nil
}

func runServer(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))

	db, err := openDB(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	handler, eventLog, closeBus, err := buildHandler(cfg, db, logger)
	if err != nil {
		return err
	}
	defer closeBus()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting",
		"addr", addr,
		"database", cfg.Database.Path,
		"catalog", cfg.TMDB.APIKey != "",
		"auth", cfg.Server.APIKey != "",
		"log_level", cfg.Server.LogLevel,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := server.NewRunner(server.Config{
		Addr:          addr,
		Handler:       handler,
		Retention:     cfg.Events.Retention.Duration,
		PruneInterval: cfg.Events.PruneInterval.Duration,
	}, eventLog, logger)

	if err := runner.Run(ctx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
