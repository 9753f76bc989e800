// Package server runs the daemon's long-lived components.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// Pruner deletes persisted events older than a retention window.
type Pruner interface {
	Prune(olderThan time.Duration) (int64, error)
}

// Config for the runner.
type Config struct {
	Addr            string // ignored when Listener is set
	Listener        net.Listener
	Handler         http.Handler
	ShutdownTimeout time.Duration

	// Event retention. Pruning is disabled when either is zero
	// or no Pruner is given.
	Retention     time.Duration
	PruneInterval time.Duration
}

// Runner manages the HTTP server and background maintenance.
type Runner struct {
	config Config
	pruner Pruner
	logger *slog.Logger
}

// NewRunner creates a new runner. pruner may be nil.
func NewRunner(cfg Config, pruner Pruner, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}
	return &Runner{
		config: cfg,
		pruner: pruner,
		logger: logger,
	}
}

// Run starts all components.
// It blocks until the context is canceled or a component fails.
func (r *Runner) Run(ctx context.Context) error {
	ln := r.config.Listener
	if ln == nil {
		var err error
		ln, err = net.Listen("tcp", r.config.Addr)
		if err != nil {
			return fmt.Errorf("listen %s: %w", r.config.Addr, err)
		}
	}

	srv := &http.Server{Handler: r.config.Handler, ReadHeaderTimeout: 10 * time.Second}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		r.logger.Info("http listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		r.logger.Info("http stopped")
		return nil
	})

	if r.pruner != nil && r.config.Retention > 0 && r.config.PruneInterval > 0 {
		g.Go(func() error {
			r.runPruner(ctx)
			return nil
		})
	}

	return g.Wait()
}

func (r *Runner) runPruner(ctx context.Context) {
	log := r.logger.With("component", "pruner")
	ticker := time.NewTicker(r.config.PruneInterval)
	defer ticker.Stop()

	log.Info("pruner started", "interval", r.config.PruneInterval, "retention", r.config.Retention)
	r.prune(log)
	for {
		select {
		case <-ctx.Done():
			log.Info("pruner stopped")
			return
		case <-ticker.C:
			r.prune(log)
		}
	}
}

// prune failures are logged and retried on the next tick.
func (r *Runner) prune(log *slog.Logger) {
	n, err := r.pruner.Prune(r.config.Retention)
	if err != nil {
		log.Error("prune failed", "error", err)
		return
	}
	if n > 0 {
		log.Info("pruned events", "count", n)
	}
}
