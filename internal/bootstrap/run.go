package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/caseworks/user-portal/config"
)

// RunConfig contains dependencies for the service runtime.
type RunConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// Run serves HTTP until the context is cancelled or SIGINT/SIGTERM arrives,
// then shuts down gracefully. It blocks until both the listener and the
// shutdown have finished.
func Run(ctx context.Context, cfg *RunConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := NewHTTPServer(&HTTPServerConfig{
		Config:   cfg.Config,
		Services: cfg.Services,
		Logger:   logger,
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		// Fresh context: the signal context is already done.
		return ShutdownHTTPServer(context.Background(), server, logger)
	})

	return g.Wait()
}
