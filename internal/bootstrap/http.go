package bootstrap

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/caseworks/user-portal/config"
	httpx "github.com/caseworks/user-portal/internal/http"
)

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// NewHTTPServer builds the HTTP server with the router and middleware wired.
// The caller starts it and owns graceful shutdown.
func NewHTTPServer(cfg *HTTPServerConfig) *http.Server {
	if cfg == nil {
		return nil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	services := httpx.RouterServices{
		Auth:          cfg.Services.Auth,
		Authz:         cfg.Services.Authz,
		Profiles:      cfg.Services.Profiles,
		Admin:         cfg.Services.Admin,
		CookieDomain:  appCfg.HTTP.CookieDomain,
		CountryPrefix: appCfg.UserService.CountryPrefix,
		IsDev:         appCfg.IsDev,
		Logger:        logger,
	}

	handler := buildHTTPHandler(logger, services)

	return newServer(handler, appCfg.HTTP.Addr)
}

// buildHTTPHandler applies the outer middleware. Order: Recover -> Logging -> Router.
func buildHTTPHandler(logger *slog.Logger, services httpx.RouterServices) http.Handler {
	h := httpx.NewRouter(services)
	h = httpx.Logging(logger)(h)
	h = httpx.Recover(logger)(h)
	return h
}

func newServer(handler http.Handler, addr string) *http.Server {
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}

	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	if server == nil {
		return nil
	}

	if logger != nil {
		logger.Info("shutting down HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if logger != nil {
		logger.Info("HTTP server stopped")
	}

	return nil
}
