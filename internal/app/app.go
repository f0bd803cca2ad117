package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrSnakeDoc/navstash/internal/auth"
	"github.com/MrSnakeDoc/navstash/internal/config"
	"github.com/MrSnakeDoc/navstash/internal/httpserver"
	"github.com/MrSnakeDoc/navstash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/navstash/internal/httpserver/mw"
	"github.com/MrSnakeDoc/navstash/internal/logger"
	"github.com/MrSnakeDoc/navstash/internal/version"
)

type App struct {
	cfg     *config.Config
	logger  logger.Logger
	server  *httpserver.Server
	backend *Backend
}

// New opens the storage backend and builds the HTTP server.
func New(cfg *config.Config, loggerClient logger.Logger) (*App, error) {
	backend, err := OpenBackend(cfg, loggerClient)
	if err != nil {
		return nil, err
	}

	gate := auth.NewGate(auth.Options{
		Password:    cfg.AuthPassword,
		TokenSecret: cfg.TokenSecret,
		TokenTTL:    cfg.TokenTTL,
	}, backend.Store)

	if !gate.HasPassword() {
		loggerClient.Warn("NAV_AUTH_PASSWORD is not set, every write is accepted")
	}
	loggerClient.Info("auth gate ready",
		logger.String("mode", gate.Mode()),
		logger.Bool("tokens", gate.TokensEnabled()))

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:       loggerClient,
		StartTime:    time.Now(),
		Version:      version.Version,
		Commit:       version.Commit,
		BuildDate:    version.BuildDate,
		GoVersion:    version.GoVersion,
		TimeNow:      time.Now,
		AllowedHosts: cfg.AllowedHosts,
		AllowedCIDRS: cfg.AllowedCIDRS,
		TrustProxy:   cfg.TrustProxy,
		CORSOrigin:   cfg.CORSOrigin,
		RateLimit: mw.RateLimitConfig{
			Burst:             cfg.RateLimitBurst,
			RefillPerIPPerMin: cfg.RateLimitPerMin,
			TrustProxy:        cfg.TrustProxy,
		},
		KVBackend:  backend.Kind,
		Store:      backend.Store,
		Gate:       gate,
		HTTPClient: backend.HTTPClient,
		FaviconTTL: cfg.FaviconTTL,
	}

	return &App{
		cfg:     cfg,
		logger:  loggerClient,
		server:  httpserver.New(cfg, loggerClient, d),
		backend: backend,
	}, nil
}

// Run serves until SIGINT/SIGTERM, then shuts down gracefully.
func (a *App) Run() error {
	a.logger.Infof("🚀 Starting navstash v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("navstash %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		a.backend.Close()
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.backend.Close()
	a.logger.Info("✅ navstash stopped cleanly")
	return nil
}
