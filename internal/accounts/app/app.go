package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/accounts/internal/accounts/http"
	"github.com/aussiebroadwan/accounts/internal/accounts/service"
	"github.com/aussiebroadwan/accounts/internal/accounts/store"
	"github.com/aussiebroadwan/accounts/pkg/httpx"
	"github.com/aussiebroadwan/accounts/pkg/jwtx"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags.
var BuildVersion = "v0.1.0"

// Application wires the accounts service together.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	signer *jwtx.HMACSigner

	authService     *service.AuthService
	userService     *service.UserService
	feedbackService *service.FeedbackService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "accounts",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if cfg.JWTSecret == DefaultJWTSecret {
		app.logger.Warn("JWT_SECRET is the built-in placeholder; set it before exposing the service")
	}

	signer, err := jwtx.NewHMACSigner([]byte(cfg.JWTSecret), cfg.JWTAlgo)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token signer: %w", err)
	}
	app.signer = signer

	ctx := context.Background()
	db, err := openStore(ctx, cfg, app.logger)
	if err != nil {
		return nil, err
	}
	app.db = db

	app.initServices()
	app.seedAdmin(ctx)
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("accounts service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down accounts service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing store", "error", err)
		return err
	}

	app.logger.Info("accounts service stopped")
	return nil
}

func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Store:        app.db,
		Tokens:       app.signer,
		AccessTTL:    app.cfg.AccessTTL(),
		RefreshTTL:   app.cfg.RefreshTTL(),
		IssueRefresh: app.cfg.IssueRefreshTokens,
	}
	app.userService = &service.UserService{
		Store:   app.db,
		Avatars: service.AvatarCatalog{Dir: app.cfg.AvatarDir},
	}
	app.feedbackService = &service.FeedbackService{Store: app.db}
}

// seedAdmin creates the admin account on first start. Failure is logged, not
// fatal: a read-only users backend cannot take writes.
func (app *Application) seedAdmin(ctx context.Context) {
	ctx = slogx.WithContext(ctx, app.logger)
	_, err := app.userService.SeedAdmin(ctx, app.cfg.AdminPassword)
	switch {
	case errors.Is(err, store.ErrReadOnly):
		app.logger.Warn("admin account not seeded: users backend is read-only")
	case err != nil:
		app.logger.Warn("admin account not seeded", "error", err)
	}
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(app.db, app.logger, httpapi.Options{
		Version:   BuildVersion,
		CORS:      httpx.CORSConfig{AllowedOrigins: httpx.ParseOrigins(app.cfg.CORSOrigins)},
		AvatarDir: app.cfg.AvatarDir,
		// Re-read so RATELIMIT_* values from .env apply too.
		Limits: httpapi.Limits{
			Strict:   httpx.ParseRateLimitFromEnv("STRICT", httpx.StrictLimit),
			Moderate: httpx.ParseRateLimitFromEnv("MODERATE", httpx.ModerateLimit),
			Lenient:  httpx.ParseRateLimitFromEnv("LENIENT", httpx.LenientLimit),
			Public:   httpx.ParseRateLimitFromEnv("PUBLIC", httpx.PublicLimit),
		},
	})

	router.AuthService = app.authService
	router.UserService = app.userService
	router.FeedbackService = app.feedbackService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
