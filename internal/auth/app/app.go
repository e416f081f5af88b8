package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/carefinder/carefinder/internal/auth/http"
	"github.com/carefinder/carefinder/internal/auth/service"
	"github.com/carefinder/carefinder/internal/auth/store"
	"github.com/carefinder/carefinder/internal/auth/store/drivers/sqlite"
	"github.com/carefinder/carefinder/pkg/jwtx"
	"github.com/carefinder/carefinder/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the auth service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	signer *jwtx.HS256

	tokenService        *service.TokenService
	authService         *service.AuthService
	userService         *service.UserService
	rolesService        *service.RolesService
	seedService         *service.SeedService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
// Role and bootstrap-user seeding runs to completion before New returns, so
// a successfully constructed Application is ready to serve logins.
func New(ctx context.Context, cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "auth-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	signer, err := jwtx.NewHS256([]byte(cfg.JWTSecret), cfg.Issuer)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize token signer: %w", err)
	}
	app.signer = signer

	app.initServices()

	if err := app.seedService.Run(slogx.WithContext(ctx, app.logger)); err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to seed roles and bootstrap user: %w", err)
	}

	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("auth service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
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

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations.
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.tokenService = &service.TokenService{
		Signer:    app.signer,
		Verifier:  app.signer,
		Issuer:    app.cfg.Issuer,
		AccessTTL: app.cfg.AccessTTL,
	}

	app.authService = &service.AuthService{
		Store:  app.db,
		Tokens: app.tokenService,
	}

	app.userService = &service.UserService{
		Store:           app.db,
		DefaultRole:     app.cfg.DefaultRole,
		ConfirmationTTL: app.cfg.ConfirmationTTL,
	}

	app.rolesService = &service.RolesService{Store: app.db}

	app.seedService = &service.SeedService{
		Store:             app.db,
		RoleNames:         app.cfg.Roles,
		AdminRole:         app.cfg.AdminRole,
		BootstrapEmail:    app.cfg.BootstrapEmail,
		BootstrapPassword: app.cfg.BootstrapPassword,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.cfg.AdminRole,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.AuthService = app.authService
	router.UserService = app.userService
	router.RolesService = app.rolesService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
