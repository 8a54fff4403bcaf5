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

	httpapi "github.com/shanco/accessissues/internal/accessissues/http"
	"github.com/shanco/accessissues/internal/accessissues/mail"
	"github.com/shanco/accessissues/internal/accessissues/service"
	"github.com/shanco/accessissues/internal/accessissues/session"
	"github.com/shanco/accessissues/internal/accessissues/store"
	"github.com/shanco/accessissues/internal/accessissues/store/drivers/postgres"
	"github.com/shanco/accessissues/internal/accessissues/store/drivers/sqlite"
	"github.com/shanco/accessissues/pkg/cryptox"
	"github.com/shanco/accessissues/pkg/httpx"
	"github.com/shanco/accessissues/pkg/jwtx"
	"github.com/shanco/accessissues/pkg/mailer"
	"github.com/shanco/accessissues/pkg/slogx"
	"github.com/shanco/accessissues/pkg/validatex"
)

// BuildVersion is overridden at build time via ldflags.
var BuildVersion = "v0.1.0"

// Application owns the store, services and HTTP server of one process.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db        store.Store
	sessions  *session.Manager
	mailer    mailer.Sender
	validator *validatex.Validator

	authService         *service.AuthService
	organizationService *service.OrganizationService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New validates cfg and builds the application. Nothing listens until Run.
func New(cfg Config) (*Application, error) {
	return NewWithLogger(cfg, slogx.New(slogx.Config{
		Service: "accessissues",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	}))
}

func NewWithLogger(cfg Config, logger *slog.Logger) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{cfg: cfg, logger: logger}

	httpx.LoadRateLimits(nil)

	sender, err := mailer.New(cfg.Mail, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize mailer: %w", err)
	}
	app.mailer = sender

	if err := app.initDatabase(context.Background()); err != nil {
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	if err := app.initHTTP(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	return app, nil
}

// Handler is the fully wired router.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the server and housekeeping and blocks until a shutdown signal
// or a server failure.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("accessissues starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"database", app.cfg.DatabaseDriver,
		"mail_provider", app.cfg.Mail.Provider,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		app.housekeepingService.Stop()
		_ = app.db.Close()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
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

// Shutdown drains the server, stops housekeeping and closes the store.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down accessissues...")

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

	app.logger.Info("accessissues stopped")
	return nil
}

func (app *Application) initDatabase(ctx context.Context) error {
	var db store.Store

	switch app.cfg.DatabaseDriver {
	case DriverPostgres:
		pg, err := postgres.NewStore(ctx, app.cfg.PostgresURL)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		db = pg
	default:
		dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
		lite, err := sqlite.NewStore(dsn)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		db = lite
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

func (app *Application) initServices() error {
	tokens, err := jwtx.NewLoginTokens(app.cfg.TokenSecret)
	if err != nil {
		return fmt.Errorf("failed to initialize login tokens: %w", err)
	}

	sessions, err := session.NewManager(app.cfg.SessionSecret, app.cfg.IsProduction())
	if err != nil {
		return fmt.Errorf("failed to initialize sessions: %w", err)
	}
	app.sessions = sessions

	templates, err := mail.New()
	if err != nil {
		return fmt.Errorf("failed to parse mail templates: %w", err)
	}

	validator, err := validatex.Default()
	if err != nil {
		return fmt.Errorf("failed to initialize validator: %w", err)
	}
	app.validator = validator

	app.authService = &service.AuthService{
		Store:     app.db,
		Tokens:    tokens,
		Hasher:    cryptox.NewBcrypt(cryptox.DefaultCost),
		OTP:       cryptox.RandomOTP{},
		Mailer:    app.mailer,
		Templates: templates,
		Validator: validator,
		From:      app.cfg.FromEmail,
		MaxAge:    app.cfg.LoginTokenMaxAge,
	}

	app.organizationService = &service.OrganizationService{
		Store:     app.db,
		Validator: validator,
		Invites: &service.InviteService{
			Mailer:    app.mailer,
			Templates: templates,
			Validator: validator,
			From:      app.cfg.FromEmail,
			SiteURL:   app.cfg.SiteURL,
		},
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.LoginTokenMaxAge,
	)
	return nil
}

func (app *Application) initHTTP() error {
	router := httpapi.NewRouter(BuildVersion, app.db, app.sessions, app.logger)
	router.Validator = app.validator
	router.AuthService = app.authService
	router.OrganizationService = app.organizationService
	if err := router.ApplyRoutes(); err != nil {
		return err
	}

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return nil
}
