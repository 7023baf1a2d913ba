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

	httpapi "github.com/spendtrace/spendtrace/internal/tracer/http"
	"github.com/spendtrace/spendtrace/internal/tracer/service"
	"github.com/spendtrace/spendtrace/internal/tracer/store"
	"github.com/spendtrace/spendtrace/internal/tracer/store/drivers/sqlite"
	"github.com/spendtrace/spendtrace/pkg/jwtx"
	"github.com/spendtrace/spendtrace/pkg/langdetect"
	"github.com/spendtrace/spendtrace/pkg/slogx"
)

// BuildVersion should be set at build time via ldflags.
const BuildVersion = "v0.1.0"

// Application encapsulates the purchase tracer with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	tokens *jwtx.Codec

	identityService *service.IdentityService
	followService   *service.FollowService
	ledgerService   *service.LedgerService
	feedService     *service.FeedService
	reportService   *service.ReportService
	importService   *service.ImportService
	mailer          service.Mailer

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "spendtrace",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.tokens = jwtx.NewCodec([]byte(cfg.SecretKey), cfg.Issuer)
	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("spendtrace starting", "port", app.cfg.Port, "version", BuildVersion)

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
	app.logger.Info("shutting down spendtrace...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("spendtrace stopped")
	return nil
}

// ImportService exposes the CSV importer for the import command.
func (app *Application) ImportService() *service.ImportService {
	return app.importService
}

// initDatabase opens the database and applies migrations.
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
	app.identityService = &service.IdentityService{
		Store:    app.db,
		Tokens:   app.tokens,
		ResetTTL: app.cfg.ResetTokenTTL,
	}
	app.followService = &service.FollowService{Store: app.db}
	app.ledgerService = &service.LedgerService{
		Store:          app.db,
		PerPage:        app.cfg.PurchasesPerPage,
		DetectLanguage: langdetect.Detect,
	}
	app.feedService = &service.FeedService{
		Store:   app.db,
		PerPage: app.cfg.PurchasesPerPage,
	}
	app.reportService = &service.ReportService{Store: app.db}
	app.importService = &service.ImportService{
		Store:          app.db,
		DetectLanguage: langdetect.Detect,
	}
	app.mailer = service.LogMailer{}
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.tokens,
		app.cfg.SessionTokenTTL,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.IdentityService = app.identityService
	router.FollowService = app.followService
	router.LedgerService = app.ledgerService
	router.FeedService = app.feedService
	router.ReportService = app.reportService
	router.Mailer = app.mailer
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
