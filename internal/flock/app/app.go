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

	"github.com/go-redis/redis/v8"

	httpapi "github.com/aussiebroadwan/flock/internal/flock/http"
	"github.com/aussiebroadwan/flock/internal/flock/service"
	"github.com/aussiebroadwan/flock/internal/flock/store/drivers/sqlite"
	"github.com/aussiebroadwan/flock/pkg/cryptox"
	"github.com/aussiebroadwan/flock/pkg/obs"
	"github.com/aussiebroadwan/flock/pkg/ratelimit"
	"github.com/aussiebroadwan/flock/pkg/slogx"
)

// BuildVersion is overridden at build time with -ldflags "-X".
var BuildVersion = "v0.1.0"

// Application is the flock server with all its dependencies.
type Application struct {
	cfg     Config
	logger  *slog.Logger
	metrics *obs.Metrics

	db    *sqlite.Store
	redis *redis.Client // nil with the memory rate limit store

	housekeeping *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// NewLogger builds the process logger and makes it the default.
func NewLogger(cfg LogConfig) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "flock",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
}

// OpenStore loads the pepper, opens the database and migrates it to the
// latest version.
func OpenStore(cfg StoreConfig, logger *slog.Logger) (*sqlite.Store, error) {
	if err := cryptox.LoadPepper(cfg.PepperFile); err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}

	db, err := sqlite.NewStore(cfg.DatabaseFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}

	version, dirty, err := db.MigrationVersion()
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to read migration version: %w", err)
	}
	logger.Info("database ready", "file", cfg.DatabaseFile, "schema_version", version, "dirty", dirty)
	return db, nil
}

// New creates an Application with every dependency initialized. Nothing
// listens until Run.
func New(cfg Config, logger *slog.Logger) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg:     cfg,
		logger:  logger,
		metrics: obs.New(),
	}

	db, err := OpenStore(cfg.StoreConfig, logger)
	if err != nil {
		return nil, err
	}
	app.db = db

	if err := app.initRedis(); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := app.initHTTP(); err != nil {
		app.closeStores()
		return nil, err
	}

	return app, nil
}

// Handler is the full HTTP handler, middleware included.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts serving and blocks until ctx is cancelled, a shutdown signal
// arrives or the server fails.
func (app *Application) Run(ctx context.Context) error {
	if err := app.housekeeping.Start(); err != nil {
		return err
	}

	app.logger.Info("flock starting", "addr", app.cfg.Listen, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErrors:
		app.housekeeping.Stop()
		app.closeStores()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		app.logger.Info("shutdown signal received")
	}

	if err := app.Shutdown(); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests, stops housekeeping and closes the
// database and redis.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down flock...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeeping.Stop()

	if err := app.closeStores(); err != nil {
		return err
	}

	app.logger.Info("flock stopped")
	return nil
}

func (app *Application) closeStores() error {
	var errs []error
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis", "error", err)
			errs = append(errs, err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (app *Application) initRedis() error {
	if app.cfg.RateLimit.Store != "redis" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     app.cfg.RateLimit.RedisAddr,
		Password: app.cfg.RateLimit.RedisPassword,
		DB:       app.cfg.RateLimit.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to reach redis at %s: %w", app.cfg.RateLimit.RedisAddr, err)
	}

	app.redis = client
	app.logger.Info("rate limits stored in redis", "addr", app.cfg.RateLimit.RedisAddr)
	return nil
}

// limiter returns a limiter for one bucket in the configured store.
func (app *Application) limiter(bucket string, cfg ratelimit.Config) ratelimit.Limiter {
	if app.redis != nil {
		return ratelimit.NewRedis(app.redis, "flock:ratelimit:"+bucket+":", cfg)
	}
	return ratelimit.NewMemory(cfg)
}

// initHTTP wires the services into the router and builds the server.
func (app *Application) initHTTP() error {
	deps := service.Deps{Store: app.db, Metrics: app.metrics}
	mailer := service.LogMailer{Logger: app.logger}

	mfa := &service.MFAService{Deps: deps, Issuer: "Flock"}
	auth := &service.AuthService{
		Deps:            deps,
		MFA:             mfa,
		Mailer:          mailer,
		LoginLimiter:    app.limiter("login", app.cfg.RateLimit.Login()),
		RegisterLimiter: app.limiter("register", ratelimit.RegisterLimit),
		AppURL:          app.cfg.AppURL,
		SessionTTL:      app.cfg.SessionTTL,
		DefaultLimits:   app.cfg.Limits.PlanLimits(),
		TrialLength:     app.cfg.TrialLength,
	}

	app.housekeeping = &service.HousekeepingService{
		Deps:     deps,
		Logger:   app.logger,
		Schedule: app.cfg.HousekeepingSchedule,
	}

	router, err := httpapi.NewRouter(httpapi.Config{
		Version:       BuildVersion,
		SecureCookies: app.cfg.Env == "prod",
		SessionTTL:    app.cfg.SessionTTL,
		TrustProxy:    app.cfg.TrustProxy,
		CORSOrigins:   app.cfg.CORSOrigins,
	}, app.db, app.metrics, app.logger)
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}

	router.StrictLimiter = app.limiter("strict", ratelimit.StrictLimit)
	router.ModerateLimiter = app.limiter("moderate", ratelimit.ModerateLimit)
	if app.redis != nil {
		router.AddReadyCheck("redis", func(ctx context.Context) error {
			return app.redis.Ping(ctx).Err()
		})
	}

	router.AuthService = auth
	router.MFAService = mfa
	router.UserService = &service.UserService{Deps: deps}
	router.InviteService = &service.InviteService{Deps: deps, Mailer: mailer, AppURL: app.cfg.AppURL}
	router.OrgService = &service.OrgService{Deps: deps}
	router.AuditService = &service.AuditService{Deps: deps}
	router.PeopleService = &service.PeopleService{Deps: deps}
	router.FieldService = &service.FieldService{Deps: deps}
	router.TagService = &service.TagService{Deps: deps}
	router.GroupService = &service.GroupService{Deps: deps}
	router.PlanService = &service.PlanService{Deps: deps}
	router.TemplateService = &service.TemplateService{Deps: deps}
	router.SongService = &service.SongService{Deps: deps}
	router.FormService = &service.FormService{Deps: deps}
	router.WorkflowService = &service.WorkflowService{Deps: deps}
	router.ApplyRoutes()

	app.router = router
	app.server = &http.Server{
		Addr:              app.cfg.Listen,
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return nil
}
