// Package app assembles the bot from its parts: configuration, logging,
// the optional reports database, the route catalog provider, the session
// registry, and the Telegram wiring.
package app

import (
	"context"
	"fmt"
	"time"

	"log/slog"

	"github.com/jmoiron/sqlx"
	tele "gopkg.in/telebot.v4"

	"github.com/hayqway/waybot/internal/bot"
	"github.com/hayqway/waybot/internal/catalog"
	"github.com/hayqway/waybot/internal/config"
	"github.com/hayqway/waybot/internal/database"
	"github.com/hayqway/waybot/internal/logger"
	"github.com/hayqway/waybot/internal/report"
	"github.com/hayqway/waybot/internal/session"
	"github.com/hayqway/waybot/internal/telegram"
	"github.com/hayqway/waybot/internal/telegram/middleware"
	"github.com/hayqway/waybot/internal/telegram/router"
)

// MigrationsDir is where the reports schema migrations live relative to the
// working directory.
const MigrationsDir = "migrations"

// App holds everything a running bot needs.
type App struct {
	cfg      *config.Config
	db       *sqlx.DB
	catalogs *catalog.Provider
	sessions *session.Registry
	reports  *report.Service
	bot      *bot.Bot
	registry *telegram.Registry
}

// New bootstraps the application: logger first, then storage, then the
// domain services, then the Telegram registry.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: nil config provided")
	}

	if err := logger.Init(logger.Settings{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		KeysOrder:   cfg.Logging.KeysOrder,
		DebugSample: cfg.Logging.DebugSample,
		Dir:         cfg.Logging.Dir,
		BotFile:     cfg.Logging.BotFile,
		Profile:     cfg.Logging.Profile,
	}); err != nil {
		return nil, fmt.Errorf("app: logger init failed: %w", err)
	}

	a := &App{cfg: cfg}

	// Reports persist to Postgres when a database is configured and fall
	// back to process memory otherwise.
	if cfg.Database.Enabled() {
		db, err := database.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("app: database initialization failed: %w", err)
		}
		if err := database.RunMigrations(cfg.Database, MigrationsDir); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("app: migrations failed: %w", err)
		}
		a.db = db
		a.reports = report.NewService(report.NewPostgresStore(db))
	} else {
		logger.DB.Warn("database disabled, reports are kept in memory",
			slog.String("event", "db.disabled"),
		)
		a.reports = report.NewService(report.NewMemoryStore())
	}

	a.catalogs = catalog.NewProvider(cfg.Catalog.Path)
	// A failed first load is not fatal: the bot answers with a service
	// notice until a reload succeeds.
	if err := a.catalogs.Reload(ctx); err != nil {
		logger.CAT.Warn("initial catalog load failed",
			slog.String("event", "catalog.load"),
			slog.String("error", err.Error()),
		)
	}

	a.sessions = session.NewRegistry(cfg.Search.SessionTTL)

	engine := bot.NewEngine(a.catalogs, a.sessions, bot.Options{
		Locale:               cfg.Catalog.DefaultLocale,
		RadiusMeters:         cfg.Search.RadiusMeters,
		PageSize:             cfg.Search.PageSize,
		SpeedMetersPerMinute: cfg.Search.SpeedMetersPerMinute,
	})
	a.bot = bot.New(engine, a.reports, a.catalogs)

	a.registry = telegram.NewRegistry()
	a.bot.Register(a.registry)

	return a, nil
}

// Close releases infrastructure owned by the app.
func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// TelegramRunOptions builds the full route table and middleware chain for
// telegram.Run.
func (a *App) TelegramRunOptions() (telegram.RunOptions, error) {
	cfg := a.cfg

	routes := router.CommandRoutes(a.registry, router.CommandRouteOptions{
		AdminID: cfg.Telegram.AdminID,
	})
	routes = append(routes, router.MessageRoutes(a.bot, a.registry, router.MessageOptions{
		UnknownLocation: a.bot.OnBareLocation,
	})...)
	routes = append(routes, router.CallbackRoute(a.registry))

	var middlewares []telegram.Middleware
	if cfg.RateLimit.IntervalMS > 0 {
		exclude := make(map[string]struct{}, len(cfg.RateLimit.ExcludeUpdates))
		for _, kind := range cfg.RateLimit.ExcludeUpdates {
			exclude[kind] = struct{}{}
		}
		limiter := middleware.RateLimit(middleware.RateLimitOptions{
			Interval: time.Duration(cfg.RateLimit.IntervalMS) * time.Millisecond,
			Exclude:  exclude,
		})
		middlewares = append(middlewares, telegram.Middleware{
			Name: "rate_limit",
			Use:  func(next tele.HandlerFunc) tele.HandlerFunc { return limiter(next) },
		})
	}

	return telegram.RunOptions{
		Config:      cfg,
		Registry:    a.registry,
		Middlewares: middlewares,
		Routes:      routes,
		OnStart: func(ctx context.Context, rt telegram.Runtime) error {
			if cfg.Catalog.ReloadEvery > 0 {
				go a.catalogs.Run(ctx, cfg.Catalog.ReloadEvery)
			}
			return nil
		},
		OnStop: func(ctx context.Context, rt telegram.Runtime) error {
			return a.Close()
		},
	}, nil
}
