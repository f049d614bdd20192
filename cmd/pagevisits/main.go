package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/pagevisits/core/config"
	"github.com/dmitrymomot/pagevisits/core/cookie"
	"github.com/dmitrymomot/pagevisits/core/health"
	"github.com/dmitrymomot/pagevisits/core/logger"
	"github.com/dmitrymomot/pagevisits/core/router"
	"github.com/dmitrymomot/pagevisits/core/server"
	"github.com/dmitrymomot/pagevisits/core/session"
	"github.com/dmitrymomot/pagevisits/core/sessiontransport"
	"github.com/dmitrymomot/pagevisits/integration/database/redis"
	"github.com/dmitrymomot/pagevisits/internal/tracker"
	"github.com/dmitrymomot/pagevisits/middleware"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg Config
	config.MustLoad(&cfg) // panic on error

	logOpts := []logger.Option{
		logger.WithDevelopment(cfg.AppName),
		logger.WithContextExtractors(middleware.RequestIDExtractor),
	}
	if cfg.isProduction() {
		logOpts[0] = logger.WithProduction(cfg.AppName)
	}
	if cfg.LogLevel != "" {
		logOpts = append(logOpts, logger.WithLevel(logger.ParseLevel(cfg.LogLevel)))
	}
	log := logger.New(logOpts...)
	slog.SetDefault(log)

	// Session storage
	var (
		store  session.Store[tracker.SessionData]
		checks []health.Check
	)
	switch cfg.SessionStore {
	case storeMemory:
		store = session.NewMemoryStore[tracker.SessionData]()
	case storeRedis:
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			log.Error("Failed to connect to redis", logger.Component("redis"), logger.Error(err))
			os.Exit(1)
		}
		defer client.Close()

		store = redis.NewSessionStore[tracker.SessionData](client, redis.WithScanBatchSize(cfg.Redis.ScanBatchSize))
		checks = append(checks, health.Check{Name: "redis", Fn: redis.Healthcheck(client)})
	default:
		log.Error("Unknown session store", logger.Component("session"), "store", cfg.SessionStore)
		os.Exit(1)
	}

	// WithConfig skips zero values; an explicit SESSION_TOUCH_INTERVAL=0 extends expiry on every request.
	sesMgr := session.NewManager(store,
		session.WithConfig(cfg.Session),
		session.WithTouchInterval(cfg.Session.TouchInterval),
	)

	cookieMgr, err := cookie.NewFromConfig(cfg.Cookie)
	if err != nil {
		log.Error("Failed to create cookie manager", logger.Component("cookie"), logger.Error(err))
		os.Exit(1)
	}

	sesCookie := sessiontransport.NewCookieFromConfig(cfg.SessionTransport, sesMgr, cookieMgr)

	visits, err := tracker.NewHandler(cfg.Tracker, tracker.WithLogger(log))
	if err != nil {
		log.Error("Failed to create visit handler", logger.Component("tracker"), logger.Error(err))
		os.Exit(1)
	}

	r := router.New[*router.Context](
		router.WithErrorHandler[*router.Context](errorHandler(log)),
		router.WithLogger[*router.Context](log),
		router.WithMiddleware(
			middleware.RequestID[*router.Context](),
			middleware.ClientIP[*router.Context](),
			middleware.LoggingWithLogger[*router.Context](log),
			middleware.SessionWithConfig(middleware.SessionConfig[*router.Context, tracker.SessionData]{
				Skip: func(ctx *router.Context) bool {
					return strings.HasPrefix(ctx.Request().URL.Path, "/health/")
				},
				Transport: sesCookie,
				Logger:    log,
			}),
		),
	)

	r.Get("/health/live", health.Liveness[*router.Context])
	r.Get("/health/ready", health.Readiness[*router.Context](log, checks...))
	r.Method("/", tracker.VisitHandler[*router.Context](visits), http.MethodGet, http.MethodPost)

	s, err := server.NewFromConfig(cfg.Server, server.WithLogger(log))
	if err != nil {
		log.Error("Failed to create server", logger.Component("server"), logger.Error(err))
		os.Exit(1)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(s.Run(ctx, r))
	eg.Go(sesMgr.RunCleanup(ctx, cfg.Session.CleanupInterval, log.With(logger.Component("session"))))

	if err := eg.Wait(); err != nil {
		log.Error("Failed to run server", logger.Component("server"), logger.Error(err))
		os.Exit(1)
	}

	log.Info("Application stopped")
}
