package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/bot"
	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/database"
	apperrors "github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/errors"
	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/health"
	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/i18n"
	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/idempotency"
	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/jobs"
	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/lifecycle"
	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/middleware"
	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/ratelimit"
	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/repository"
	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/state"
	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/user"
	"github.com/Muhammaddiyor2010/Xum-ayron-bot/pkg/config"
	"github.com/Muhammaddiyor2010/Xum-ayron-bot/pkg/graceful"
	"github.com/Muhammaddiyor2010/Xum-ayron-bot/pkg/logger"
	"github.com/Muhammaddiyor2010/Xum-ayron-bot/pkg/metrics"

	_ "github.com/lib/pq"
)

const defaultLanguage = "uz"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, v, err := config.Load()
	if err != nil {
		return apperrors.NewStartupError("load config failed", err)
	}

	log := logger.New(cfg.Logger, cfg.Sentry.Enabled)
	slog.SetDefault(log)

	log.Info("starting xum ayron bot",
		slog.String("env", cfg.AppEnv),
		slog.String("http_port", cfg.Server.Port),
		slog.String("log_level", cfg.Logger.Level),
	)

	if cfg.Sentry.Enabled {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.AppEnv,
		}); err != nil {
			return fmt.Errorf("init sentry: %w", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	config.Watch(v, log, func(lc config.LoggerConfig) {
		logger.SetLevel(lc.Level)
	})

	db, err := sql.Open("postgres", cfg.DB.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Error("error closing database", slog.Any("error", cerr))
		}
	}()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	migrator := database.NewMigrator(db, log)
	if err := migrator.ApplyDir(ctx, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	log.Info("database migrations applied")

	i18nManager, err := i18n.Load(defaultLanguage)
	if err != nil {
		return fmt.Errorf("load translations: %w", err)
	}
	translator := i18nManager.Default()

	userRepo := repository.NewUserRepository(db, log)
	userService := user.NewService(userRepo, log)

	fsm := state.NewStateMachine(state.NewMemoryStorage(), log)

	limiter := ratelimit.NewMemoryLimiter(log)
	rules := ratelimit.NewRules(cfg.RateLimit)
	rateLimitMw := middleware.NewRateLimitMiddleware(limiter, rules, log)

	idempotencyManager := idempotency.NewMemoryManager(log)
	idempotency.StartCleaner(ctx, idempotencyManager, 10*time.Minute)

	b, err := bot.New(*cfg, log, fsm, idempotencyManager, rateLimitMw, userService, translator)
	if err != nil {
		return apperrors.NewStartupError("initialize bot failed", err)
	}

	checker := health.NewChecker(log)
	checker.AddCheck("database", health.NewDBChecker(db))
	checker.AddCheck("telegram", health.NewTelegramChecker(b.Telebot()))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", checker.Handler())

	httpServer := &http.Server{
		Addr:    cfg.Server.Port,
		Handler: logger.Middleware(mux),
	}
	server := graceful.NewServer(log, httpServer, 10*time.Second)

	scheduler := jobs.NewScheduler(userService, limiter, cfg.Broadcast.ActiveWindowDays, log)
	if err := scheduler.RegisterTasks(); err != nil {
		return fmt.Errorf("register scheduled tasks: %w", err)
	}
	scheduler.Run()

	stateCollector := metrics.NewStateCollector(fsm)
	go stateCollector.Run(ctx)

	shutdown := lifecycle.NewShutdown(log)
	shutdown.Register("telegram bot", func(context.Context) error {
		b.Stop()
		return nil
	})
	shutdown.Register("scheduler", func(context.Context) error {
		scheduler.Shutdown()
		return nil
	})

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe(ctx)
	}()

	go b.Start()
	log.Info("bot started")

	serverDone := false
	select {
	case <-ctx.Done():
	case err := <-serverErr:
		serverDone = true
		if err != nil {
			log.Error("http server exited", slog.Any("error", err))
		}
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := shutdown.Execute(shutdownCtx); err != nil {
		log.Error("shutdown finished with errors", slog.Any("error", err))
	}

	// Drain the server goroutine so its shutdown completes before exit.
	if !serverDone {
		select {
		case <-serverErr:
		case <-shutdownCtx.Done():
		}
	}

	log.Info("xum ayron bot stopped")
	return nil
}
