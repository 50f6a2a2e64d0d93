package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/Spok95/salon-bot/internal/api"
	"github.com/Spok95/salon-bot/internal/cache"
	"github.com/Spok95/salon-bot/internal/config"
	"github.com/Spok95/salon-bot/internal/domain/appointments"
	"github.com/Spok95/salon-bot/internal/domain/catalog"
	"github.com/Spok95/salon-bot/internal/domain/masters"
	"github.com/Spok95/salon-bot/internal/domain/reviews"
	"github.com/Spok95/salon-bot/internal/domain/schedule"
	"github.com/Spok95/salon-bot/internal/domain/users"
	"github.com/Spok95/salon-bot/internal/infra/db"
	httpx "github.com/Spok95/salon-bot/internal/infra/http"
	"github.com/Spok95/salon-bot/internal/infra/logger"
	"github.com/Spok95/salon-bot/internal/lock"
	"github.com/Spok95/salon-bot/internal/webhook"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/subosito/gotenv"
)

func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func main() {
	_ = gotenv.Load()

	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	if err := runMigrations(cfg.Postgres.DSN); err != nil {
		log.Error("migrations failed", "err", err)
		return
	}
	log.Info("migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("db connect failed", "err", err)
		return
	}
	defer pool.Close()
	log.Info("db connected")

	loc := time.UTC
	if cfg.App.Timezone != "" {
		if l, lerr := time.LoadLocation(cfg.App.Timezone); lerr == nil {
			loc = l
		} else {
			log.Warn("unknown timezone, using UTC", "tz", cfg.App.Timezone)
		}
	}

	usersRepo := users.NewRepo(pool)
	mastersRepo := masters.NewRepo(pool)
	catalogRepo := catalog.NewRepo(pool)
	reviewsRepo := reviews.NewRepo(pool)
	apptRepo := appointments.NewRepo(pool)

	var locker lock.Locker
	if cfg.Redis.Addr != "" {
		rl, lerr := lock.NewRedisLock(cfg.Redis.Addr)
		if lerr != nil {
			log.Error("redis lock init failed", "err", lerr)
			return
		}
		defer func() { _ = rl.Close() }()
		locker = rl
		log.Info("redis slot lock enabled", "addr", cfg.Redis.Addr)
	}

	lifecycle := appointments.NewService(log, apptRepo, mastersRepo, catalogRepo, locker)
	engine := schedule.NewEngine(log, mastersRepo, catalogRepo, apptRepo, cfg.Booking.SlotStepMin)

	cacheTTL := cache.DefaultTTL
	if cfg.Booking.CacheTTL != "" {
		if d, derr := time.ParseDuration(cfg.Booking.CacheTTL); derr == nil {
			cacheTTL = d
		}
	}
	respCache := cache.New[any]()

	var notifier webhook.Notifier
	if cfg.Telegram.Token != "" {
		botAPI, berr := tgbotapi.NewBotAPI(cfg.Telegram.Token)
		if berr != nil {
			// вебхук работает и без исходящих уведомлений
			log.Warn("bot api unavailable, notifications disabled", "err", berr)
		} else {
			notifier = botAPI
			log.Info("bot api ready", "username", botAPI.Self.UserName)
		}
	}

	wh := webhook.NewHandler(log, lifecycle, notifier,
		cfg.Telegram.WebAppURL, cfg.Telegram.WebhookSecret, cfg.Telegram.AdminChatID)

	apiHandlers := api.New(log, usersRepo, lifecycle, engine,
		mastersRepo, catalogRepo, reviewsRepo,
		respCache, cacheTTL, loc, cfg.Telegram.AdminChatID)

	srv := httpx.New(cfg.HTTP.Addr, log, apiHandlers, wh, cfg.Metrics.Enabled)
	go func() {
		if serr := srv.Start(); serr != nil && serr.Error() != "http: Server closed" {
			log.Error("http server error", "err", serr)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
