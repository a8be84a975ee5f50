package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homework_status_bot/internal/app"
	"homework_status_bot/internal/domain/homework"
	"homework_status_bot/internal/domain/notification"
	"homework_status_bot/internal/infra/config"
	idb "homework_status_bot/internal/infra/database"
	"homework_status_bot/internal/infra/logger"
	"homework_status_bot/internal/infra/practicum"
	"homework_status_bot/internal/infra/scheduler"
	"homework_status_bot/internal/infra/telegram"

	"gopkg.in/telebot.v3"
)

func main() {
	mainLogger := log.New(os.Stdout, "MAIN: ", log.LstdFlags|log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		mainLogger.Fatalf("FATAL: Could not load application configuration: %v", err)
	}

	logger.Init(cfg)
	config.CheckSecrets(logger.Log, cfg.Secrets())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	entry := logger.Component("main")

	pacer, err := scheduler.NewPacer(cfg.PollSchedule)
	if err != nil {
		entry.WithError(err).Fatal("Could not parse poll schedule")
	}

	bot, err := telegram.NewSendOnlyBot(cfg.TelegramToken, telebot.DefaultApiURL, cfg.RequestTimeout)
	if err != nil {
		entry.WithError(err).Fatal("Could not create Telegram bot")
	}

	var journal notification.Journal = notification.NopJournal{}
	if cfg.DatabaseURL != "" {
		dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		db, err := idb.NewPostgresConnection(dbCtx, cfg.DatabaseURL)
		cancel()
		if err != nil {
			entry.WithError(err).Fatal("Could not connect to database")
		}
		defer db.Close()
		journal = idb.NewPostgresDeliveryJournal(db)
		entry.Info("Delivery journal enabled")
	}

	notifier := app.NewChatNotifier(
		telegram.NewTelebotAdapter(bot),
		cfg.TelegramChatID,
		cfg.NotifyRatePerMinute,
		journal,
		logger.Component("notifier"),
	)
	client := practicum.NewClient(cfg.PracticumEndpoint, cfg.PracticumToken, cfg.RequestTimeout, logger.Component("practicum"))
	poller := app.NewStatusPoller(
		client,
		homework.DefaultVerdicts(),
		notifier,
		pacer,
		logger.Component("poller"),
		time.Now,
	)

	entry.WithField("schedule", cfg.PollSchedule).Info("Application setup complete. Polling homework statuses...")
	if err := poller.Run(ctx); err != nil {
		entry.WithError(err).Error("Status poller terminated")
		os.Exit(1)
	}
	entry.Info("Application shut down gracefully.")
}
