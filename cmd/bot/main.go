package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homework_status_bot/internal/app"
	"homework_status_bot/internal/infra/config"
	"homework_status_bot/internal/infra/logger"
	"homework_status_bot/internal/infra/practicum"
	"homework_status_bot/internal/infra/scheduler"
	itelegram "homework_status_bot/internal/infra/telegram"

	"gopkg.in/telebot.v3"
)

func main() {
	fmt.Println("Homework Status Bot starting...")

	mainLogger := log.New(os.Stdout, "MAIN: ", log.LstdFlags|log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		// Missing credentials are the one fatal, non-retried condition.
		mainLogger.Fatalf("FATAL: Could not load application configuration: %v", err)
	}

	logger.Init(cfg)
	appLogger := logger.Get()
	appLogger.Infof("Configuration loaded. LogLevel: %s, Environment: %s, PollInterval: %s", cfg.LogLevel, cfg.Environment, cfg.PollInterval)

	// Initialize Telegram Bot (outbound only, no update poller needed)
	bot, err := telebot.NewBot(telebot.Settings{
		Token: cfg.TelegramToken,
		OnError: func(err error, c telebot.Context) { // Global error handler
			appLogger.Errorf("telebot: %v", err)
		},
	})
	if err != nil {
		appLogger.Fatalf("Could not create Telegram bot: %v", err)
	}
	telegramClient := itelegram.NewTelebotAdapter(bot)
	appLogger.Info("Telegram client initialized.")

	// Initialize Practicum API client
	practicumClient := practicum.NewClient(cfg.PracticumEndpoint, cfg.PracticumToken, cfg.RequestTimeout)
	appLogger.Info("Practicum API client initialized.")

	// Initialize PollService; the cursor starts at the current time so only
	// updates from after startup are reported.
	pollService := app.NewPollService(
		practicumClient,
		telegramClient,
		appLogger,
		cfg.TelegramChatID,
		time.Now().Unix(),
	)
	appLogger.Info("Poll service initialized.")

	pollScheduler := scheduler.NewPollScheduler(pollService, appLogger, cfg.PollInterval)
	pollScheduler.Start()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	appLogger.Info("Shutting down application...")
	pollScheduler.Stop()
	appLogger.Info("Application shut down gracefully.")
}
