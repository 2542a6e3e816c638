package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"futures-testnet-bot/internal/api"
	"futures-testnet-bot/internal/config"
	"futures-testnet-bot/internal/console"
	"futures-testnet-bot/internal/core"
	"futures-testnet-bot/internal/logger"
	"futures-testnet-bot/internal/notify"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init(cfg.LogFile, cfg.LogLevel)
	logger.Info("Starting Futures Trading Bot...",
		"testnet", cfg.Testnet,
		"recv_window_ms", cfg.RecvWindowMs,
		"http_timeout_sec", cfg.HTTPTimeoutSec,
	)

	ctx := context.Background()

	client := api.NewFuturesClient(cfg)
	if err := client.SyncTime(ctx); err != nil {
		logger.Warn("⚠️ Failed to synchronize time with Binance, using local time", "error", err)
	}

	bot := core.NewBot(ctx, client)
	if tg := notify.NewTelegram(cfg); tg != nil {
		bot.Notifier = tg
		logger.Info("Telegram notifications enabled")
	}

	fmt.Println("=== Binance Futures Trading Bot ===")
	fmt.Printf("Endpoint: %s\n", client.Client.BaseURL)
	fmt.Printf("Symbols loaded: %d\n", len(bot.Symbols))
	if len(bot.Symbols) == 0 {
		fmt.Println("Warning: no symbols available, every order will be rejected. Check connectivity and logs.")
	}

	if err := console.New(bot, os.Stdin, os.Stdout).Run(ctx); err != nil {
		logger.Error("Console stopped", "error", err)
	}

	bot.Metrics.LogSummary()
	logger.Info("Bot stopped")
}
