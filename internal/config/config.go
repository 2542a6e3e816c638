package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Binance API
	BinanceApiKey    string
	BinanceSecretKey string
	Testnet          bool
	RecvWindowMs     int64
	HTTPTimeoutSec   int

	// Logging
	LogFile  string
	LogLevel string

	// Telegram (optional)
	TelegramToken  string
	TelegramChatID string
}

func Load() (*Config, error) {
	// .env is optional, the process environment is enough.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	cfg := &Config{}
	var err error

	// Credentials are not validated here, a missing key surfaces as an auth error on first call.
	cfg.BinanceApiKey = os.Getenv("BINANCE_API_KEY")
	cfg.BinanceSecretKey = os.Getenv("BINANCE_API_SECRET")

	cfg.Testnet, err = parseBool(os.Getenv("BINANCE_TESTNET"), "BINANCE_TESTNET", true)
	if err != nil {
		return nil, err
	}

	cfg.RecvWindowMs, err = parseInt64(os.Getenv("RECV_WINDOW_MS"), "RECV_WINDOW_MS", 60000)
	if err != nil {
		return nil, err
	}

	cfg.HTTPTimeoutSec, err = parseInt(os.Getenv("HTTP_TIMEOUT_SEC"), "HTTP_TIMEOUT_SEC", 10)
	if err != nil {
		return nil, err
	}

	cfg.LogFile = os.Getenv("LOG_FILE")
	if cfg.LogFile == "" {
		cfg.LogFile = "logs/bot.log"
	}

	cfg.LogLevel = os.Getenv("LOG_LEVEL")
	switch cfg.LogLevel {
	case "":
		cfg.LogLevel = "info"
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid value for LOG_LEVEL: %q", cfg.LogLevel)
	}

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	cfg.TelegramChatID = os.Getenv("TELEGRAM_CHAT_ID")

	return cfg, nil
}

func parseBool(value, name string, def bool) (bool, error) {
	if value == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid value for %s: %w", name, err)
	}
	return b, nil
}

func parseInt(value, name string, def int) (int, error) {
	if value == "" {
		return def, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %w", name, err)
	}
	if i <= 0 {
		return 0, fmt.Errorf("invalid value for %s: must be positive", name)
	}
	return i, nil
}

func parseInt64(value, name string, def int64) (int64, error) {
	if value == "" {
		return def, nil
	}
	i, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %w", name, err)
	}
	if i <= 0 {
		return 0, fmt.Errorf("invalid value for %s: must be positive", name)
	}
	return i, nil
}
