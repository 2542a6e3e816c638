package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"BINANCE_API_KEY", "BINANCE_API_SECRET", "BINANCE_TESTNET",
		"RECV_WINDOW_MS", "HTTP_TIMEOUT_SEC", "LOG_FILE", "LOG_LEVEL",
		"TELEGRAM_TOKEN", "TELEGRAM_CHAT_ID",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.BinanceApiKey)
	assert.Empty(t, cfg.BinanceSecretKey)
	assert.True(t, cfg.Testnet)
	assert.Equal(t, int64(60000), cfg.RecvWindowMs)
	assert.Equal(t, 10, cfg.HTTPTimeoutSec)
	assert.Equal(t, "logs/bot.log", cfg.LogFile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.TelegramToken)
	assert.Empty(t, cfg.TelegramChatID)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("BINANCE_API_KEY", "key")
	t.Setenv("BINANCE_API_SECRET", "secret")
	t.Setenv("BINANCE_TESTNET", "false")
	t.Setenv("RECV_WINDOW_MS", "5000")
	t.Setenv("HTTP_TIMEOUT_SEC", "3")
	t.Setenv("LOG_FILE", "/tmp/bot.log")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TELEGRAM_TOKEN", "tok")
	t.Setenv("TELEGRAM_CHAT_ID", "123")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "key", cfg.BinanceApiKey)
	assert.Equal(t, "secret", cfg.BinanceSecretKey)
	assert.False(t, cfg.Testnet)
	assert.Equal(t, int64(5000), cfg.RecvWindowMs)
	assert.Equal(t, 3, cfg.HTTPTimeoutSec)
	assert.Equal(t, "/tmp/bot.log", cfg.LogFile)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "tok", cfg.TelegramToken)
	assert.Equal(t, "123", cfg.TelegramChatID)
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"testnet not bool", "BINANCE_TESTNET", "maybe"},
		{"recv window not int", "RECV_WINDOW_MS", "abc"},
		{"recv window negative", "RECV_WINDOW_MS", "-1"},
		{"timeout zero", "HTTP_TIMEOUT_SEC", "0"},
		{"unknown level", "LOG_LEVEL", "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}
