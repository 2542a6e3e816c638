package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"futures-testnet-bot/internal/config"
	"futures-testnet-bot/internal/logger"
	"futures-testnet-bot/internal/model"
)

const telegramAPI = "https://api.telegram.org"

// Telegram posts accepted orders to a chat. It is optional and never blocks trading on failure.
type Telegram struct {
	Token   string
	ChatID  string
	BaseURL string
	HTTP    *http.Client
}

// NewTelegram returns nil when the bot token or chat id is missing.
func NewTelegram(cfg *config.Config) *Telegram {
	if cfg.TelegramToken == "" || cfg.TelegramChatID == "" {
		return nil
	}
	return &Telegram{
		Token:   cfg.TelegramToken,
		ChatID:  cfg.TelegramChatID,
		BaseURL: telegramAPI,
		HTTP:    &http.Client{Timeout: 5 * time.Second},
	}
}

func (t *Telegram) SendMessage(ctx context.Context, text string) error {
	payload, err := json.Marshal(map[string]string{
		"chat_id":    t.ChatID,
		"text":       text,
		"parse_mode": "Markdown",
	})
	if err != nil {
		return fmt.Errorf("failed to marshal telegram payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.BaseURL, t.Token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API error: %s", resp.Status)
	}
	return nil
}

// OrderPlaced reports an accepted order. Errors are logged and dropped.
func (t *Telegram) OrderPlaced(ctx context.Context, order *model.OrderResponse) {
	msg := fmt.Sprintf(
		"🤖 Futures Testnet - %s\n"+
			"🆔 ID: %d\n"+
			"📊 Status: %s\n"+
			"🧾 Type: %s\n"+
			"🟢 Side: %s\n"+
			"📦 Qty: %s\n"+
			"💲 Price: %s\n"+
			"📅 Date: %s",
		escapeMarkdown(order.Symbol),
		order.OrderId,
		escapeMarkdown(order.Status),
		escapeMarkdown(order.Type),
		order.Side,
		order.OrigQty,
		order.Price,
		time.Now().Format("02/01/2006, 15:04:05"),
	)
	if order.StopPrice != "" && order.Type == string(model.OrderTypeStop) {
		msg += fmt.Sprintf("\n⛔ Stop: %s", order.StopPrice)
	}

	if err := t.SendMessage(ctx, msg); err != nil {
		logger.Warn("Telegram notification failed", "order_id", order.OrderId, "error", err)
	}
}

// escapeMarkdown keeps underscores in ids and statuses from opening italics.
func escapeMarkdown(text string) string {
	return strings.ReplaceAll(text, "_", "\\_")
}
