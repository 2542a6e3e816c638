package core

import (
	"context"

	"futures-testnet-bot/internal/model"
)

// Gateway is the exchange capability the bot needs.
type Gateway interface {
	FetchExchangeInfo(ctx context.Context) (*model.ExchangeInfo, error)
	CreateOrder(ctx context.Context, req model.OrderParams) (*model.OrderResponse, error)
}
