package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"futures-testnet-bot/internal/logger"
	"futures-testnet-bot/internal/metrics"
	"futures-testnet-bot/internal/model"
)

// Bot validates orders against the symbol table and submits them through the gateway.
// Each call runs to completion, including the network round trip, before returning.
type Bot struct {
	Gateway  Gateway
	Symbols  SymbolTable
	Metrics  *metrics.Tracker
	Notifier Notifier
}

// Notifier is told about every accepted order. Nil disables notifications.
type Notifier interface {
	OrderPlaced(ctx context.Context, order *model.OrderResponse)
}

// NewBot loads the symbol table once. A failed load leaves the bot unable to trade.
func NewBot(ctx context.Context, gw Gateway) *Bot {
	return &Bot{
		Gateway: gw,
		Symbols: LoadSymbolTable(ctx, gw),
		Metrics: metrics.NewTracker(),
	}
}

func (b *Bot) IsValidSymbol(symbol string) bool {
	return b.Symbols.IsValidSymbol(symbol)
}

func (b *Bot) PlaceMarketOrder(ctx context.Context, symbol, side string, quantity decimal.Decimal) (*model.OrderResponse, error) {
	return b.Place(ctx, model.OrderRequest{
		Kind:     model.KindMarket,
		Symbol:   symbol,
		Side:     side,
		Quantity: quantity,
	})
}

func (b *Bot) PlaceLimitOrder(ctx context.Context, symbol, side string, quantity, price decimal.Decimal) (*model.OrderResponse, error) {
	return b.Place(ctx, model.OrderRequest{
		Kind:     model.KindLimit,
		Symbol:   symbol,
		Side:     side,
		Quantity: quantity,
		Price:    price,
	})
}

func (b *Bot) PlaceStopLimitOrder(ctx context.Context, symbol, side string, quantity, price, stopPrice decimal.Decimal) (*model.OrderResponse, error) {
	return b.Place(ctx, model.OrderRequest{
		Kind:      model.KindStopLimit,
		Symbol:    symbol,
		Side:      side,
		Quantity:  quantity,
		Price:     price,
		StopPrice: stopPrice,
	})
}

// Place validates req and submits it once. Every failure is a *Rejection.
func (b *Bot) Place(ctx context.Context, req model.OrderRequest) (*model.OrderResponse, error) {
	params, err := b.prepare(req)
	if err != nil {
		reason := string(ReasonOf(err))
		if reason == "" {
			reason = "Unsupported"
		}
		logger.Error("Order rejected",
			"kind", req.Kind,
			"symbol", req.Symbol,
			"reason", reason,
			"error", err.Error(),
		)
		b.Metrics.TrackOutcome(reason)
		return nil, err
	}

	logger.Info("Placing order",
		"type", params.Type,
		"symbol", params.Symbol,
		"side", params.Side,
		"quantity", params.Quantity.String(),
		"price", nullString(params.Price),
		"stop_price", nullString(params.StopPrice),
		"client_order_id", params.ClientOrderId,
	)

	start := time.Now()
	resp, err := b.Gateway.CreateOrder(ctx, params)
	b.Metrics.TrackCall(time.Since(start))

	if err != nil {
		rej := &Rejection{Reason: SubmissionFailed, Symbol: params.Symbol, Err: err}
		logger.Error("Order submission failed", "type", params.Type, "symbol", params.Symbol, "error", err)
		b.Metrics.TrackOutcome(string(rej.Reason))
		return nil, rej
	}

	logger.Info("Order response",
		"order_id", resp.OrderId,
		"client_order_id", resp.ClientOrderId,
		"symbol", resp.Symbol,
		"side", resp.Side,
		"type", resp.Type,
		"status", resp.Status,
		"orig_qty", resp.OrigQty,
		"price", resp.Price,
		"stop_price", resp.StopPrice,
	)
	b.Metrics.TrackOutcome("")
	if b.Notifier != nil {
		b.Notifier.OrderPlaced(ctx, resp)
	}
	return resp, nil
}

// prepare runs the checks in order and stops at the first failure:
// symbol, side, positive values, then precision.
func (b *Bot) prepare(req model.OrderRequest) (model.OrderParams, error) {
	symbol := strings.ToUpper(req.Symbol)
	if !b.Symbols.IsValidSymbol(symbol) {
		return model.OrderParams{}, &Rejection{Reason: SymbolNotFound, Symbol: req.Symbol}
	}

	side := model.Side(strings.ToUpper(req.Side))
	if side != model.SideBuy && side != model.SideSell {
		return model.OrderParams{}, &Rejection{Reason: InvalidSide, Symbol: symbol, Side: req.Side}
	}

	if !req.Quantity.IsPositive() || !InRange(req.Quantity) {
		return model.OrderParams{}, &Rejection{Reason: InvalidQuantity, Symbol: symbol, Value: req.Quantity}
	}

	var price decimal.NullDecimal
	switch req.Kind {
	case model.KindMarket:
	case model.KindLimit, model.KindStopLimit:
		if !req.Price.IsPositive() || !InRange(req.Price) {
			return model.OrderParams{}, &Rejection{Reason: InvalidPrice, Symbol: symbol, Value: req.Price}
		}
		if req.Kind == model.KindStopLimit && (!req.StopPrice.IsPositive() || !InRange(req.StopPrice)) {
			return model.OrderParams{}, &Rejection{Reason: InvalidStopPrice, Symbol: symbol, Value: req.StopPrice}
		}
		price = decimal.NewNullDecimal(req.Price)
	default:
		return model.OrderParams{}, fmt.Errorf("unsupported order kind %q", req.Kind)
	}

	norm, err := b.Symbols.ValidatePrecision(symbol, req.Quantity, price)
	if err != nil {
		return model.OrderParams{}, err
	}

	params := model.OrderParams{
		Symbol:        symbol,
		Side:          side,
		Quantity:      norm.Quantity,
		ClientOrderId: uuid.NewString(),
	}
	switch req.Kind {
	case model.KindMarket:
		params.Type = model.OrderTypeMarket
	case model.KindLimit:
		params.Type = model.OrderTypeLimit
		params.Price = norm.Price
		params.TimeInForce = model.TimeInForceGTC
	case model.KindStopLimit:
		params.Type = model.OrderTypeStop
		params.Price = norm.Price
		params.StopPrice = decimal.NewNullDecimal(req.StopPrice)
		params.TimeInForce = model.TimeInForceGTC
	}
	return params, nil
}

func nullString(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}
