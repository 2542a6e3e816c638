package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/adshao/go-binance/v2/common"
	"github.com/adshao/go-binance/v2/futures"

	"futures-testnet-bot/internal/config"
	"futures-testnet-bot/internal/logger"
	"futures-testnet-bot/internal/model"
)

// FuturesClient talks to Binance USDT-M futures (testnet unless configured otherwise).
type FuturesClient struct {
	Client     *futures.Client
	RecvWindow int64
}

func NewFuturesClient(cfg *config.Config) *FuturesClient {
	// go-binance picks the endpoint from this flag at construction time.
	futures.UseTestnet = cfg.Testnet

	client := futures.NewClient(cfg.BinanceApiKey, cfg.BinanceSecretKey)
	client.HTTPClient = &http.Client{Timeout: time.Duration(cfg.HTTPTimeoutSec) * time.Second}

	return &FuturesClient{
		Client:     client,
		RecvWindow: cfg.RecvWindowMs,
	}
}

// SyncTime aligns signed request timestamps with the exchange clock.
func (c *FuturesClient) SyncTime(ctx context.Context) error {
	offset, err := c.Client.NewSetServerTimeService().Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to get server time: %w", err)
	}
	logger.Info("⏰ Time Synchronized", "base_url", c.Client.BaseURL, "offset_ms", offset)
	return nil
}

func (c *FuturesClient) FetchExchangeInfo(ctx context.Context) (*model.ExchangeInfo, error) {
	res, err := c.Client.NewExchangeInfoService().Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("exchange info request failed: %w", err)
	}

	info := &model.ExchangeInfo{Symbols: make([]model.SymbolInfo, 0, len(res.Symbols))}
	for i := range res.Symbols {
		s := &res.Symbols[i]
		symbol := model.SymbolInfo{Symbol: s.Symbol}

		if lot := s.LotSizeFilter(); lot != nil {
			symbol.Filters = append(symbol.Filters, model.Filter{
				FilterType: model.FilterLotSize,
				StepSize:   lot.StepSize,
				MinQty:     lot.MinQuantity,
			})
		}
		if price := s.PriceFilter(); price != nil {
			symbol.Filters = append(symbol.Filters, model.Filter{
				FilterType: model.FilterPrice,
				TickSize:   price.TickSize,
				MinPrice:   price.MinPrice,
			})
		}
		info.Symbols = append(info.Symbols, symbol)
	}
	return info, nil
}

// CreateOrder submits one order. An empty ClientOrderId leaves go-binance to generate
// its own broker id for newClientOrderId.
func (c *FuturesClient) CreateOrder(ctx context.Context, req model.OrderParams) (*model.OrderResponse, error) {
	svc := c.Client.NewCreateOrderService().
		Symbol(req.Symbol).
		Side(futures.SideType(req.Side)).
		Type(futures.OrderType(req.Type)).
		Quantity(req.Quantity.String())

	if req.Price.Valid {
		svc.Price(req.Price.Decimal.String())
	}
	if req.StopPrice.Valid {
		svc.StopPrice(req.StopPrice.Decimal.String())
	}
	if req.TimeInForce != "" {
		svc.TimeInForce(futures.TimeInForceType(req.TimeInForce))
	}
	if req.ClientOrderId != "" {
		svc.NewClientOrderID(req.ClientOrderId)
	}

	resp, err := svc.Do(ctx, futures.WithRecvWindow(c.RecvWindow))
	if err != nil {
		var apiErr *common.APIError
		if errors.As(err, &apiErr) {
			logger.Error("Binance Order Error", "code", apiErr.Code, "message", apiErr.Message)
		}
		return nil, fmt.Errorf("create order: %w", err)
	}

	return &model.OrderResponse{
		OrderId:       resp.OrderID,
		Symbol:        resp.Symbol,
		Side:          string(resp.Side),
		Type:          string(resp.Type),
		Status:        string(resp.Status),
		OrigQty:       resp.OrigQuantity,
		ExecutedQty:   resp.ExecutedQuantity,
		Price:         resp.Price,
		AvgPrice:      resp.AvgPrice,
		StopPrice:     resp.StopPrice,
		TimeInForce:   string(resp.TimeInForce),
		ClientOrderId: resp.ClientOrderID,
	}, nil
}
