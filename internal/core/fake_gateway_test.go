package core

import (
	"context"

	"futures-testnet-bot/internal/model"
)

type fakeGateway struct {
	info     *model.ExchangeInfo
	infoErr  error
	orderErr error

	orders []model.OrderParams
}

func (g *fakeGateway) FetchExchangeInfo(ctx context.Context) (*model.ExchangeInfo, error) {
	return g.info, g.infoErr
}

func (g *fakeGateway) CreateOrder(ctx context.Context, req model.OrderParams) (*model.OrderResponse, error) {
	g.orders = append(g.orders, req)
	if g.orderErr != nil {
		return nil, g.orderErr
	}

	resp := &model.OrderResponse{
		OrderId:       int64(len(g.orders)),
		Symbol:        req.Symbol,
		Side:          string(req.Side),
		Type:          string(req.Type),
		Status:        "NEW",
		OrigQty:       req.Quantity.String(),
		ExecutedQty:   "0",
		TimeInForce:   string(req.TimeInForce),
		ClientOrderId: req.ClientOrderId,
	}
	if req.Price.Valid {
		resp.Price = req.Price.Decimal.String()
	}
	if req.StopPrice.Valid {
		resp.StopPrice = req.StopPrice.Decimal.String()
	}
	return resp, nil
}

func testExchangeInfo() *model.ExchangeInfo {
	return &model.ExchangeInfo{Symbols: []model.SymbolInfo{
		{
			Symbol: "BTCUSDT",
			Filters: []model.Filter{
				{FilterType: model.FilterPrice, TickSize: "0.01", MinPrice: "556.80"},
				{FilterType: model.FilterLotSize, StepSize: "0.001", MinQty: "0.001"},
				{FilterType: "MIN_NOTIONAL"},
			},
		},
		{
			Symbol: "ETHUSDT",
			Filters: []model.Filter{
				{FilterType: model.FilterLotSize, StepSize: "0.01", MinQty: "0.01"},
			},
		},
		{
			Symbol: "NOFILTERS",
		},
	}}
}
