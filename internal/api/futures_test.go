package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/adshao/go-binance/v2/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"futures-testnet-bot/internal/config"
	"futures-testnet-bot/internal/core"
	"futures-testnet-bot/internal/model"
)

var _ core.Gateway = (*FuturesClient)(nil)

const exchangeInfoBody = `{
  "timezone": "UTC",
  "serverTime": 1700000000000,
  "symbols": [
    {
      "symbol": "BTCUSDT",
      "status": "TRADING",
      "filters": [
        {"filterType": "PRICE_FILTER", "minPrice": "556.80", "maxPrice": "4529764", "tickSize": "0.10"},
        {"filterType": "LOT_SIZE", "stepSize": "0.001", "maxQty": "1000", "minQty": "0.001"},
        {"filterType": "MIN_NOTIONAL", "notional": "100"}
      ]
    },
    {
      "symbol": "NOFILTERS",
      "status": "TRADING",
      "filters": []
    }
  ]
}`

const orderBody = `{
  "orderId": 4036733925,
  "symbol": "BTCUSDT",
  "status": "NEW",
  "clientOrderId": "x-abc123",
  "price": "50000.10",
  "avgPrice": "0.00",
  "origQty": "0.001",
  "executedQty": "0",
  "cumQuote": "0",
  "timeInForce": "GTC",
  "type": "STOP",
  "reduceOnly": false,
  "closePosition": false,
  "side": "BUY",
  "positionSide": "BOTH",
  "stopPrice": "49900",
  "workingType": "CONTRACT_PRICE",
  "priceProtect": false,
  "updateTime": 1700000000000
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *FuturesClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewFuturesClient(&config.Config{
		BinanceApiKey:    "test-key",
		BinanceSecretKey: "test-secret",
		Testnet:          true,
		RecvWindowMs:     5000,
		HTTPTimeoutSec:   5,
	})
	c.Client.BaseURL = srv.URL
	return c
}

func TestNewFuturesClientSelectsEndpoint(t *testing.T) {
	prod := NewFuturesClient(&config.Config{Testnet: false, HTTPTimeoutSec: 1})
	assert.Equal(t, "https://fapi.binance.com", prod.Client.BaseURL)

	test := NewFuturesClient(&config.Config{Testnet: true, HTTPTimeoutSec: 1, RecvWindowMs: 60000})
	assert.NotEqual(t, "https://fapi.binance.com", test.Client.BaseURL)
	assert.Equal(t, int64(60000), test.RecvWindow)
}

func TestFetchExchangeInfo(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fapi/v1/exchangeInfo", r.URL.Path)
		_, _ = w.Write([]byte(exchangeInfoBody))
	})

	info, err := c.FetchExchangeInfo(context.Background())
	require.NoError(t, err)
	require.Len(t, info.Symbols, 2)

	btc := info.Symbols[0]
	assert.Equal(t, "BTCUSDT", btc.Symbol)
	assert.ElementsMatch(t, []model.Filter{
		{FilterType: model.FilterLotSize, StepSize: "0.001", MinQty: "0.001"},
		{FilterType: model.FilterPrice, TickSize: "0.10", MinPrice: "556.80"},
	}, btc.Filters)

	assert.Equal(t, "NOFILTERS", info.Symbols[1].Symbol)
	assert.Empty(t, info.Symbols[1].Filters)
}

func TestFetchExchangeInfoError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"code":-1000,"msg":"An unknown error occured while processing the request."}`))
	})

	_, err := c.FetchExchangeInfo(context.Background())
	require.Error(t, err)
}

func TestCreateOrderSendsSignedParams(t *testing.T) {
	var form url.Values
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/fapi/v1/order", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-MBX-APIKEY"))
		assert.NoError(t, r.ParseForm())
		form = r.Form
		_, _ = w.Write([]byte(orderBody))
	})

	resp, err := c.CreateOrder(context.Background(), model.OrderParams{
		Symbol:        "BTCUSDT",
		Side:          model.SideBuy,
		Type:          model.OrderTypeStop,
		Quantity:      decimal.RequireFromString("0.001"),
		Price:         decimal.NewNullDecimal(decimal.RequireFromString("50000.1")),
		StopPrice:     decimal.NewNullDecimal(decimal.RequireFromString("49900")),
		TimeInForce:   model.TimeInForceGTC,
		ClientOrderId: "x-abc123",
	})
	require.NoError(t, err)

	assert.Equal(t, "BTCUSDT", form.Get("symbol"))
	assert.Equal(t, "BUY", form.Get("side"))
	assert.Equal(t, "STOP", form.Get("type"))
	assert.Equal(t, "0.001", form.Get("quantity"))
	assert.Equal(t, "50000.1", form.Get("price"))
	assert.Equal(t, "49900", form.Get("stopPrice"))
	assert.Equal(t, "GTC", form.Get("timeInForce"))
	assert.Equal(t, "x-abc123", form.Get("newClientOrderId"))
	assert.Equal(t, "5000", form.Get("recvWindow"))
	assert.NotEmpty(t, form.Get("timestamp"))
	assert.NotEmpty(t, form.Get("signature"))

	assert.Equal(t, &model.OrderResponse{
		OrderId:       4036733925,
		Symbol:        "BTCUSDT",
		Side:          "BUY",
		Type:          "STOP",
		Status:        "NEW",
		OrigQty:       "0.001",
		ExecutedQty:   "0",
		Price:         "50000.10",
		AvgPrice:      "0.00",
		StopPrice:     "49900",
		TimeInForce:   "GTC",
		ClientOrderId: "x-abc123",
	}, resp)
}

func TestCreateMarketOrderOmitsPriceFields(t *testing.T) {
	var form url.Values
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		form = r.Form
		_, _ = w.Write([]byte(orderBody))
	})

	_, err := c.CreateOrder(context.Background(), model.OrderParams{
		Symbol:   "BTCUSDT",
		Side:     model.SideSell,
		Type:     model.OrderTypeMarket,
		Quantity: decimal.RequireFromString("0.002"),
	})
	require.NoError(t, err)

	assert.Equal(t, "MARKET", form.Get("type"))
	assert.Equal(t, "SELL", form.Get("side"))
	assert.Empty(t, form.Get("price"))
	assert.Empty(t, form.Get("stopPrice"))
	assert.Empty(t, form.Get("timeInForce"))
	// go-binance fills in its own broker id when none is given
	assert.NotEmpty(t, form.Get("newClientOrderId"))
}

func TestCreateOrderAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":-2015,"msg":"Invalid API-key, IP, or permissions for action."}`))
	})

	resp, err := c.CreateOrder(context.Background(), model.OrderParams{
		Symbol:   "BTCUSDT",
		Side:     model.SideBuy,
		Type:     model.OrderTypeMarket,
		Quantity: decimal.RequireFromString("0.001"),
	})

	assert.Nil(t, resp)
	var apiErr *common.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, int64(-2015), apiErr.Code)
	assert.Contains(t, err.Error(), "Invalid API-key")
}

func TestSyncTime(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fapi/v1/time", r.URL.Path)
		_, _ = w.Write([]byte(`{"serverTime": 1700000000000}`))
	})

	require.NoError(t, c.SyncTime(context.Background()))
}
