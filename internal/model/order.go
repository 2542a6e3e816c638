package model

import "github.com/shopspring/decimal"

type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// OrderKind is what the user asks for.
type OrderKind string

const (
	KindMarket    OrderKind = "MARKET"
	KindLimit     OrderKind = "LIMIT"
	KindStopLimit OrderKind = "STOP_LIMIT"
)

// OrderType is what the exchange receives. A stop-limit is "STOP" on USDT-M futures.
type OrderType string

const (
	OrderTypeMarket OrderType = "MARKET"
	OrderTypeLimit  OrderType = "LIMIT"
	OrderTypeStop   OrderType = "STOP"
)

type TimeInForce string

const TimeInForceGTC TimeInForce = "GTC"

// OrderRequest is a raw user order before validation.
type OrderRequest struct {
	Kind      OrderKind
	Symbol    string
	Side      string
	Quantity  decimal.Decimal
	Price     decimal.Decimal // LIMIT and STOP_LIMIT
	StopPrice decimal.Decimal // STOP_LIMIT
}

// OrderParams is a validated, normalized order ready for the gateway.
type OrderParams struct {
	Symbol        string
	Side          Side
	Type          OrderType
	Quantity      decimal.Decimal
	Price         decimal.NullDecimal
	StopPrice     decimal.NullDecimal
	TimeInForce   TimeInForce
	ClientOrderId string // sent as newClientOrderId
}

// OrderResponse is the exchange acknowledgement of a created order.
type OrderResponse struct {
	OrderId       int64  `json:"orderId"`
	Symbol        string `json:"symbol"`
	Side          string `json:"side"`
	Type          string `json:"type"`
	Status        string `json:"status"`
	OrigQty       string `json:"origQty"`
	ExecutedQty   string `json:"executedQty"`
	Price         string `json:"price"`
	AvgPrice      string `json:"avgPrice"`
	StopPrice     string `json:"stopPrice"`
	TimeInForce   string `json:"timeInForce"`
	ClientOrderId string `json:"clientOrderId"`
}
