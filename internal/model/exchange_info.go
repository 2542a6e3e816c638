package model

const (
	FilterLotSize = "LOT_SIZE"
	FilterPrice   = "PRICE_FILTER"
)

// ExchangeInfo is the subset of /fapi/v1/exchangeInfo the bot relies on.
type ExchangeInfo struct {
	Symbols []SymbolInfo `json:"symbols"`
}

// SymbolInfo represents a single symbol's configuration
type SymbolInfo struct {
	Symbol  string   `json:"symbol"`
	Filters []Filter `json:"filters"`
}

// Filter represents a trading rule filter. Values are kept as the exchange sends them.
type Filter struct {
	FilterType string `json:"filterType"`
	TickSize   string `json:"tickSize,omitempty"` // For PRICE_FILTER
	MinPrice   string `json:"minPrice,omitempty"` // For PRICE_FILTER
	StepSize   string `json:"stepSize,omitempty"` // For LOT_SIZE
	MinQty     string `json:"minQty,omitempty"`   // For LOT_SIZE
}
