package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"futures-testnet-bot/internal/logger"
	"futures-testnet-bot/internal/model"
)

type LotSize struct {
	StepSize decimal.Decimal
	MinQty   decimal.Decimal
}

type PriceFilter struct {
	TickSize decimal.Decimal
	MinPrice decimal.Decimal
}

// Filters holds the constraints the bot enforces. A nil filter means no constraint.
type Filters struct {
	LotSize *LotSize
	Price   *PriceFilter
}

type SymbolMetadata struct {
	Symbol  string
	Filters Filters
}

// SymbolTable is keyed by upper-case symbol. It is never written after LoadSymbolTable
// returns, so concurrent readers need no locking.
type SymbolTable map[string]SymbolMetadata

// LoadSymbolTable builds the table from exchange metadata. Any fetch failure yields an
// empty table, which makes every later symbol check fail and blocks all trading.
func LoadSymbolTable(ctx context.Context, gw Gateway) SymbolTable {
	info, err := gw.FetchExchangeInfo(ctx)
	if err == nil && info == nil {
		err = errors.New("empty exchange info response")
	}
	if err != nil {
		rej := &Rejection{Reason: MetadataFetchFailed, Err: err}
		logger.Error("Failed to fetch symbols, trading disabled", "reason", rej.Reason, "error", rej.Error())
		return SymbolTable{}
	}

	table := make(SymbolTable, len(info.Symbols))
	for _, s := range info.Symbols {
		symbol := strings.ToUpper(s.Symbol)
		if symbol == "" {
			continue
		}
		filters, err := parseFilters(s.Filters)
		if err != nil {
			// Fail closed for this symbol only.
			logger.Warn("Skipping symbol with malformed filters", "symbol", symbol, "error", err)
			continue
		}
		table[symbol] = SymbolMetadata{Symbol: symbol, Filters: filters}
	}

	logger.Info("Symbol table loaded", "symbols", len(table))
	return table
}

func (t SymbolTable) IsValidSymbol(symbol string) bool {
	_, ok := t[strings.ToUpper(symbol)]
	return ok
}

// GetFilters returns the filters for symbol; ok is false when the symbol is unknown.
func (t SymbolTable) GetFilters(symbol string) (Filters, bool) {
	meta, ok := t[strings.ToUpper(symbol)]
	if !ok {
		return Filters{}, false
	}
	return meta.Filters, true
}

func parseFilters(raw []model.Filter) (Filters, error) {
	var filters Filters
	for _, f := range raw {
		switch f.FilterType {
		case model.FilterLotSize:
			step, err := parseStep(f.StepSize, "stepSize")
			if err != nil {
				return Filters{}, err
			}
			minQty, err := parseMinimum(f.MinQty, "minQty")
			if err != nil {
				return Filters{}, err
			}
			filters.LotSize = &LotSize{StepSize: step, MinQty: minQty}
		case model.FilterPrice:
			tick, err := parseStep(f.TickSize, "tickSize")
			if err != nil {
				return Filters{}, err
			}
			minPrice, err := parseMinimum(f.MinPrice, "minPrice")
			if err != nil {
				return Filters{}, err
			}
			filters.Price = &PriceFilter{TickSize: tick, MinPrice: minPrice}
		}
	}
	return filters, nil
}

func parseStep(value, name string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("invalid %s %q: must be positive", name, value)
	}
	return d, nil
}

func parseMinimum(value, name string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("invalid %s %q: must not be negative", name, value)
	}
	return d, nil
}
