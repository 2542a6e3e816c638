package core

import (
	"github.com/shopspring/decimal"
)

// maxExponent bounds the decimal exponent of user input. Larger magnitudes make
// step arithmetic rescale into enormous integers.
const maxExponent = 30

// InRange reports whether d has an exponent the precision checks can handle.
func InRange(d decimal.Decimal) bool {
	exp := d.Exponent()
	return exp <= maxExponent && exp >= -maxExponent
}

// Normalized holds order values rounded down to the symbol's step and tick.
type Normalized struct {
	Quantity decimal.Decimal
	Price    decimal.NullDecimal
}

// AdjustToStep rounds value down to the nearest multiple of step, i.e.
// floor(value/step)*step for positive values. step must be positive; table
// loading guarantees that for exchange filters.
func AdjustToStep(value, step decimal.Decimal) decimal.Decimal {
	if !step.IsPositive() {
		return value
	}
	return value.Sub(value.Mod(step))
}

// ValidatePrecision normalizes quantity and the optional price for symbol and
// checks them against the exchange minimums. Normalization runs first so a value
// that floors below the minimum is rejected here instead of by the exchange.
func (t SymbolTable) ValidatePrecision(symbol string, quantity decimal.Decimal, price decimal.NullDecimal) (Normalized, error) {
	filters, ok := t.GetFilters(symbol)
	if !ok {
		return Normalized{}, &Rejection{Reason: SymbolNotFound, Symbol: symbol}
	}

	if lot := filters.LotSize; lot != nil {
		quantity = AdjustToStep(quantity, lot.StepSize)
		if quantity.LessThan(lot.MinQty) {
			return Normalized{}, &Rejection{
				Reason:  QuantityBelowMinimum,
				Symbol:  symbol,
				Value:   quantity,
				Minimum: lot.MinQty,
			}
		}
	}

	if pf := filters.Price; price.Valid && pf != nil {
		price.Decimal = AdjustToStep(price.Decimal, pf.TickSize)
		if price.Decimal.LessThan(pf.MinPrice) {
			return Normalized{}, &Rejection{
				Reason:  PriceBelowMinimum,
				Symbol:  symbol,
				Value:   price.Decimal,
				Minimum: pf.MinPrice,
			}
		}
	}

	return Normalized{Quantity: quantity, Price: price}, nil
}
