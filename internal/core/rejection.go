package core

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

type Reason string

const (
	SymbolNotFound       Reason = "SymbolNotFound"
	InvalidSide          Reason = "InvalidSide"
	InvalidQuantity      Reason = "InvalidQuantity"
	InvalidPrice         Reason = "InvalidPrice"
	InvalidStopPrice     Reason = "InvalidStopPrice"
	QuantityBelowMinimum Reason = "QuantityBelowMinimum"
	PriceBelowMinimum    Reason = "PriceBelowMinimum"
	SubmissionFailed     Reason = "SubmissionFailed"
	MetadataFetchFailed  Reason = "MetadataFetchFailed"
)

// Rejection is the failure side of an order attempt. Only the fields relevant
// to Reason are set.
type Rejection struct {
	Reason  Reason
	Symbol  string
	Side    string
	Value   decimal.Decimal
	Minimum decimal.Decimal
	Err     error
}

func (r *Rejection) Error() string {
	switch r.Reason {
	case SymbolNotFound:
		return fmt.Sprintf("invalid symbol: %s", r.Symbol)
	case InvalidSide:
		return fmt.Sprintf("invalid side: %s", r.Side)
	case InvalidQuantity:
		return fmt.Sprintf("invalid quantity: %s", r.Value)
	case InvalidPrice:
		return fmt.Sprintf("invalid price: %s", r.Value)
	case InvalidStopPrice:
		return fmt.Sprintf("invalid stop price: %s", r.Value)
	case QuantityBelowMinimum:
		return fmt.Sprintf("quantity %s is below minimum %s for %s", r.Value, r.Minimum, r.Symbol)
	case PriceBelowMinimum:
		return fmt.Sprintf("price %s is below minimum %s for %s", r.Value, r.Minimum, r.Symbol)
	case SubmissionFailed:
		return fmt.Sprintf("order submission failed: %v", r.Err)
	case MetadataFetchFailed:
		return fmt.Sprintf("failed to fetch symbols: %v", r.Err)
	}
	return string(r.Reason)
}

func (r *Rejection) Unwrap() error {
	return r.Err
}

// ReasonOf returns the rejection tag carried by err, or "" when err is not a Rejection.
func ReasonOf(err error) Reason {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej.Reason
	}
	return ""
}
