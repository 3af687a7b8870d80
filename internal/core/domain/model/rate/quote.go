// Package rate models the shipping rates returned to checkout.
package rate

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Service codes. Exactly one of them is ever returned per quote.
const (
	CodeAvailable   = "METROBI"
	CodeUnavailable = "METROBI_UNAVAILABLE"

	// UnavailablePrice is high enough that no buyer picks the sentinel rate by accident.
	UnavailablePrice = "999900"

	CurrencyUSD = "USD"
)

var ErrPriceIsNegative = errors.New("courier price must not be negative")

var hundred = decimal.NewFromInt(100)

// Quote is one rate line in the carrier service response.
type Quote struct {
	ServiceName string `json:"service_name"`
	ServiceCode string `json:"service_code"`
	Description string `json:"description"`
	TotalPrice  string `json:"total_price"`
	Currency    string `json:"currency"`
}

// IsAvailable reports whether the quote is a real courier price.
func (q Quote) IsAvailable() bool {
	return q.ServiceCode == CodeAvailable
}

// Unavailable is the degraded sentinel shown when the courier cannot be queried.
// Checkout keeps working and the buyer can pick another method.
func Unavailable() Quote {
	return Quote{
		ServiceName: "⚠️ Metrobi Delivery - Temporarily Unavailable",
		ServiceCode: CodeUnavailable,
		Description: "Metrobi could not calculate delivery for this address",
		TotalPrice:  UnavailablePrice,
		Currency:    CurrencyUSD,
	}
}

// NewQuote prices a successful courier estimate. price and surcharge are in
// currency units; the total is rounded half-up to minor units.
//
// Example:
//
//	q, _ := rate.NewQuote(decimal.RequireFromString("12.345"), decimal.Zero)
//	q.TotalPrice // "1235"
func NewQuote(price, surcharge decimal.Decimal) (Quote, error) {
	if price.IsNegative() {
		return Quote{}, ErrPriceIsNegative
	}
	return Quote{
		ServiceName: "Metrobi Delivery",
		ServiceCode: CodeAvailable,
		Description: "Same-day local courier powered by Metrobi",
		TotalPrice:  ToMinorUnits(price.Add(surcharge)),
		Currency:    CurrencyUSD,
	}, nil
}

// ToMinorUnits converts a currency amount to an integer count of cents rendered as a string.
func ToMinorUnits(amount decimal.Decimal) string {
	return amount.Mul(hundred).Round(0).String()
}
