// Package queries contains the read paths of the bridge: answering checkout
// rate requests and exposing booked deliveries to operators. Queries never
// book, release or record anything.
package queries

import (
	"errors"

	"courierbridge/internal/core/domain/model/kernel"
	"courierbridge/internal/pkg/guard"
)

var ErrGetShippingRatesQueryIsNotConstructed = errors.New(
	"GetShippingRatesQuery must be created via NewGetShippingRatesQuery constructor",
)

// GetShippingRatesQuery is a checkout rate request. Origin and destination are
// optional; a missing destination is answered with no rates.
//
// Example:
//
//	query := NewGetShippingRatesQuery(nil, &kernel.Address{Address1: "350 5th Ave", City: "New York", Province: "NY", PostalCode: "10118", Country: "US"})
//	rates, err := handler.Handle(ctx, query)
type GetShippingRatesQuery struct {
	origin      *kernel.Address
	destination *kernel.Address

	guard guard.ConstructorGuard
}

// NewGetShippingRatesQuery builds a constructed query. Either address may be
// nil: a nil origin falls back to the store origin, a nil destination yields
// no rates.
//
// Parameters:
//   - origin: the checkout's origin address, or nil.
//   - destination: the customer's shipping address, or nil.
func NewGetShippingRatesQuery(origin, destination *kernel.Address) GetShippingRatesQuery {
	return GetShippingRatesQuery{
		origin:      origin,
		destination: destination,
		guard:       guard.NewConstructorGuard(),
	}
}

// Validate returns ErrGetShippingRatesQueryIsNotConstructed for a zero-value
// query that bypassed NewGetShippingRatesQuery.
func (q GetShippingRatesQuery) Validate() error {
	return q.guard.Validate(ErrGetShippingRatesQueryIsNotConstructed)
}

func (q GetShippingRatesQuery) Origin() *kernel.Address {
	return q.origin
}

func (q GetShippingRatesQuery) Destination() *kernel.Address {
	return q.destination
}
