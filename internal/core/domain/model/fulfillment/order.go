// Package fulfillment holds the commerce platform's order and fulfillment-order
// concepts, normalized so the booking flow does not care which webhook triggered it.
package fulfillment

import (
	"strings"

	"courierbridge/internal/core/domain/model/kernel"
)

// ShippingLine is the shipping method a buyer selected at checkout.
type ShippingLine struct {
	Title string
	Code  string
}

// Order is the subset of a commerce order needed to book a courier.
type Order struct {
	ID              int64
	Name            string
	Email           string
	Phone           string
	Customer        kernel.Contact
	ShippingAddress kernel.Address
	// ShippingContact is the recipient named on the shipping address.
	ShippingContact kernel.Contact
	ShippingLines   []ShippingLine
	Note            string
}

// Recipient returns who the courier should ask for at the dropoff.
func (o Order) Recipient() kernel.Contact {
	fallback := o.Customer
	if fallback.Email == "" {
		fallback.Email = o.Email
	}
	if fallback.Phone == "" {
		fallback.Phone = o.Phone
	}
	return o.ShippingContact.Or(fallback)
}

// CourierMatcher decides whether a shipping line selects the courier.
type CourierMatcher struct {
	titleNeedle string
	code        string
}

// NewCourierMatcher matches titles containing titleNeedle and codes equal to code,
// both case-insensitively.
func NewCourierMatcher(titleNeedle, code string) CourierMatcher {
	return CourierMatcher{
		titleNeedle: strings.ToLower(strings.TrimSpace(titleNeedle)),
		code:        strings.TrimSpace(code),
	}
}

// Matches reports whether line selects the courier.
func (m CourierMatcher) Matches(line ShippingLine) bool {
	if m.titleNeedle != "" && strings.Contains(strings.ToLower(line.Title), m.titleNeedle) {
		return true
	}
	return m.code != "" && strings.EqualFold(strings.TrimSpace(line.Code), m.code)
}

// Selected reports whether any of the order's shipping lines selects the courier.
func (m CourierMatcher) Selected(o Order) bool {
	for _, line := range o.ShippingLines {
		if m.Matches(line) {
			return true
		}
	}
	return false
}
