package services

import (
	"strings"

	"courierbridge/internal/core/domain/model/booking"
	"courierbridge/internal/core/domain/model/fulfillment"
	"courierbridge/internal/core/domain/model/kernel"
	"courierbridge/internal/core/domain/model/pickup"
)

// Dropoff instructions chosen by whether the shipping address names a company.
const (
	BusinessInstructions    = "Business delivery: deliver to the front desk or reception."
	ResidentialInstructions = "Residential delivery: hand to the recipient or leave at the door."
)

// StoreProfile is the fixed pickup side of every booking.
type StoreProfile struct {
	Address      kernel.Address
	Contact      kernel.Contact
	Instructions string
}

// DefaultStoreProfile is the store the courier collects from when no profile is configured.
func DefaultStoreProfile() StoreProfile {
	return StoreProfile{
		Address: kernel.Address{
			Address1:   "184 Lexington Ave",
			City:       "New York",
			Province:   "NY",
			PostalCode: "10016",
			Country:    kernel.CountryUS,
		},
		Contact: kernel.Contact{Name: "Store"},
	}
}

// BookingRequestBuilder turns a normalized fulfillment event into a courier request.
// It has no side effects; the same event, store and slot always produce the same request.
//
// Example:
//
//	builder := services.NewBookingRequestBuilder(services.DefaultStoreProfile())
//	req, err := builder.Build(fulfillment.NewOrderEvent(order), scheduler.Next())
//	if err != nil {
//	    return err // the order cannot be delivered as addressed
//	}
type BookingRequestBuilder struct {
	store StoreProfile
}

// NewBookingRequestBuilder creates a builder picking up from store.
func NewBookingRequestBuilder(store StoreProfile) BookingRequestBuilder {
	return BookingRequestBuilder{store: store}
}

// Store returns the pickup profile.
func (b BookingRequestBuilder) Store() StoreProfile {
	return b.store
}

// Build returns the courier request for ev. The trigger of ev does not affect the result
// beyond the external reference.
func (b BookingRequestBuilder) Build(ev fulfillment.Event, slot pickup.Slot) (booking.Request, error) {
	order := ev.Order
	recipient := order.Recipient()

	req := booking.Request{
		Size: booking.SizeSUV,
		Pickup: booking.Stop{
			Address:      b.store.Address,
			Contact:      b.store.Contact,
			Instructions: b.store.Instructions,
		},
		Dropoff: booking.Stop{
			Address:      order.ShippingAddress,
			Contact:      recipient,
			Instructions: dropoffInstructions(order),
		},
		PickupSlot:        slot,
		ExternalReference: ev.Reference(),
		Settings: booking.Settings{
			NotifyRecipient: recipient.Phone != "" || recipient.Email != "",
		},
	}

	if err := req.Validate(); err != nil {
		return booking.Request{}, err
	}
	return req, nil
}

func dropoffInstructions(o fulfillment.Order) string {
	parts := make([]string, 0, 3)
	if o.ShippingAddress.HasCompany() {
		parts = append(parts, BusinessInstructions, "Company: "+strings.TrimSpace(o.ShippingAddress.Company)+".")
	} else {
		parts = append(parts, ResidentialInstructions)
	}
	if unit := strings.TrimSpace(o.ShippingAddress.Address2); unit != "" {
		parts = append(parts, "Unit: "+unit+".")
	}
	if note := strings.TrimSpace(o.Note); note != "" {
		parts = append(parts, "Note: "+strings.Join(strings.Fields(note), " "))
	}
	return strings.Join(parts, " ")
}
