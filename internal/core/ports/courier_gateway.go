package ports

import (
	"context"
	"errors"

	"courierbridge/internal/core/domain/model/booking"
	"courierbridge/internal/core/domain/model/pickup"

	"github.com/shopspring/decimal"
)

var (
	// ErrCourierRejected marks a definitive refusal by the courier: a non-2xx
	// status or a response without the success flag. Retrying the same request
	// is expected to fail the same way.
	ErrCourierRejected = errors.New("courier rejected the request")

	// ErrMalformedResponse marks a courier response that could not be read.
	ErrMalformedResponse = errors.New("courier response is malformed")
)

// RateEstimateRequest asks the courier what a trip would cost.
type RateEstimateRequest struct {
	PickupAddress  string
	DropoffAddress string
	// PickupSlot is only sent when the courier quotes per pickup time.
	PickupSlot *pickup.Slot
}

// CourierGateway is the same-day courier's API.
type CourierGateway interface {
	// EstimateRate returns the courier's price in currency units.
	EstimateRate(ctx context.Context, req RateEstimateRequest) (decimal.Decimal, error)

	// CreateDelivery books a courier. A returned confirmation always has a delivery id.
	CreateDelivery(ctx context.Context, req booking.Request) (booking.Confirmation, error)

	// QuotesPerPickupTime reports whether EstimateRate needs a pickup slot.
	QuotesPerPickupTime() bool
}
