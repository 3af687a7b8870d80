// Package booking models the courier delivery request and the courier's
// confirmation of it. Both are transport-agnostic: the courier adapter maps
// them to and from its wire payload.
package booking

import (
	"errors"
	"strings"

	"courierbridge/internal/core/domain/model/kernel"
	"courierbridge/internal/core/domain/model/pickup"
	"courierbridge/internal/pkg/errs"
)

// SizeSUV is the vehicle class every booking requests.
const SizeSUV = "suv"

// Stop is one end of a courier trip.
type Stop struct {
	Address      kernel.Address
	Contact      kernel.Contact
	Instructions string
}

// Settings are per-delivery flags forwarded to the courier.
type Settings struct {
	NotifyRecipient bool
	ProofOfDelivery bool
}

// Request is a courier delivery to be created.
type Request struct {
	Size              string
	Pickup            Stop
	Dropoff           Stop
	PickupSlot        pickup.Slot
	ExternalReference string
	Settings          Settings
}

// Validate checks the request carries everything the courier needs to dispatch.
func (r Request) Validate() error {
	var sizeErr error
	if strings.TrimSpace(r.Size) == "" {
		sizeErr = errs.NewValueIsRequiredError("size")
	}
	var slotErr error
	if r.PickupSlot.IsZero() {
		slotErr = errs.NewValueIsRequiredError("pickup slot")
	}
	return errors.Join(
		sizeErr,
		prefixed("pickup", r.Pickup.Address.Validate()),
		prefixed("dropoff", r.Dropoff.Address.Validate()),
		slotErr,
	)
}

func prefixed(stop string, err error) error {
	if err == nil {
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause(stop+" stop", err)
}

// Confirmation is what the courier returns for a created delivery.
type Confirmation struct {
	DeliveryID   string
	TrackingURL  string
	TrackingCode string
}

// TrackingNumber is the number shown to the buyer: the courier's tracking code
// when it has one, otherwise the delivery id.
func (c Confirmation) TrackingNumber() string {
	if c.TrackingCode != "" {
		return c.TrackingCode
	}
	return c.DeliveryID
}
