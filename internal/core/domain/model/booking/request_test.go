package booking_test

import (
	"testing"
	"time"

	"courierbridge/internal/core/domain/model/booking"
	"courierbridge/internal/core/domain/model/kernel"
	"courierbridge/internal/core/domain/model/pickup"
	"courierbridge/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() booking.Request {
	return booking.Request{
		Size:       booking.SizeSUV,
		Pickup:     booking.Stop{Address: kernel.Address{Address1: "184 Lexington Ave", City: "New York"}},
		Dropoff:    booking.Stop{Address: kernel.Address{Address1: "1 Main St", PostalCode: "11201"}},
		PickupSlot: pickup.Slot{At: time.Date(2026, 10, 20, 12, 0, 0, 0, time.UTC)},
	}
}

func TestRequest_Validate(t *testing.T) {
	require.NoError(t, validRequest().Validate())

	r := validRequest()
	r.Dropoff.Address = kernel.Address{}
	err := r.Validate()
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "dropoff stop")

	r = validRequest()
	r.Size = ""
	r.PickupSlot = pickup.Slot{}
	err = r.Validate()
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Contains(t, err.Error(), "size")
	assert.Contains(t, err.Error(), "pickup slot")
}

func TestConfirmation_TrackingNumber(t *testing.T) {
	assert.Equal(t, "TRK-1", booking.Confirmation{DeliveryID: "d-1", TrackingCode: "TRK-1"}.TrackingNumber())
	assert.Equal(t, "d-1", booking.Confirmation{DeliveryID: "d-1"}.TrackingNumber())
}
