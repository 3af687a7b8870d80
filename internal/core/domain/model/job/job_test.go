package job_test

import (
	"testing"
	"time"

	"courierbridge/internal/core/domain/model/booking"
	"courierbridge/internal/core/domain/model/job"
	"courierbridge/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeliveryJob(t *testing.T) {
	at := time.Date(2026, 10, 17, 15, 4, 0, 0, time.FixedZone("EDT", -4*3600))
	conf := booking.Confirmation{DeliveryID: "d-42", TrackingURL: "https://t/42", TrackingCode: "MB42"}

	j, err := job.NewDeliveryJob("order:1001", conf, at)

	require.NoError(t, err)
	require.NoError(t, j.Validate())
	assert.NotEqual(t, uuid.Nil, j.ID())
	assert.Equal(t, "order:1001", j.Key())
	assert.Equal(t, "d-42", j.DeliveryID())
	assert.Equal(t, conf, j.Confirmation())
	assert.Equal(t, time.UTC, j.CreatedAt().Location())
	assert.True(t, at.Equal(j.CreatedAt()))
}

func TestNewDeliveryJob_Invalid(t *testing.T) {
	now := time.Now()

	_, err := job.NewDeliveryJob("", booking.Confirmation{DeliveryID: "d"}, now)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = job.NewDeliveryJob("order:1", booking.Confirmation{TrackingURL: "https://t"}, now)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Contains(t, err.Error(), "delivery id")

	_, err = job.NewDeliveryJob("order:1", booking.Confirmation{DeliveryID: "d"}, time.Time{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestDeliveryJob_NotConstructed(t *testing.T) {
	var j job.DeliveryJob
	require.ErrorIs(t, j.Validate(), job.ErrDeliveryJobIsNotConstructed)

	var nilJob *job.DeliveryJob
	require.ErrorIs(t, nilJob.Validate(), job.ErrDeliveryJobIsNotConstructed)
}

func TestRestoreDeliveryJob(t *testing.T) {
	id := uuid.New()
	at := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	j := job.RestoreDeliveryJob(id, "fulfillment_order:7", "d-7", "", "", at)

	require.NoError(t, j.Validate())
	assert.Equal(t, id, j.ID())
	assert.Equal(t, "d-7", j.Confirmation().TrackingNumber())
}

func TestStatus(t *testing.T) {
	testCases := []struct {
		status job.Status
		str    string
		valid  bool
	}{
		{job.StatusPending, "pending", true},
		{job.StatusCommitted, "committed", true},
		{job.StatusUnknown, "unknown", false},
		{job.Status(99), "unknown", false},
	}
	for _, tc := range testCases {
		t.Run(tc.str, func(t *testing.T) {
			assert.Equal(t, tc.str, tc.status.String())
			if tc.valid {
				require.NoError(t, tc.status.Validate())
				parsed, err := job.ParseStatus(tc.str)
				require.NoError(t, err)
				assert.Equal(t, tc.status, parsed)
			} else {
				require.ErrorIs(t, tc.status.Validate(), errs.ErrValueIsInvalid)
			}
		})
	}

	_, err := job.ParseStatus("unknown")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestReservation_IsStale(t *testing.T) {
	reservedAt := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	pending := job.Reservation{Key: "order:1", Status: job.StatusPending, ReservedAt: reservedAt}

	assert.False(t, pending.IsStale(reservedAt.Add(9*time.Minute), job.DefaultPendingTTL))
	assert.True(t, pending.IsStale(reservedAt.Add(10*time.Minute), job.DefaultPendingTTL))

	committed := pending
	committed.Status = job.StatusCommitted
	assert.False(t, committed.IsStale(reservedAt.Add(time.Hour), job.DefaultPendingTTL))
}
