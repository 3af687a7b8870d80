// Package ports defines the contracts between the booking core and its
// infrastructure: the idempotency store and the two remote gateways.
package ports

import (
	"context"
	"time"

	"courierbridge/internal/core/domain/model/job"
)

// ReservationStore guarantees at most one courier booking per key.
// Implementations must make TryReserve atomic across concurrent callers.
type ReservationStore interface {
	// TryReserve marks key as pending and reports true only to the caller that
	// created the reservation. A pending reservation older than the store's TTL
	// is reclaimed and counts as created.
	TryReserve(ctx context.Context, key string) (bool, error)

	// Record commits the reservation for j.Key() with the booked job.
	Record(ctx context.Context, j *job.DeliveryJob) error

	// Release drops a pending reservation so a later delivery of the same
	// webhook can book again. Committed reservations are left untouched.
	Release(ctx context.Context, key string) error

	// Lookup returns the reservation for key, or an errs.ObjectNotFoundError.
	Lookup(ctx context.Context, key string) (job.Reservation, error)

	// ExpirePending removes pending reservations made before the given time
	// and returns how many were removed.
	ExpirePending(ctx context.Context, before time.Time) (int, error)
}
