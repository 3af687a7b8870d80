package job

import "time"

// DefaultPendingTTL is how long a pending reservation blocks other attempts.
// After it elapses the key can be reserved again, so a crash between
// reserving and recording does not suppress bookings forever.
const DefaultPendingTTL = 10 * time.Minute

// Reservation is the idempotency store's view of one key.
type Reservation struct {
	Key        string
	Status     Status
	ReservedAt time.Time
	// Job is set once Status is StatusCommitted.
	Job *DeliveryJob
}

// IsStale reports whether a pending reservation has outlived ttl at now.
// Committed reservations never go stale.
func (r Reservation) IsStale(now time.Time, ttl time.Duration) bool {
	return r.Status == StatusPending && !now.Before(r.ReservedAt.Add(ttl))
}
