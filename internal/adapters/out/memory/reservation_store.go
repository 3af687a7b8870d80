// Package memory provides an in-process ReservationStore. It is the default
// store: reservations live as long as the process.
package memory

import (
	"context"
	"sync"
	"time"

	"courierbridge/internal/core/domain/model/job"
	"courierbridge/internal/pkg/errs"
)

// ReservationStore is a mutex-guarded map of key to reservation.
type ReservationStore struct {
	mu      sync.Mutex
	entries map[string]job.Reservation
	ttl     time.Duration
	now     func() time.Time
}

// NewReservationStore creates an empty store whose pending reservations can be
// reclaimed after ttl. A non-positive ttl means job.DefaultPendingTTL; a nil
// clock means time.Now.
func NewReservationStore(ttl time.Duration, now func() time.Time) *ReservationStore {
	if ttl <= 0 {
		ttl = job.DefaultPendingTTL
	}
	if now == nil {
		now = time.Now
	}
	return &ReservationStore{
		entries: make(map[string]job.Reservation),
		ttl:     ttl,
		now:     now,
	}
}

func (s *ReservationStore) TryReserve(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if existing, ok := s.entries[key]; ok && !existing.IsStale(now, s.ttl) {
		return false, nil
	}
	s.entries[key] = job.Reservation{Key: key, Status: job.StatusPending, ReservedAt: now}
	return true, nil
}

func (s *ReservationStore) Record(_ context.Context, j *job.DeliveryJob) error {
	if err := j.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	reservedAt := j.CreatedAt()
	if existing, ok := s.entries[j.Key()]; ok {
		reservedAt = existing.ReservedAt
	}
	s.entries[j.Key()] = job.Reservation{
		Key:        j.Key(),
		Status:     job.StatusCommitted,
		ReservedAt: reservedAt,
		Job:        j,
	}
	return nil
}

func (s *ReservationStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.entries[key]; ok && existing.Status == job.StatusPending {
		delete(s.entries, key)
	}
	return nil
}

func (s *ReservationStore) Lookup(_ context.Context, key string) (job.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.entries[key]
	if !ok {
		return job.Reservation{}, errs.NewObjectNotFoundError("key", key)
	}
	return res, nil
}

func (s *ReservationStore) ExpirePending(_ context.Context, before time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for key, res := range s.entries {
		if res.Status == job.StatusPending && res.ReservedAt.Before(before) {
			delete(s.entries, key)
			n++
		}
	}
	return n, nil
}
