// Package redisstore keeps idempotency reservations in Redis. Pending
// reservations carry a native TTL so a crashed booking frees its key without
// a sweeper; committed reservations never expire.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"courierbridge/internal/core/domain/model/job"
	"courierbridge/internal/core/ports"
	"courierbridge/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces reservation keys.
const DefaultKeyPrefix = "courierbridge:reservation:"

type record struct {
	Status       string     `json:"status"`
	ReservedAt   time.Time  `json:"reserved_at"`
	JobID        *uuid.UUID `json:"job_id,omitempty"`
	DeliveryID   string     `json:"delivery_id,omitempty"`
	TrackingURL  string     `json:"tracking_url,omitempty"`
	TrackingCode string     `json:"tracking_code,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}

// ReservationStore implements ports.ReservationStore on a Redis client.
type ReservationStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

var _ ports.ReservationStore = (*ReservationStore)(nil)

// NewReservationStore creates a store. A non-positive ttl means
// job.DefaultPendingTTL; an empty prefix means DefaultKeyPrefix.
func NewReservationStore(client redis.UniversalClient, prefix string, ttl time.Duration, now func() time.Time) *ReservationStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	if ttl <= 0 {
		ttl = job.DefaultPendingTTL
	}
	if now == nil {
		now = time.Now
	}
	return &ReservationStore{client: client, prefix: prefix, ttl: ttl, now: now}
}

func (s *ReservationStore) redisKey(key string) string {
	return s.prefix + key
}

func (s *ReservationStore) TryReserve(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, errs.NewValueIsRequiredError("key")
	}

	payload, err := json.Marshal(record{
		Status:     job.StatusPending.String(),
		ReservedAt: s.now().UTC(),
	})
	if err != nil {
		return false, err
	}
	return s.client.SetNX(ctx, s.redisKey(key), payload, s.ttl).Result()
}

// Record commits key with no expiry. The original reservation time is kept
// when the pending entry is still present.
func (s *ReservationStore) Record(ctx context.Context, j *job.DeliveryJob) error {
	if err := j.Validate(); err != nil {
		return err
	}

	rk := s.redisKey(j.Key())
	id := j.ID()
	createdAt := j.CreatedAt()
	rec := record{
		Status:       job.StatusCommitted.String(),
		ReservedAt:   createdAt,
		JobID:        &id,
		DeliveryID:   j.DeliveryID(),
		TrackingURL:  j.TrackingURL(),
		TrackingCode: j.TrackingCode(),
		CreatedAt:    &createdAt,
	}
	if existing, err := s.get(ctx, rk); err == nil {
		rec.ReservedAt = existing.ReservedAt
	} else if !errors.Is(err, redis.Nil) {
		return err
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, rk, payload, 0).Err()
}

// Release deletes key only while it is still pending. WATCH makes the check
// and the delete atomic against a concurrent Record.
func (s *ReservationStore) Release(ctx context.Context, key string) error {
	rk := s.redisKey(key)
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		_, err := s.deleteIfPending(ctx, tx, rk, time.Time{})
		return err
	}, rk)
	if errors.Is(err, redis.TxFailedErr) {
		// The entry changed under us; whatever it is now is not ours to drop.
		return nil
	}
	return err
}

// Lookup maps a missing key, including one whose TTL ran out, to
// errs.ObjectNotFoundError.
func (s *ReservationStore) Lookup(ctx context.Context, key string) (job.Reservation, error) {
	rec, err := s.get(ctx, s.redisKey(key))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return job.Reservation{}, errs.NewObjectNotFoundError("key", key)
		}
		return job.Reservation{}, err
	}
	return toDomain(key, rec)
}

// ExpirePending scans the key space and drops pending entries reserved before
// before. Native TTLs normally get there first, so the count is usually zero.
func (s *ReservationStore) ExpirePending(ctx context.Context, before time.Time) (int, error) {
	expired := 0
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		rk := iter.Val()
		dropped := false
		err := s.client.Watch(ctx, func(tx *redis.Tx) error {
			var err error
			dropped, err = s.deleteIfPending(ctx, tx, rk, before)
			return err
		}, rk)
		if err != nil && !errors.Is(err, redis.TxFailedErr) {
			return expired, err
		}
		if dropped && err == nil {
			expired++
		}
	}
	if err := iter.Err(); err != nil {
		return expired, err
	}
	return expired, nil
}

// deleteIfPending removes rk inside tx when it is pending and, for a non-zero
// before, was reserved earlier than before.
func (s *ReservationStore) deleteIfPending(ctx context.Context, tx *redis.Tx, rk string, before time.Time) (bool, error) {
	raw, err := tx.Get(ctx, rk).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return false, err
	}
	if rec.Status != job.StatusPending.String() {
		return false, nil
	}
	if !before.IsZero() && !rec.ReservedAt.Before(before) {
		return false, nil
	}

	_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, rk)
		return nil
	})
	return err == nil, err
}

func (s *ReservationStore) get(ctx context.Context, rk string) (record, error) {
	raw, err := s.client.Get(ctx, rk).Bytes()
	if err != nil {
		return record{}, err
	}
	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return record{}, err
	}
	return rec, nil
}

func toDomain(key string, rec record) (job.Reservation, error) {
	status, err := job.ParseStatus(rec.Status)
	if err != nil {
		return job.Reservation{}, err
	}
	res := job.Reservation{Key: key, Status: status, ReservedAt: rec.ReservedAt.UTC()}
	if status == job.StatusCommitted && rec.JobID != nil {
		createdAt := rec.ReservedAt
		if rec.CreatedAt != nil {
			createdAt = *rec.CreatedAt
		}
		res.Job = job.RestoreDeliveryJob(*rec.JobID, key, rec.DeliveryID, rec.TrackingURL, rec.TrackingCode, createdAt)
	}
	return res, nil
}

// NewClient connects to the Redis server at url, e.g. redis://localhost:6379/0.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}
