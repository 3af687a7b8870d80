package memory_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"courierbridge/internal/adapters/out/memory"
	"courierbridge/internal/core/domain/model/booking"
	"courierbridge/internal/core/domain/model/job"
	"courierbridge/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newClock() *clock {
	return &clock{t: time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)}
}

func TestReservationStore_ExactlyOneWinner(t *testing.T) {
	store := memory.NewReservationStore(0, nil)
	ctx := t.Context()

	var wins atomic.Int32
	var wg sync.WaitGroup
	for range 64 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := store.TryReserve(ctx, "order:1")
			assert.NoError(t, err)
			if ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}

func TestReservationStore_RecordAndLookup(t *testing.T) {
	c := newClock()
	store := memory.NewReservationStore(time.Minute, c.now)
	ctx := t.Context()

	ok, err := store.TryReserve(ctx, "order:1")
	require.NoError(t, err)
	require.True(t, ok)

	res, err := store.Lookup(ctx, "order:1")
	require.NoError(t, err)
	assert.Equal(t, job.StatusPending, res.Status)
	assert.Nil(t, res.Job)

	j, err := job.NewDeliveryJob("order:1", booking.Confirmation{DeliveryID: "d-1"}, c.now().Add(time.Second))
	require.NoError(t, err)
	require.NoError(t, store.Record(ctx, j))

	res, err = store.Lookup(ctx, "order:1")
	require.NoError(t, err)
	assert.Equal(t, job.StatusCommitted, res.Status)
	assert.Equal(t, c.now(), res.ReservedAt)
	assert.Same(t, j, res.Job)

	c.advance(time.Hour)
	ok, err = store.TryReserve(ctx, "order:1")
	require.NoError(t, err)
	assert.False(t, ok, "committed reservations never expire")

	require.NoError(t, store.Release(ctx, "order:1"))
	_, err = store.Lookup(ctx, "order:1")
	require.NoError(t, err, "release leaves committed reservations alone")
}

func TestReservationStore_StalePendingIsReclaimed(t *testing.T) {
	c := newClock()
	store := memory.NewReservationStore(10*time.Minute, c.now)
	ctx := t.Context()

	ok, _ := store.TryReserve(ctx, "order:1")
	require.True(t, ok)

	c.advance(9 * time.Minute)
	ok, _ = store.TryReserve(ctx, "order:1")
	assert.False(t, ok)

	c.advance(time.Minute)
	ok, _ = store.TryReserve(ctx, "order:1")
	assert.True(t, ok)
}

func TestReservationStore_Release(t *testing.T) {
	store := memory.NewReservationStore(0, nil)
	ctx := t.Context()

	ok, _ := store.TryReserve(ctx, "order:1")
	require.True(t, ok)
	require.NoError(t, store.Release(ctx, "order:1"))

	_, err := store.Lookup(ctx, "order:1")
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	ok, _ = store.TryReserve(ctx, "order:1")
	assert.True(t, ok)
}

func TestReservationStore_ExpirePending(t *testing.T) {
	c := newClock()
	store := memory.NewReservationStore(time.Hour, c.now)
	ctx := t.Context()

	_, _ = store.TryReserve(ctx, "order:old")
	c.advance(30 * time.Minute)
	_, _ = store.TryReserve(ctx, "order:new")
	_, _ = store.TryReserve(ctx, "order:done")
	j, _ := job.NewDeliveryJob("order:done", booking.Confirmation{DeliveryID: "d"}, c.now())
	require.NoError(t, store.Record(ctx, j))

	n, err := store.ExpirePending(ctx, c.now().Add(-10*time.Minute))

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	_, err = store.Lookup(ctx, "order:old")
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	_, err = store.Lookup(ctx, "order:new")
	require.NoError(t, err)
	_, err = store.Lookup(ctx, "order:done")
	require.NoError(t, err)
}

func TestReservationStore_RecordRejectsUnconstructedJob(t *testing.T) {
	store := memory.NewReservationStore(0, nil)

	err := store.Record(t.Context(), &job.DeliveryJob{})

	require.ErrorIs(t, err, job.ErrDeliveryJobIsNotConstructed)
}
