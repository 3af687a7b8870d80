package queries_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"courierbridge/internal/core/domain/model/booking"
	"courierbridge/internal/core/domain/model/job"
	"courierbridge/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeCourier records estimate requests and answers through estimate.
type fakeCourier struct {
	mu       sync.Mutex
	requests []ports.RateEstimateRequest
	perSlot  bool
	estimate func(ctx context.Context) (decimal.Decimal, error)
}

func (f *fakeCourier) EstimateRate(ctx context.Context, req ports.RateEstimateRequest) (decimal.Decimal, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	return f.estimate(ctx)
}

func (f *fakeCourier) CreateDelivery(context.Context, booking.Request) (booking.Confirmation, error) {
	panic("not used by queries")
}

func (f *fakeCourier) QuotesPerPickupTime() bool { return f.perSlot }

func (f *fakeCourier) calls() []ports.RateEstimateRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ports.RateEstimateRequest(nil), f.requests...)
}

func priceOf(s string) func(context.Context) (decimal.Decimal, error) {
	return func(context.Context) (decimal.Decimal, error) {
		return decimal.RequireFromString(s), nil
	}
}

type MockReservationStore struct{ mock.Mock }

func (m *MockReservationStore) TryReserve(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockReservationStore) Record(ctx context.Context, j *job.DeliveryJob) error {
	args := m.Called(ctx, j)
	return args.Error(0)
}

func (m *MockReservationStore) Release(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockReservationStore) Lookup(ctx context.Context, key string) (job.Reservation, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(job.Reservation), args.Error(1)
}

func (m *MockReservationStore) ExpirePending(ctx context.Context, before time.Time) (int, error) {
	args := m.Called(ctx, before)
	return args.Int(0), args.Error(1)
}
