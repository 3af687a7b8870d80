package commands_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"courierbridge/internal/core/application/usecases/commands"
	"courierbridge/internal/core/domain/model/booking"
	"courierbridge/internal/core/domain/model/fulfillment"
	"courierbridge/internal/core/domain/model/job"
	"courierbridge/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
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

type MockCourierGateway struct{ mock.Mock }

func (m *MockCourierGateway) EstimateRate(ctx context.Context, req ports.RateEstimateRequest) (decimal.Decimal, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockCourierGateway) CreateDelivery(ctx context.Context, req booking.Request) (booking.Confirmation, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(booking.Confirmation), args.Error(1)
}

func (m *MockCourierGateway) QuotesPerPickupTime() bool { return false }

type MockCommerceGateway struct{ mock.Mock }

func (m *MockCommerceGateway) GetOrder(ctx context.Context, orderID int64) (fulfillment.Order, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(fulfillment.Order), args.Error(1)
}

func (m *MockCommerceGateway) GetFulfillmentOrder(ctx context.Context, id int64) (fulfillment.FulfillmentOrder, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(fulfillment.FulfillmentOrder), args.Error(1)
}

func (m *MockCommerceGateway) ListFulfillmentOrders(ctx context.Context, orderID int64) ([]fulfillment.FulfillmentOrder, error) {
	args := m.Called(ctx, orderID)
	fos, _ := args.Get(0).([]fulfillment.FulfillmentOrder)
	return fos, args.Error(1)
}

func (m *MockCommerceGateway) CreateFulfillment(ctx context.Context, update fulfillment.TrackingUpdate) (int64, error) {
	args := m.Called(ctx, update)
	return args.Get(0).(int64), args.Error(1)
}

type MockDeliveryBooker struct{ mock.Mock }

func (m *MockDeliveryBooker) Handle(ctx context.Context, cmd commands.BookDeliveryCommand) (commands.Outcome, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.Outcome), args.Error(1)
}
