package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"courierbridge/internal/adapters/out/memory"
	"courierbridge/internal/core/application/usecases/commands"
	"courierbridge/internal/core/domain/model/booking"
	"courierbridge/internal/core/domain/model/fulfillment"
	"courierbridge/internal/core/domain/model/job"
	"courierbridge/internal/core/domain/model/kernel"
	"courierbridge/internal/core/domain/model/pickup"
	"courierbridge/internal/core/domain/services"
	"courierbridge/internal/core/ports"
	"courierbridge/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var confirmation = booking.Confirmation{DeliveryID: "d-42", TrackingURL: "https://track.example/42", TrackingCode: "MB42"}

func selectedOrder() fulfillment.Order {
	return fulfillment.Order{
		ID:   1001,
		Name: "#1001",
		ShippingAddress: kernel.Address{
			Address1: "350 5th Ave", City: "New York", Province: "NY", PostalCode: "10118", Country: "US",
		},
		ShippingContact: kernel.Contact{Name: "Ada", Phone: "+12125550100"},
		ShippingLines:   []fulfillment.ShippingLine{{Title: "Metrobi Same Day"}},
	}
}

type fixture struct {
	store    ports.ReservationStore
	courier  *MockCourierGateway
	commerce *MockCommerceGateway
	metrics  *metrics.Metrics
	handler  *commands.BookDeliveryCommandHandler
}

func newFixture(store ports.ReservationStore) *fixture {
	f := &fixture{
		store:    store,
		courier:  new(MockCourierGateway),
		commerce: new(MockCommerceGateway),
		metrics:  metrics.New(),
	}
	scheduler := pickup.NewScheduler(time.UTC, func() time.Time {
		return time.Date(2026, 10, 21, 9, 0, 0, 0, time.UTC)
	})
	f.handler = commands.NewBookDeliveryCommandHandler(
		store,
		f.courier,
		f.commerce,
		services.NewBookingRequestBuilder(services.DefaultStoreProfile()),
		scheduler,
		commands.DefaultBookingPolicy(),
		f.metrics,
		discardLogger(),
	)
	return f
}

func orderCommand(t *testing.T, o fulfillment.Order) commands.BookDeliveryCommand {
	cmd, err := commands.NewBookDeliveryCommand(fulfillment.NewOrderEvent(o))
	require.NoError(t, err)
	return cmd
}

func TestBookDeliveryCommandHandler_NotSelected(t *testing.T) {
	store := new(MockReservationStore)
	f := newFixture(store)
	o := selectedOrder()
	o.ShippingLines = []fulfillment.ShippingLine{{Title: "UPS Ground", Code: "ups"}}

	outcome, err := f.handler.Handle(t.Context(), orderCommand(t, o))

	require.NoError(t, err)
	assert.Equal(t, commands.OutcomeNotSelected, outcome)
	store.AssertNotCalled(t, "TryReserve", mock.Anything, mock.Anything)
	f.courier.AssertNotCalled(t, "CreateDelivery", mock.Anything, mock.Anything)
}

func TestBookDeliveryCommandHandler_AlreadyReserved(t *testing.T) {
	store := new(MockReservationStore)
	store.On("TryReserve", mock.Anything, "order:1001").Return(false, nil).Once()
	f := newFixture(store)

	outcome, err := f.handler.Handle(t.Context(), orderCommand(t, selectedOrder()))

	require.NoError(t, err)
	assert.Equal(t, commands.OutcomeAlreadyBooked, outcome)
	f.courier.AssertNotCalled(t, "CreateDelivery", mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func TestBookDeliveryCommandHandler_ReserveError(t *testing.T) {
	store := new(MockReservationStore)
	store.On("TryReserve", mock.Anything, "order:1001").Return(false, errors.New("redis down")).Once()
	f := newFixture(store)

	_, err := f.handler.Handle(t.Context(), orderCommand(t, selectedOrder()))

	require.Error(t, err)
	assert.NotErrorIs(t, err, commands.ErrBookingFailed)
	f.courier.AssertNotCalled(t, "CreateDelivery", mock.Anything, mock.Anything)
}

func TestBookDeliveryCommandHandler_BooksAndPushesTracking(t *testing.T) {
	store := new(MockReservationStore)
	f := newFixture(store)
	fos := []fulfillment.FulfillmentOrder{
		{ID: 7, OrderID: 1001, Status: fulfillment.StatusOpen, LineItems: []fulfillment.LineItem{{ID: 70, FulfillableQuantity: 1}}},
		{ID: 8, OrderID: 1001, Status: "closed"},
	}

	mock.InOrder(
		store.On("TryReserve", mock.Anything, "order:1001").Return(true, nil).Once(),
		f.courier.On("CreateDelivery", mock.Anything, mock.MatchedBy(func(req booking.Request) bool {
			return req.Size == booking.SizeSUV &&
				req.Dropoff.Address.Line() == "350 5th Ave New York NY 10118" &&
				req.PickupSlot.String() == "2026-10-21 12:00" &&
				req.ExternalReference == "#1001"
		})).Return(confirmation, nil).Once(),
		store.On("Record", mock.Anything, mock.MatchedBy(func(j *job.DeliveryJob) bool {
			return j.Key() == "order:1001" && j.DeliveryID() == "d-42"
		})).Return(nil).Once(),
		f.commerce.On("ListFulfillmentOrders", mock.Anything, int64(1001)).Return(fos, nil).Once(),
		f.commerce.On("CreateFulfillment", mock.Anything, fulfillment.TrackingUpdate{
			Items: []fulfillment.FulfillmentOrderItems{
				{FulfillmentOrderID: 7, LineItems: []fulfillment.LineItem{{ID: 70, FulfillableQuantity: 1}}},
			},
			Number:         "MB42",
			URL:            "https://track.example/42",
			Company:        "Metrobi",
			NotifyCustomer: true,
		}).Return(int64(555), nil).Once(),
	)

	outcome, err := f.handler.Handle(t.Context(), orderCommand(t, selectedOrder()))

	require.NoError(t, err)
	assert.Equal(t, commands.OutcomeBooked, outcome)
	store.AssertExpectations(t)
	f.courier.AssertExpectations(t)
	f.commerce.AssertExpectations(t)
	assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.Bookings.WithLabelValues(metrics.OutcomeBooked)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.TrackingPushes.WithLabelValues(metrics.OutcomeSucceeded)), 0)
}

func TestBookDeliveryCommandHandler_FulfillmentOrderTriggerUsesItsFulfillmentOrder(t *testing.T) {
	store := new(MockReservationStore)
	f := newFixture(store)
	fo := fulfillment.FulfillmentOrder{ID: 7, OrderID: 1001, LineItems: []fulfillment.LineItem{{ID: 70, FulfillableQuantity: 2}}}

	store.On("TryReserve", mock.Anything, "fulfillment_order:7").Return(true, nil).Once()
	f.courier.On("CreateDelivery", mock.Anything, mock.Anything).Return(confirmation, nil).Once()
	store.On("Record", mock.Anything, mock.Anything).Return(nil).Once()
	f.commerce.On("CreateFulfillment", mock.Anything, mock.MatchedBy(func(u fulfillment.TrackingUpdate) bool {
		return len(u.Items) == 1 && u.Items[0].FulfillmentOrderID == 7
	})).Return(int64(1), nil).Once()

	cmd, err := commands.NewBookDeliveryCommand(fulfillment.NewFulfillmentOrderEvent(fo, selectedOrder()))
	require.NoError(t, err)
	outcome, err := f.handler.Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, commands.OutcomeBooked, outcome)
	f.commerce.AssertNotCalled(t, "ListFulfillmentOrders", mock.Anything, mock.Anything)
	f.commerce.AssertExpectations(t)
}

func TestBookDeliveryCommandHandler_CourierRejectedReleases(t *testing.T) {
	store := new(MockReservationStore)
	f := newFixture(store)
	rejected := errors.Join(ports.ErrCourierRejected, errors.New("status 422"))

	store.On("TryReserve", mock.Anything, "order:1001").Return(true, nil).Once()
	f.courier.On("CreateDelivery", mock.Anything, mock.Anything).Return(booking.Confirmation{}, rejected).Once()
	store.On("Release", mock.Anything, "order:1001").Return(nil).Once()

	_, err := f.handler.Handle(t.Context(), orderCommand(t, selectedOrder()))

	require.ErrorIs(t, err, commands.ErrBookingFailed)
	require.ErrorIs(t, err, ports.ErrCourierRejected)
	store.AssertExpectations(t)
	store.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestBookDeliveryCommandHandler_TransportFailureKeepsReservation(t *testing.T) {
	store := new(MockReservationStore)
	f := newFixture(store)

	store.On("TryReserve", mock.Anything, "order:1001").Return(true, nil).Once()
	f.courier.On("CreateDelivery", mock.Anything, mock.Anything).
		Return(booking.Confirmation{}, context.DeadlineExceeded).Once()

	_, err := f.handler.Handle(t.Context(), orderCommand(t, selectedOrder()))

	require.ErrorIs(t, err, commands.ErrBookingFailed)
	store.AssertNotCalled(t, "Release", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestBookDeliveryCommandHandler_ConfirmationWithoutDeliveryID(t *testing.T) {
	store := new(MockReservationStore)
	f := newFixture(store)

	store.On("TryReserve", mock.Anything, "order:1001").Return(true, nil).Once()
	f.courier.On("CreateDelivery", mock.Anything, mock.Anything).
		Return(booking.Confirmation{TrackingURL: "https://t"}, nil).Once()

	_, err := f.handler.Handle(t.Context(), orderCommand(t, selectedOrder()))

	require.ErrorIs(t, err, commands.ErrBookingFailed)
	store.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Release", mock.Anything, mock.Anything)
}

func TestBookDeliveryCommandHandler_UndeliverableOrderReleases(t *testing.T) {
	store := new(MockReservationStore)
	f := newFixture(store)
	o := selectedOrder()
	o.ShippingAddress = kernel.Address{}

	store.On("TryReserve", mock.Anything, "order:1001").Return(true, nil).Once()
	store.On("Release", mock.Anything, "order:1001").Return(nil).Once()

	_, err := f.handler.Handle(t.Context(), orderCommand(t, o))

	require.ErrorIs(t, err, commands.ErrBookingFailed)
	f.courier.AssertNotCalled(t, "CreateDelivery", mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func TestBookDeliveryCommandHandler_TrackingFailureStillBooked(t *testing.T) {
	testCases := []struct {
		name  string
		setup func(c *MockCommerceGateway)
	}{
		{"list fails", func(c *MockCommerceGateway) {
			c.On("ListFulfillmentOrders", mock.Anything, int64(1001)).Return(nil, errors.New("503")).Once()
		}},
		{"nothing fulfillable", func(c *MockCommerceGateway) {
			c.On("ListFulfillmentOrders", mock.Anything, int64(1001)).
				Return([]fulfillment.FulfillmentOrder{{ID: 7, Status: "closed"}}, nil).Once()
		}},
		{"create fails", func(c *MockCommerceGateway) {
			c.On("ListFulfillmentOrders", mock.Anything, int64(1001)).Return([]fulfillment.FulfillmentOrder{
				{ID: 7, LineItems: []fulfillment.LineItem{{ID: 70, FulfillableQuantity: 1}}},
			}, nil).Once()
			c.On("CreateFulfillment", mock.Anything, mock.Anything).Return(int64(0), errors.New("422")).Once()
		}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := new(MockReservationStore)
			f := newFixture(store)
			store.On("TryReserve", mock.Anything, "order:1001").Return(true, nil).Once()
			f.courier.On("CreateDelivery", mock.Anything, mock.Anything).Return(confirmation, nil).Once()
			store.On("Record", mock.Anything, mock.Anything).Return(nil).Once()
			tc.setup(f.commerce)

			outcome, err := f.handler.Handle(t.Context(), orderCommand(t, selectedOrder()))

			require.NoError(t, err)
			assert.Equal(t, commands.OutcomeBooked, outcome)
			f.commerce.AssertExpectations(t)
			assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.TrackingPushes.WithLabelValues(metrics.OutcomeFailed)), 0)
		})
	}
}

func TestBookDeliveryCommandHandler_DuplicateWebhookBooksOnce(t *testing.T) {
	store := memory.NewReservationStore(0, nil)
	f := newFixture(store)
	f.courier.On("CreateDelivery", mock.Anything, mock.Anything).Return(confirmation, nil).Once()
	f.commerce.On("ListFulfillmentOrders", mock.Anything, int64(1001)).Return([]fulfillment.FulfillmentOrder{}, nil).Once()

	first, err := f.handler.Handle(t.Context(), orderCommand(t, selectedOrder()))
	require.NoError(t, err)
	second, err := f.handler.Handle(t.Context(), orderCommand(t, selectedOrder()))
	require.NoError(t, err)

	assert.Equal(t, commands.OutcomeBooked, first)
	assert.Equal(t, commands.OutcomeAlreadyBooked, second)
	f.courier.AssertNumberOfCalls(t, "CreateDelivery", 1)

	res, err := store.Lookup(t.Context(), "order:1001")
	require.NoError(t, err)
	assert.Equal(t, job.StatusCommitted, res.Status)
	assert.Equal(t, "d-42", res.Job.DeliveryID())
}

func TestBookDeliveryCommandHandler_RejectedThenRetried(t *testing.T) {
	store := memory.NewReservationStore(0, nil)
	f := newFixture(store)
	f.courier.On("CreateDelivery", mock.Anything, mock.Anything).
		Return(booking.Confirmation{}, ports.ErrCourierRejected).Once()
	f.courier.On("CreateDelivery", mock.Anything, mock.Anything).Return(confirmation, nil).Once()
	f.commerce.On("ListFulfillmentOrders", mock.Anything, int64(1001)).Return([]fulfillment.FulfillmentOrder{}, nil).Once()

	_, err := f.handler.Handle(t.Context(), orderCommand(t, selectedOrder()))
	require.ErrorIs(t, err, commands.ErrBookingFailed)

	outcome, err := f.handler.Handle(t.Context(), orderCommand(t, selectedOrder()))
	require.NoError(t, err)
	assert.Equal(t, commands.OutcomeBooked, outcome)
}

func TestBookDeliveryCommandHandler_NotConstructed(t *testing.T) {
	f := newFixture(new(MockReservationStore))

	_, err := f.handler.Handle(t.Context(), commands.BookDeliveryCommand{})

	require.ErrorIs(t, err, commands.ErrBookDeliveryCommandIsNotConstructed)
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "booked", commands.OutcomeBooked.String())
	assert.Equal(t, "already_booked", commands.OutcomeAlreadyBooked.String())
	assert.Equal(t, "not_selected", commands.OutcomeNotSelected.String())
	assert.Equal(t, "unknown", commands.Outcome(42).String())
}
