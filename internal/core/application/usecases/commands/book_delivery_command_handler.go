package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"courierbridge/internal/core/domain/model/fulfillment"
	"courierbridge/internal/core/domain/model/job"
	"courierbridge/internal/core/domain/model/pickup"
	"courierbridge/internal/core/domain/services"
	"courierbridge/internal/core/ports"
	"courierbridge/internal/metrics"
)

// ErrBookingFailed is returned when no courier job could be created. The
// webhook caller is told to retry.
var ErrBookingFailed = errors.New("courier booking failed")

// OutboundTimeout bounds every call to a remote system.
const OutboundTimeout = 8 * time.Second

// TrackingCompany is the carrier name shown next to the tracking number.
const TrackingCompany = "Metrobi"

// Outcome is how a booking request was resolved without error.
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	// OutcomeNotSelected means the buyer chose another shipping method.
	OutcomeNotSelected
	// OutcomeAlreadyBooked means another delivery of the same event holds the key.
	OutcomeAlreadyBooked
	// OutcomeBooked means a courier job was created by this call.
	OutcomeBooked
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNotSelected:
		return "not_selected"
	case OutcomeAlreadyBooked:
		return "already_booked"
	case OutcomeBooked:
		return "booked"
	default:
		return "unknown"
	}
}

// BookingPolicy holds the knobs of the booking flow.
type BookingPolicy struct {
	Matcher         fulfillment.CourierMatcher
	NotifyCustomer  bool
	TrackingCompany string
	// Timeout bounds each outbound call; zero means OutboundTimeout.
	Timeout time.Duration
}

// DefaultBookingPolicy matches "metrobi" shipping lines and notifies the buyer.
func DefaultBookingPolicy() BookingPolicy {
	return BookingPolicy{
		Matcher:         fulfillment.NewCourierMatcher("metrobi", "METROBI"),
		NotifyCustomer:  true,
		TrackingCompany: TrackingCompany,
		Timeout:         OutboundTimeout,
	}
}

// BookDeliveryCommandHandler books a courier for an order at most once and
// writes the tracking details back to the commerce platform.
//
// The reservation is taken before the courier is called. When the courier
// definitively rejects the request the reservation is released; when the call
// times out or fails in transit it stays pending until the store's TTL, since
// the courier may have created the job anyway.
type BookDeliveryCommandHandler struct {
	store     ports.ReservationStore
	courier   ports.CourierGateway
	commerce  ports.CommerceGateway
	builder   services.BookingRequestBuilder
	scheduler *pickup.Scheduler
	policy    BookingPolicy
	clock     func() time.Time
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

func NewBookDeliveryCommandHandler(
	store ports.ReservationStore,
	courier ports.CourierGateway,
	commerce ports.CommerceGateway,
	builder services.BookingRequestBuilder,
	scheduler *pickup.Scheduler,
	policy BookingPolicy,
	m *metrics.Metrics,
	logger *slog.Logger,
) *BookDeliveryCommandHandler {
	if policy.Timeout <= 0 {
		policy.Timeout = OutboundTimeout
	}
	if policy.TrackingCompany == "" {
		policy.TrackingCompany = TrackingCompany
	}
	return &BookDeliveryCommandHandler{
		store:     store,
		courier:   courier,
		commerce:  commerce,
		builder:   builder,
		scheduler: scheduler,
		policy:    policy,
		clock:     time.Now,
		metrics:   m,
		logger:    logger.With("component", "book_delivery"),
	}
}

// Handle runs the booking flow. Errors wrap ErrBookingFailed unless the
// reservation store itself failed.
func (h *BookDeliveryCommandHandler) Handle(ctx context.Context, cmd BookDeliveryCommand) (Outcome, error) {
	if err := cmd.Validate(); err != nil {
		return OutcomeUnknown, err
	}

	ev := cmd.Event()
	key := ev.Key()
	logger := h.logger.With("key", key, "order", ev.Reference(), "trigger", ev.Trigger.String())

	if !h.policy.Matcher.Selected(ev.Order) {
		logger.DebugContext(ctx, "Courier not selected for order")
		h.metrics.ObserveBooking(metrics.OutcomeNotSelected)
		return OutcomeNotSelected, nil
	}

	reserved, err := h.store.TryReserve(ctx, key)
	if err != nil {
		return OutcomeUnknown, fmt.Errorf("reserve %s: %w", key, err)
	}
	if !reserved {
		logger.InfoContext(ctx, "Delivery already booked or in progress, skipping")
		h.metrics.ObserveBooking(metrics.OutcomeDuplicate)
		return OutcomeAlreadyBooked, nil
	}

	slot := h.scheduler.Next()
	req, err := h.builder.Build(ev, slot)
	if err != nil {
		h.release(ctx, logger, key)
		h.metrics.ObserveBooking(metrics.OutcomeFailed)
		return OutcomeUnknown, fmt.Errorf("%w: %w", ErrBookingFailed, err)
	}

	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.policy.Timeout)
	confirmation, err := h.courier.CreateDelivery(callCtx, req)
	cancel()
	if err != nil {
		if errors.Is(err, ports.ErrCourierRejected) {
			h.release(ctx, logger, key)
		}
		logger.ErrorContext(ctx, "Courier delivery creation failed", "error", err)
		h.metrics.ObserveBooking(metrics.OutcomeFailed)
		return OutcomeUnknown, fmt.Errorf("%w: %w", ErrBookingFailed, err)
	}

	deliveryJob, err := job.NewDeliveryJob(key, confirmation, h.clock())
	if err != nil {
		logger.ErrorContext(ctx, "Courier confirmation unusable, reservation left pending", "error", err)
		h.metrics.ObserveBooking(metrics.OutcomeFailed)
		return OutcomeUnknown, fmt.Errorf("%w: %w", ErrBookingFailed, err)
	}

	logger = logger.With("delivery_id", deliveryJob.DeliveryID())
	if err = h.store.Record(context.WithoutCancel(ctx), deliveryJob); err != nil {
		// The courier job exists; failing the webhook would only invite a duplicate.
		logger.ErrorContext(ctx, "Failed to record booked delivery", "error", err)
	}

	logger.InfoContext(ctx, "Courier delivery booked", "pickup", slot.String(), "tracking_url", deliveryJob.TrackingURL())
	h.metrics.ObserveBooking(metrics.OutcomeBooked)

	h.pushTracking(ctx, logger, ev, deliveryJob)
	return OutcomeBooked, nil
}

func (h *BookDeliveryCommandHandler) release(ctx context.Context, logger *slog.Logger, key string) {
	if err := h.store.Release(context.WithoutCancel(ctx), key); err != nil {
		logger.ErrorContext(ctx, "Failed to release reservation", "error", err)
	}
}

// pushTracking is best effort: every failure is logged and swallowed.
func (h *BookDeliveryCommandHandler) pushTracking(ctx context.Context, logger *slog.Logger, ev fulfillment.Event, deliveryJob *job.DeliveryJob) {
	detached := context.WithoutCancel(ctx)

	var fos []fulfillment.FulfillmentOrder
	if ev.FulfillmentOrder != nil {
		fos = []fulfillment.FulfillmentOrder{*ev.FulfillmentOrder}
	} else {
		listCtx, cancel := context.WithTimeout(detached, h.policy.Timeout)
		list, err := h.commerce.ListFulfillmentOrders(listCtx, ev.Order.ID)
		cancel()
		if err != nil {
			logger.WarnContext(ctx, "Could not read fulfillment orders, tracking not pushed", "error", err)
			h.metrics.ObserveTrackingPush(metrics.OutcomeFailed)
			return
		}
		fos = list
	}

	update, err := fulfillment.NewTrackingUpdate(
		fos,
		deliveryJob.Confirmation().TrackingNumber(),
		deliveryJob.TrackingURL(),
		h.policy.TrackingCompany,
		h.policy.NotifyCustomer,
	)
	if err != nil {
		logger.WarnContext(ctx, "Nothing to fulfill, tracking not pushed", "error", err)
		h.metrics.ObserveTrackingPush(metrics.OutcomeFailed)
		return
	}

	createCtx, cancel := context.WithTimeout(detached, h.policy.Timeout)
	defer cancel()
	fulfillmentID, err := h.commerce.CreateFulfillment(createCtx, update)
	if err != nil {
		logger.WarnContext(ctx, "Failed to push tracking to commerce platform", "error", err)
		h.metrics.ObserveTrackingPush(metrics.OutcomeFailed)
		return
	}

	logger.InfoContext(ctx, "Tracking pushed to commerce platform", "fulfillment_id", fulfillmentID)
	h.metrics.ObserveTrackingPush(metrics.OutcomeSucceeded)
}
