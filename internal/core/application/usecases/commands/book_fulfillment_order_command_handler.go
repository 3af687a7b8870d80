package commands

import (
	"context"
	"fmt"
	"time"

	"courierbridge/internal/core/domain/model/fulfillment"
	"courierbridge/internal/core/ports"
)

// DeliveryBooker runs the booking flow for a normalized event.
type DeliveryBooker interface {
	Handle(ctx context.Context, cmd BookDeliveryCommand) (Outcome, error)
}

// BookFulfillmentOrderCommandHandler resolves a fulfillment order and its
// order from the commerce platform, then books under the fulfillment-order key.
type BookFulfillmentOrderCommandHandler struct {
	commerce ports.CommerceGateway
	booker   DeliveryBooker
	timeout  time.Duration
}

// NewBookFulfillmentOrderCommandHandler wires the commerce lookups in front of
// booker. A non-positive timeout means OutboundTimeout for each lookup.
func NewBookFulfillmentOrderCommandHandler(
	commerce ports.CommerceGateway,
	booker DeliveryBooker,
	timeout time.Duration,
) BookFulfillmentOrderCommandHandler {
	if timeout <= 0 {
		timeout = OutboundTimeout
	}
	return BookFulfillmentOrderCommandHandler{commerce: commerce, booker: booker, timeout: timeout}
}

func (h BookFulfillmentOrderCommandHandler) Handle(ctx context.Context, cmd BookFulfillmentOrderCommand) (Outcome, error) {
	if err := cmd.Validate(); err != nil {
		return OutcomeUnknown, err
	}

	detached := context.WithoutCancel(ctx)

	foCtx, cancel := context.WithTimeout(detached, h.timeout)
	fo, err := h.commerce.GetFulfillmentOrder(foCtx, cmd.FulfillmentOrderID())
	cancel()
	if err != nil {
		return OutcomeUnknown, fmt.Errorf("get fulfillment order %d: %w", cmd.FulfillmentOrderID(), err)
	}

	orderCtx, cancel := context.WithTimeout(detached, h.timeout)
	order, err := h.commerce.GetOrder(orderCtx, fo.OrderID)
	cancel()
	if err != nil {
		return OutcomeUnknown, fmt.Errorf("get order %d: %w", fo.OrderID, err)
	}

	bookCmd, err := NewBookDeliveryCommand(fulfillment.NewFulfillmentOrderEvent(fo, order))
	if err != nil {
		return OutcomeUnknown, err
	}
	return h.booker.Handle(ctx, bookCmd)
}
