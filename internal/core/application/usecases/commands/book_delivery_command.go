package commands

import (
	"errors"

	"courierbridge/internal/core/domain/model/fulfillment"
	"courierbridge/internal/pkg/errs"
	"courierbridge/internal/pkg/guard"
)

var ErrBookDeliveryCommandIsNotConstructed = errors.New(
	"BookDeliveryCommand must be created via NewBookDeliveryCommand constructor",
)

// BookDeliveryCommand asks for a courier to be booked for a normalized
// fulfillment event, at most once per event key.
//
// Example:
//
//	cmd, err := NewBookDeliveryCommand(fulfillment.NewOrderEvent(order))
//	if err != nil {
//	    return fmt.Errorf("invalid order webhook: %w", err)
//	}
//
//	outcome, err := handler.Handle(ctx, cmd)
type BookDeliveryCommand struct { //nolint:recvcheck //using for validation
	event fulfillment.Event

	guard guard.ConstructorGuard
}

// NewBookDeliveryCommand validates that ev names an order and a known trigger.
func NewBookDeliveryCommand(ev fulfillment.Event) (BookDeliveryCommand, error) {
	cmd := BookDeliveryCommand{guard: guard.NewConstructorGuard()}

	if err := cmd.setEvent(ev); err != nil {
		return BookDeliveryCommand{}, err
	}
	return cmd, nil
}

func (c BookDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrBookDeliveryCommandIsNotConstructed)
}

func (c BookDeliveryCommand) Event() fulfillment.Event {
	return c.event
}

func (c *BookDeliveryCommand) setEvent(ev fulfillment.Event) error {
	var triggerErr, foErr error
	switch ev.Trigger {
	case fulfillment.TriggerOrderCreated:
	case fulfillment.TriggerFulfillmentOrderCreated:
		if ev.FulfillmentOrder == nil || ev.FulfillmentOrder.ID <= 0 {
			foErr = errs.NewValueIsRequiredError("fulfillment order id")
		}
	default:
		triggerErr = errs.NewValueIsInvalidError("trigger " + ev.Trigger.String())
	}

	var orderErr error
	if ev.Order.ID <= 0 {
		orderErr = errs.NewValueIsRequiredError("order id")
	}

	if err := errors.Join(triggerErr, foErr, orderErr); err != nil {
		return err
	}
	c.event = ev
	return nil
}
