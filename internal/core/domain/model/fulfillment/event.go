package fulfillment

import (
	"fmt"
	"strconv"
)

// Trigger names the webhook that started a booking.
type Trigger int

const (
	TriggerUnknown Trigger = iota
	TriggerOrderCreated
	TriggerFulfillmentOrderCreated
)

func (t Trigger) String() string {
	switch t {
	case TriggerOrderCreated:
		return "orders/create"
	case TriggerFulfillmentOrderCreated:
		return "fulfillment_orders/create"
	default:
		return "unknown"
	}
}

// Event is the normalized booking input. Whatever the trigger, the booking
// flow only sees the order and, when known, the fulfillment order.
type Event struct {
	Trigger          Trigger
	Order            Order
	FulfillmentOrder *FulfillmentOrder
}

// NewOrderEvent wraps an order-creation webhook.
func NewOrderEvent(o Order) Event {
	return Event{Trigger: TriggerOrderCreated, Order: o}
}

// NewFulfillmentOrderEvent wraps a fulfillment-order-creation webhook after
// its order has been resolved.
func NewFulfillmentOrderEvent(fo FulfillmentOrder, o Order) Event {
	return Event{Trigger: TriggerFulfillmentOrderCreated, Order: o, FulfillmentOrder: &fo}
}

// Key is the idempotency key: one courier booking per order, or per
// fulfillment order when that is what triggered the booking.
//
// The two key spaces never collide. A shop subscribed to both
// orders/create and fulfillment_orders/create gets one booking per
// trigger, so the same purchase is booked twice; subscribe to one.
func (e Event) Key() string {
	if e.Trigger == TriggerFulfillmentOrderCreated && e.FulfillmentOrder != nil {
		return "fulfillment_order:" + strconv.FormatInt(e.FulfillmentOrder.ID, 10)
	}
	return "order:" + strconv.FormatInt(e.Order.ID, 10)
}

// Reference is the human-facing order reference sent to the courier.
func (e Event) Reference() string {
	if e.Order.Name != "" {
		return e.Order.Name
	}
	return fmt.Sprintf("#%d", e.Order.ID)
}
