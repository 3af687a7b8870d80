package commands

import (
	"errors"

	"courierbridge/internal/core/domain/model/fulfillment"
	"courierbridge/internal/pkg/guard"
)

var ErrBookFulfillmentOrderCommandIsNotConstructed = errors.New(
	"BookFulfillmentOrderCommand must be created via NewBookFulfillmentOrderCommand constructor",
)

// BookFulfillmentOrderCommand books a courier for a fulfillment order known
// only by its id, as delivered by the fulfillment-order webhook.
type BookFulfillmentOrderCommand struct {
	fulfillmentOrderID int64

	guard guard.ConstructorGuard
}

// NewBookFulfillmentOrderCommand accepts a bare numeric id or a composite id
// ending in the numeric id, e.g. "gid://shopify/FulfillmentOrder/123".
func NewBookFulfillmentOrderCommand(rawID string) (BookFulfillmentOrderCommand, error) {
	id, err := fulfillment.ParseID(rawID)
	if err != nil {
		return BookFulfillmentOrderCommand{}, err
	}
	return BookFulfillmentOrderCommand{fulfillmentOrderID: id, guard: guard.NewConstructorGuard()}, nil
}

func (c BookFulfillmentOrderCommand) Validate() error {
	return c.guard.Validate(ErrBookFulfillmentOrderCommandIsNotConstructed)
}

func (c BookFulfillmentOrderCommand) FulfillmentOrderID() int64 {
	return c.fulfillmentOrderID
}
