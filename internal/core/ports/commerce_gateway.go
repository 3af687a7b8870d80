package ports

import (
	"context"

	"courierbridge/internal/core/domain/model/fulfillment"
)

// CommerceGateway is the commerce platform's admin API.
type CommerceGateway interface {
	GetOrder(ctx context.Context, orderID int64) (fulfillment.Order, error)

	GetFulfillmentOrder(ctx context.Context, fulfillmentOrderID int64) (fulfillment.FulfillmentOrder, error)

	// ListFulfillmentOrders returns every fulfillment order of an order, fulfillable or not.
	ListFulfillmentOrders(ctx context.Context, orderID int64) ([]fulfillment.FulfillmentOrder, error)

	// CreateFulfillment marks the update's line items as shipped with the courier's
	// tracking details and returns the platform's fulfillment id.
	CreateFulfillment(ctx context.Context, update fulfillment.TrackingUpdate) (int64, error)
}
