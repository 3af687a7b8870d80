package queries

import (
	"context"
	"log/slog"
	"time"

	"courierbridge/internal/core/domain/model/pickup"
	"courierbridge/internal/core/domain/model/rate"
	"courierbridge/internal/core/ports"
	"courierbridge/internal/metrics"

	"github.com/shopspring/decimal"
)

// OutboundTimeout bounds every call to a remote system.
const OutboundTimeout = 8 * time.Second

// RateQuoter asks the courier for a price and never fails: any problem with
// the courier turns into the unavailable sentinel quote.
//
// Example:
//
//	quoter := NewRateQuoter(courierGateway, decimal.Zero, OutboundTimeout, m, logger)
//	q := quoter.Quote(ctx, "184 Lexington Ave New York NY 10016", "350 5th Ave New York NY 10118", nil)
//	if !q.IsAvailable() {
//	    // checkout shows the unavailable line, the buyer picks another method
//	}
type RateQuoter struct {
	courier   ports.CourierGateway
	surcharge decimal.Decimal
	timeout   time.Duration
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// NewRateQuoter creates a quoter adding surcharge (currency units) to every
// courier price. A non-positive timeout means OutboundTimeout.
func NewRateQuoter(
	courier ports.CourierGateway,
	surcharge decimal.Decimal,
	timeout time.Duration,
	m *metrics.Metrics,
	logger *slog.Logger,
) *RateQuoter {
	if timeout <= 0 {
		timeout = OutboundTimeout
	}
	return &RateQuoter{
		courier:   courier,
		surcharge: surcharge,
		timeout:   timeout,
		metrics:   m,
		logger:    logger.With("component", "rate_quoter"),
	}
}

// NeedsPickupSlot reports whether Quote should be given a pickup slot.
func (q *RateQuoter) NeedsPickupSlot() bool {
	return q.courier.QuotesPerPickupTime()
}

// Quote returns the courier's price for the trip. The courier call is not
// cancelled with ctx; it is bounded by the quoter's own timeout.
func (q *RateQuoter) Quote(ctx context.Context, pickupAddress, deliveryAddress string, slot *pickup.Slot) rate.Quote {
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), q.timeout)
	defer cancel()

	price, err := q.courier.EstimateRate(callCtx, ports.RateEstimateRequest{
		PickupAddress:  pickupAddress,
		DropoffAddress: deliveryAddress,
		PickupSlot:     slot,
	})
	if err != nil {
		q.logger.WarnContext(ctx, "Courier rate estimate failed, returning unavailable rate", "error", err)
		q.metrics.ObserveRateQuote(metrics.OutcomeUnavailable)
		return rate.Unavailable()
	}

	quote, err := rate.NewQuote(price, q.surcharge)
	if err != nil {
		q.logger.WarnContext(ctx, "Courier returned an unusable price", "price", price.String(), "error", err)
		q.metrics.ObserveRateQuote(metrics.OutcomeUnavailable)
		return rate.Unavailable()
	}

	q.metrics.ObserveRateQuote(metrics.OutcomeAvailable)
	return quote
}
