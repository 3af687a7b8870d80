package queries

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"courierbridge/internal/core/domain/model/pickup"
	"courierbridge/internal/core/domain/model/rate"
	"courierbridge/internal/metrics"
)

// DefaultOriginAddress is quoted from when checkout sends no origin street.
const DefaultOriginAddress = "184 Lexington Ave New York NY 10016"

// DefaultExcludedPostalCodes are destinations the courier does not serve.
var DefaultExcludedPostalCodes = []string{"10016"}

// ShippingRatesPolicy decides which destinations are quoted and from where.
type ShippingRatesPolicy struct {
	DefaultOrigin       string
	ExcludedPostalCodes []string
}

// DefaultShippingRatesPolicy returns the store's policy.
func DefaultShippingRatesPolicy() ShippingRatesPolicy {
	return ShippingRatesPolicy{
		DefaultOrigin:       DefaultOriginAddress,
		ExcludedPostalCodes: slices.Clone(DefaultExcludedPostalCodes),
	}
}

func (p ShippingRatesPolicy) excludes(postalCode string) bool {
	return slices.Contains(p.ExcludedPostalCodes, strings.TrimSpace(postalCode))
}

// GetShippingRatesQueryHandler answers checkout rate requests. Apart from an
// unconstructed query it never returns an error: unserviceable destinations
// yield no rates and every other failure yields the unavailable sentinel.
type GetShippingRatesQueryHandler struct {
	quoter    *RateQuoter
	scheduler *pickup.Scheduler
	policy    ShippingRatesPolicy
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

func NewGetShippingRatesQueryHandler(
	quoter *RateQuoter,
	scheduler *pickup.Scheduler,
	policy ShippingRatesPolicy,
	m *metrics.Metrics,
	logger *slog.Logger,
) GetShippingRatesQueryHandler {
	if policy.DefaultOrigin == "" {
		policy.DefaultOrigin = DefaultOriginAddress
	}
	return GetShippingRatesQueryHandler{
		quoter:    quoter,
		scheduler: scheduler,
		policy:    policy,
		metrics:   m,
		logger:    logger.With("component", "shipping_rates"),
	}
}

// Handle returns zero or one rate for the query.
func (h GetShippingRatesQueryHandler) Handle(ctx context.Context, query GetShippingRatesQuery) (rates []rate.Quote, err error) {
	if err = query.Validate(); err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			h.logger.ErrorContext(ctx, "Rate request panicked, returning unavailable rate", "panic", fmt.Sprint(r))
			h.metrics.ObserveRateQuote(metrics.OutcomeUnavailable)
			rates, err = []rate.Quote{rate.Unavailable()}, nil
		}
	}()

	dest := query.Destination()
	if dest == nil || !dest.IsDomestic() {
		h.metrics.ObserveRateQuote(metrics.OutcomeUnserviceable)
		return []rate.Quote{}, nil
	}
	if h.policy.excludes(dest.PostalCode) {
		h.metrics.ObserveRateQuote(metrics.OutcomeUnserviceable)
		return []rate.Quote{}, nil
	}

	origin := h.policy.DefaultOrigin
	if o := query.Origin(); o != nil && !o.IsEmpty() {
		origin = o.Line()
	}

	var slot *pickup.Slot
	if h.quoter.NeedsPickupSlot() {
		next := h.scheduler.Next()
		slot = &next
	}

	return []rate.Quote{h.quoter.Quote(ctx, origin, dest.Line(), slot)}, nil
}
