package commands

import (
	"context"

	"courierbridge/internal/core/ports"
	"courierbridge/internal/metrics"
)

type ExpireReservationsCommandHandler struct {
	store   ports.ReservationStore
	metrics *metrics.Metrics
}

func NewExpireReservationsCommandHandler(store ports.ReservationStore, m *metrics.Metrics) ExpireReservationsCommandHandler {
	return ExpireReservationsCommandHandler{store: store, metrics: m}
}

// Handle returns how many reservations were removed.
func (h ExpireReservationsCommandHandler) Handle(ctx context.Context, cmd ExpireReservationsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	n, err := h.store.ExpirePending(ctx, cmd.Before())
	if err != nil {
		return 0, err
	}
	h.metrics.ObserveExpired(n)
	return n, nil
}
