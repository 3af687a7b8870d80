package queries

import (
	"context"
	"time"

	"courierbridge/internal/core/ports"

	"github.com/google/uuid"
)

// GetDeliveryJobQueryResponse is the operator's view of one key.
type GetDeliveryJobQueryResponse struct {
	Key        string
	Status     string
	ReservedAt time.Time
	// Job is nil while the reservation is pending.
	Job *DeliveryJobView
}

type DeliveryJobView struct {
	ID           uuid.UUID
	DeliveryID   string
	TrackingURL  string
	TrackingCode string
	CreatedAt    time.Time
}

type GetDeliveryJobQueryHandler struct {
	store ports.ReservationStore
}

func NewGetDeliveryJobQueryHandler(store ports.ReservationStore) GetDeliveryJobQueryHandler {
	return GetDeliveryJobQueryHandler{store: store}
}

// Handle returns errs.ObjectNotFoundError when the key was never reserved
// or its reservation was released.
func (h GetDeliveryJobQueryHandler) Handle(ctx context.Context, query GetDeliveryJobQuery) (GetDeliveryJobQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeliveryJobQueryResponse{}, err
	}

	res, err := h.store.Lookup(ctx, query.Key())
	if err != nil {
		return GetDeliveryJobQueryResponse{}, err
	}

	resp := GetDeliveryJobQueryResponse{
		Key:        res.Key,
		Status:     res.Status.String(),
		ReservedAt: res.ReservedAt,
	}
	if j := res.Job; j != nil {
		resp.Job = &DeliveryJobView{
			ID:           j.ID(),
			DeliveryID:   j.DeliveryID(),
			TrackingURL:  j.TrackingURL(),
			TrackingCode: j.TrackingCode(),
			CreatedAt:    j.CreatedAt(),
		}
	}
	return resp, nil
}
