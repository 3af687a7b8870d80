// Package job holds the booked courier delivery and the idempotency reservation
// guarding it. At most one DeliveryJob exists per key.
package job

import (
	"errors"
	"strings"
	"time"

	"courierbridge/internal/core/domain/model/booking"
	"courierbridge/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrDeliveryJobIsNotConstructed = errors.New("DeliveryJob must be created via NewDeliveryJob constructor")

// DeliveryJob is a courier delivery booked for one order or fulfillment order.
type DeliveryJob struct {
	id           uuid.UUID
	key          string
	deliveryID   string
	trackingURL  string
	trackingCode string
	createdAt    time.Time

	isConstructed bool
}

// NewDeliveryJob records a courier confirmation under key. The confirmation
// must carry a delivery id.
func NewDeliveryJob(key string, confirmation booking.Confirmation, createdAt time.Time) (*DeliveryJob, error) {
	if strings.TrimSpace(key) == "" {
		return nil, errs.NewValueIsRequiredError("key")
	}
	if strings.TrimSpace(confirmation.DeliveryID) == "" {
		return nil, errs.NewValueIsRequiredError("delivery id")
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("created at")
	}

	return &DeliveryJob{
		id:            uuid.New(),
		key:           key,
		deliveryID:    confirmation.DeliveryID,
		trackingURL:   confirmation.TrackingURL,
		trackingCode:  confirmation.TrackingCode,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}, nil
}

// RestoreDeliveryJob rebuilds a job loaded from a store. No validation is
// performed beyond what the store already guarantees.
func RestoreDeliveryJob(
	id uuid.UUID,
	key, deliveryID, trackingURL, trackingCode string,
	createdAt time.Time,
) *DeliveryJob {
	return &DeliveryJob{
		id:            id,
		key:           key,
		deliveryID:    deliveryID,
		trackingURL:   trackingURL,
		trackingCode:  trackingCode,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}
}

// Validate ensures the job was created through a constructor.
func (j *DeliveryJob) Validate() error {
	if j == nil || !j.isConstructed {
		return ErrDeliveryJobIsNotConstructed
	}
	return nil
}

func (j *DeliveryJob) ID() uuid.UUID { return j.id }

// Key is the idempotency key the job was booked under.
func (j *DeliveryJob) Key() string { return j.key }

func (j *DeliveryJob) DeliveryID() string { return j.deliveryID }

func (j *DeliveryJob) TrackingURL() string { return j.trackingURL }

func (j *DeliveryJob) TrackingCode() string { return j.trackingCode }

func (j *DeliveryJob) CreatedAt() time.Time { return j.createdAt }

// Confirmation returns the courier data the job was created from.
func (j *DeliveryJob) Confirmation() booking.Confirmation {
	return booking.Confirmation{
		DeliveryID:   j.deliveryID,
		TrackingURL:  j.trackingURL,
		TrackingCode: j.trackingCode,
	}
}
