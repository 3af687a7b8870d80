// Package jobrepo persists idempotency reservations and booked delivery jobs
// in PostgreSQL through GORM. One row per key; the row's status moves from
// pending to committed when the courier job is recorded.
package jobrepo

import (
	"time"

	"courierbridge/internal/core/domain/model/job"

	"github.com/google/uuid"
)

// ReservationDTO is the database row for one idempotency key.
type ReservationDTO struct {
	Key        string    `gorm:"column:reservation_key;primaryKey;size:191"`
	Status     string    `gorm:"size:16;not null;index:idx_reservations_status_reserved_at,priority:1"`
	ReservedAt time.Time `gorm:"not null;index:idx_reservations_status_reserved_at,priority:2"`

	JobID        *uuid.UUID `gorm:"type:uuid"`
	DeliveryID   string
	TrackingURL  string
	TrackingCode string
	JobCreatedAt *time.Time
}

// TableName overrides GORM's pluralized default.
func (ReservationDTO) TableName() string {
	return "delivery_reservations"
}

func pendingDTO(key string, reservedAt time.Time) ReservationDTO {
	return ReservationDTO{
		Key:        key,
		Status:     job.StatusPending.String(),
		ReservedAt: reservedAt.UTC(),
	}
}

func committedDTO(j *job.DeliveryJob) ReservationDTO {
	id := j.ID()
	createdAt := j.CreatedAt()
	return ReservationDTO{
		Key:          j.Key(),
		Status:       job.StatusCommitted.String(),
		ReservedAt:   createdAt,
		JobID:        &id,
		DeliveryID:   j.DeliveryID(),
		TrackingURL:  j.TrackingURL(),
		TrackingCode: j.TrackingCode(),
		JobCreatedAt: &createdAt,
	}
}

func toDomain(dto ReservationDTO) (job.Reservation, error) {
	status, err := job.ParseStatus(dto.Status)
	if err != nil {
		return job.Reservation{}, err
	}

	res := job.Reservation{
		Key:        dto.Key,
		Status:     status,
		ReservedAt: dto.ReservedAt.UTC(),
	}
	if status == job.StatusCommitted && dto.JobID != nil {
		createdAt := dto.ReservedAt
		if dto.JobCreatedAt != nil {
			createdAt = *dto.JobCreatedAt
		}
		res.Job = job.RestoreDeliveryJob(*dto.JobID, dto.Key, dto.DeliveryID, dto.TrackingURL, dto.TrackingCode, createdAt)
	}
	return res, nil
}
