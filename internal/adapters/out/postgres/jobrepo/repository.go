package jobrepo

import (
	"context"
	"errors"
	"time"

	"courierbridge/internal/core/domain/model/job"
	"courierbridge/internal/core/ports"
	"courierbridge/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormReservationStore implements ports.ReservationStore on PostgreSQL.
type GormReservationStore struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

var _ ports.ReservationStore = (*GormReservationStore)(nil)

// NewGormReservationStore creates a store on db. A non-positive ttl means
// job.DefaultPendingTTL; a nil clock means time.Now.
func NewGormReservationStore(db *gorm.DB, ttl time.Duration, now func() time.Time) *GormReservationStore {
	if ttl <= 0 {
		ttl = job.DefaultPendingTTL
	}
	if now == nil {
		now = time.Now
	}
	return &GormReservationStore{db: db, ttl: ttl, now: now}
}

// AutoMigrate creates or updates the reservations table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&ReservationDTO{})
}

// TryReserve reclaims a stale pending row, then inserts a pending row unless
// one exists. The primary key makes the insert the arbiter between racers.
func (r *GormReservationStore) TryReserve(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, errs.NewValueIsRequiredError("key")
	}

	now := r.now().UTC()
	reserved := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("reservation_key = ? AND status = ? AND reserved_at <= ?", key, job.StatusPending.String(), now.Add(-r.ttl)).
			Delete(&ReservationDTO{}).Error; err != nil {
			return err
		}

		dto := pendingDTO(key, now)
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&dto)
		if result.Error != nil {
			return result.Error
		}
		reserved = result.RowsAffected == 1
		return nil
	})
	if err != nil {
		return false, err
	}
	return reserved, nil
}

// Record commits the reservation, keeping the original reserved_at when the
// row exists.
func (r *GormReservationStore) Record(ctx context.Context, j *job.DeliveryJob) error {
	if err := j.Validate(); err != nil {
		return err
	}

	dto := committedDTO(j)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "reservation_key"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"status", "job_id", "delivery_id", "tracking_url", "tracking_code", "job_created_at",
		}),
	}).Create(&dto).Error
}

// Release deletes the row only while it is pending; a committed booking stays.
// Releasing an unknown key is not an error.
func (r *GormReservationStore) Release(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).
		Where("reservation_key = ? AND status = ?", key, job.StatusPending.String()).
		Delete(&ReservationDTO{}).Error
}

// Lookup returns errs.ObjectNotFoundError when no row exists for key.
func (r *GormReservationStore) Lookup(ctx context.Context, key string) (job.Reservation, error) {
	var dto ReservationDTO
	if err := r.db.WithContext(ctx).First(&dto, "reservation_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return job.Reservation{}, errs.NewObjectNotFoundError("key", key)
		}
		return job.Reservation{}, err
	}
	return toDomain(dto)
}

// ExpirePending deletes pending rows reserved strictly before before and
// returns how many went.
func (r *GormReservationStore) ExpirePending(ctx context.Context, before time.Time) (int, error) {
	result := r.db.WithContext(ctx).
		Where("status = ? AND reserved_at < ?", job.StatusPending.String(), before.UTC()).
		Delete(&ReservationDTO{})
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}
