package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	reservationSweepJob *ReservationSweepJob
}

// NewJobManager creates a job manager with every background job wired to its handler.
func NewJobManager(
	expireReservationsHandler ReservationExpirer,
	pendingTTL time.Duration,
	sweepSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		reservationSweepJob: NewReservationSweepJob(expireReservationsHandler, pendingTTL, sweepSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.reservationSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start reservation sweep job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.reservationSweepJob.Stop()
}
