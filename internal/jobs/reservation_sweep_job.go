package jobs

import (
	"context"
	"log/slog"
	"time"

	"courierbridge/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultSweepSchedule runs the sweep at second zero of every minute.
const DefaultSweepSchedule = "0 * * * * *"

// ReservationExpirer drops pending reservations older than the command's cutoff.
type ReservationExpirer interface {
	Handle(ctx context.Context, cmd commands.ExpireReservationsCommand) (int, error)
}

// ReservationSweepJob periodically frees idempotency keys whose booking
// never finished, so a redelivered webhook can book them again.
type ReservationSweepJob struct {
	handler  ReservationExpirer
	ttl      time.Duration
	schedule string
	now      func() time.Time
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewReservationSweepJob creates the sweep job. An empty schedule means DefaultSweepSchedule.
func NewReservationSweepJob(handler ReservationExpirer, ttl time.Duration, schedule string, logger *slog.Logger) *ReservationSweepJob {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	return &ReservationSweepJob{
		handler:  handler,
		ttl:      ttl,
		schedule: schedule,
		now:      time.Now,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "reservation_sweep_job"),
	}
}

// Start schedules the sweep.
func (j *ReservationSweepJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Reservation sweep job started", "schedule", j.schedule, "ttl", j.ttl)
	return nil
}

// RunOnce performs a single sweep and returns how many reservations it dropped.
func (j *ReservationSweepJob) RunOnce(ctx context.Context) int {
	n, err := j.handler.Handle(ctx, commands.NewExpireReservationsCommand(j.now(), j.ttl))
	if err != nil {
		j.logger.ErrorContext(ctx, "Reservation sweep failed", "error", err)
		return 0
	}
	if n > 0 {
		j.logger.InfoContext(ctx, "Expired stale reservations", "count", n)
	}
	return n
}

// Stop stops the sweep and waits for a running one to finish.
func (j *ReservationSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Reservation sweep job stopped")
}
