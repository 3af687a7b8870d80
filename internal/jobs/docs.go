// Package jobs provides scheduled background tasks for the courier bridge.
//
// Jobs are cron-based (github.com/robfig/cron/v3, seconds-precision specs)
// and driven through JobManager:
//
//	jobManager := jobs.NewJobManager(expireHandler, job.DefaultPendingTTL, "", logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatalf("failed to start jobs: %v", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// ReservationSweepJob drops pending idempotency reservations older than the
// pending TTL. Stores that reclaim stale keys on reserve (memory, postgres)
// or expire them natively (redis) stay correct without it; the sweep keeps
// the stores small and the reservations_expired counter meaningful.
package jobs
