// Package jobs provides scheduled background tasks for the checkout backend.
//
// Jobs are cron-based (github.com/robfig/cron/v3, seconds field enabled) and are
// started and stopped together through JobManager:
//
//	jobManager := jobs.NewJobManager(pruneUploadGrantsHandler, cfg.GrantRetention, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatalf("Failed to start jobs: %v", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// GrantRetentionJob runs hourly and deletes upload grants that expired longer ago than
// the configured retention. Grants left behind by aborted submissions stay listed under
// GET /api/v1/uploads/:orderId until then.
package jobs
