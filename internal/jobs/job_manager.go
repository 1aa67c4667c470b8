package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"bloom/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	grantRetentionJob *GrantRetentionJob
}

func NewJobManager(
	pruneUploadGrantsHandler commands.PruneUploadGrantsCommandHandler,
	grantRetention time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		grantRetentionJob: NewGrantRetentionJob(pruneUploadGrantsHandler, grantRetention, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.grantRetentionJob.Start(); err != nil {
		return fmt.Errorf("failed to start grant retention job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.grantRetentionJob.Stop()
}
