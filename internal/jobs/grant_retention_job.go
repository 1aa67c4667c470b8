package jobs

import (
	"context"
	"log/slog"
	"time"

	"bloom/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// GrantRetentionSchedule runs the prune at the top of every hour.
const GrantRetentionSchedule = "0 0 * * * *"

// GrantRetentionJob removes upload grants whose expiry is older than the retention window.
type GrantRetentionJob struct {
	handler   commands.PruneUploadGrantsCommandHandler
	retention time.Duration
	now       func() time.Time
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewGrantRetentionJob(
	handler commands.PruneUploadGrantsCommandHandler,
	retention time.Duration,
	logger *slog.Logger,
) *GrantRetentionJob {
	return &GrantRetentionJob{
		handler:   handler,
		retention: retention,
		now:       time.Now,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "grant_retention_job"),
	}
}

// Start schedules the prune. The first run happens at the next full hour.
func (j *GrantRetentionJob) Start() error {
	if _, err := j.cron.AddFunc(GrantRetentionSchedule, func() { j.run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Grant retention job started",
		"schedule", GrantRetentionSchedule, "retention", j.retention.String())
	return nil
}

// Stop stops the grant retention job. A prune already running is allowed to finish.
func (j *GrantRetentionJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Grant retention job stopped")
}

func (j *GrantRetentionJob) run(ctx context.Context) {
	cmd, err := commands.NewPruneUploadGrantsCommand(j.now(), j.retention)
	if err != nil {
		j.logger.ErrorContext(ctx, "Grant retention job misconfigured", "error", err)
		return
	}

	removed, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Grant retention job failed", "error", err)
		return
	}
	if removed > 0 {
		j.logger.InfoContext(ctx, "Expired upload grants pruned", "removed", removed, "cutoff", cmd.Cutoff())
	}
}
