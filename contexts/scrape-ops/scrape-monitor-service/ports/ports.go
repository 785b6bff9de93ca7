package ports

import (
	"context"
	"time"

	"dttracker/contexts/scrape-ops/scrape-monitor-service/domain/entities"
)

type JobFilter struct {
	Status   entities.JobStatus
	Platform string
	Limit    int
}

type RunFilter struct {
	From     time.Time
	To       time.Time
	Platform string
	Status   entities.RunStatus
	Limit    int
}

type JobRepository interface {
	CreateJob(ctx context.Context, job entities.ScrapeJob) error
	UpdateJob(ctx context.Context, job entities.ScrapeJob) error
	GetJob(ctx context.Context, jobID string) (entities.ScrapeJob, error)
	// ListJobs returns jobs ordered by scheduled_for ascending.
	ListJobs(ctx context.Context, filter JobFilter) ([]entities.ScrapeJob, error)
	// RequeueFailed re-queues the subset of ids that are failed with attempts
	// left, atomically, and reports how many rows changed.
	RequeueFailed(ctx context.Context, jobIDs []string, now time.Time) (int, error)
	// ReleaseCooldown moves cooldown jobs whose next_retry_at passed back to
	// queued, up to limit rows.
	ReleaseCooldown(ctx context.Context, now time.Time, limit int) (int, error)
}

type RunRepository interface {
	AppendRun(ctx context.Context, run entities.ScrapeRun) error
	UpdateRun(ctx context.Context, run entities.ScrapeRun) error
	GetRun(ctx context.Context, runID string) (entities.ScrapeRun, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]entities.ScrapeRun, error)
	// PruneRunsBefore deletes finished runs that started before the cutoff,
	// up to limit rows, and reports how many were removed.
	PruneRunsBefore(ctx context.Context, cutoff time.Time, limit int) (int, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
