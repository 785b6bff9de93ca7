package queries

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"dttracker/contexts/scrape-ops/scrape-monitor-service/domain/entities"
	"dttracker/contexts/scrape-ops/scrape-monitor-service/ports"
)

const defaultPageSize = 100

type ListJobsQuery struct {
	Status   string
	Platform string
	Limit    int
}

type ListJobsUseCase struct {
	Jobs   ports.JobRepository
	Logger *slog.Logger
}

func (uc ListJobsUseCase) Execute(ctx context.Context, query ListJobsQuery) ([]entities.ScrapeJob, error) {
	limit := query.Limit
	if limit <= 0 || limit > defaultPageSize {
		limit = defaultPageSize
	}
	return uc.Jobs.ListJobs(ctx, ports.JobFilter{
		Status:   entities.JobStatus(strings.TrimSpace(query.Status)),
		Platform: strings.TrimSpace(query.Platform),
		Limit:    limit,
	})
}

type ListRunsQuery struct {
	From     time.Time
	To       time.Time
	Platform string
	Status   string
	Limit    int
}

type ListRunsUseCase struct {
	Runs   ports.RunRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

// Execute applies the time-range, platform and status filters as a logical
// AND. An empty range defaults to the trailing 24 hours.
func (uc ListRunsUseCase) Execute(ctx context.Context, query ListRunsQuery) ([]entities.ScrapeRun, error) {
	from := query.From
	to := query.To
	if to.IsZero() {
		to = uc.Clock.Now().UTC()
	}
	if from.IsZero() {
		from = to.Add(-24 * time.Hour)
	}

	limit := query.Limit
	if limit <= 0 || limit > defaultPageSize {
		limit = defaultPageSize
	}
	return uc.Runs.ListRuns(ctx, ports.RunFilter{
		From:     from,
		To:       to,
		Platform: strings.TrimSpace(query.Platform),
		Status:   entities.RunStatus(strings.TrimSpace(query.Status)),
		Limit:    limit,
	})
}
