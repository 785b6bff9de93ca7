package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "dttracker/contexts/scrape-ops/scrape-monitor-service/application"
	"dttracker/contexts/scrape-ops/scrape-monitor-service/domain/entities"
	domainerrors "dttracker/contexts/scrape-ops/scrape-monitor-service/domain/errors"
	"dttracker/contexts/scrape-ops/scrape-monitor-service/ports"
)

const defaultMaxAttempts = 5

type RegisterJobCommand struct {
	Platform      string
	ReferenceType string
	ReferenceID   string
	MaxAttempts   int
	ScheduledFor  *time.Time
}

type RegisterJobUseCase struct {
	Jobs   ports.JobRepository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

// Execute registers a tracked entity for metric collection. The job enters
// the queue immediately unless a future scheduled_for is given.
func (uc RegisterJobUseCase) Execute(ctx context.Context, cmd RegisterJobCommand) (entities.ScrapeJob, error) {
	logger := application.ResolveLogger(uc.Logger)

	now := uc.Clock.Now().UTC()
	scheduledFor := now
	if cmd.ScheduledFor != nil {
		scheduledFor = cmd.ScheduledFor.UTC()
	}
	maxAttempts := cmd.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}

	jobID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.ScrapeJob{}, err
	}

	job := entities.ScrapeJob{
		JobID:         jobID,
		Platform:      strings.ToLower(strings.TrimSpace(cmd.Platform)),
		ReferenceType: entities.ReferenceType(strings.TrimSpace(cmd.ReferenceType)),
		ReferenceID:   strings.TrimSpace(cmd.ReferenceID),
		Status:        entities.JobStatusQueued,
		Attempts:      0,
		MaxAttempts:   maxAttempts,
		ScheduledFor:  scheduledFor,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if !job.ValidateBasics() {
		return entities.ScrapeJob{}, domainerrors.ErrInvalidInput
	}

	if err := uc.Jobs.CreateJob(ctx, job); err != nil {
		return entities.ScrapeJob{}, err
	}

	logger.Info("scrape job registered",
		"event", "scrape_job_registered",
		"module", "scrape-ops/scrape-monitor-service",
		"layer", "application",
		"job_id", job.JobID,
		"platform", job.Platform,
		"reference_type", string(job.ReferenceType),
	)
	return job, nil
}
