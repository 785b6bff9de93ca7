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

type StartRunCommand struct {
	JobID   string
	ActorID string
}

type StartRunUseCase struct {
	Jobs   ports.JobRepository
	Runs   ports.RunRepository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

// Execute moves a queued job to running and opens its run record.
func (uc StartRunUseCase) Execute(ctx context.Context, cmd StartRunCommand) (entities.ScrapeRun, error) {
	if strings.TrimSpace(cmd.JobID) == "" || strings.TrimSpace(cmd.ActorID) == "" {
		return entities.ScrapeRun{}, domainerrors.ErrInvalidInput
	}

	job, err := uc.Jobs.GetJob(ctx, strings.TrimSpace(cmd.JobID))
	if err != nil {
		return entities.ScrapeRun{}, err
	}
	if job.Status == entities.JobStatusRunning {
		return entities.ScrapeRun{}, domainerrors.ErrJobAlreadyRunning
	}
	if job.Status != entities.JobStatusQueued {
		return entities.ScrapeRun{}, domainerrors.ErrInvalidInput
	}

	now := uc.Clock.Now().UTC()
	runID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.ScrapeRun{}, err
	}

	run := entities.ScrapeRun{
		RunID:     runID,
		JobID:     job.JobID,
		ActorID:   strings.TrimSpace(cmd.ActorID),
		Status:    entities.RunStatusStarted,
		StartedAt: now,
		Platform:  job.Platform,
	}
	if err := uc.Runs.AppendRun(ctx, run); err != nil {
		return entities.ScrapeRun{}, err
	}

	job.Status = entities.JobStatusRunning
	job.UpdatedAt = now
	if err := uc.Jobs.UpdateJob(ctx, job); err != nil {
		return entities.ScrapeRun{}, err
	}

	application.ResolveLogger(uc.Logger).Info("scrape run started",
		"event", "scrape_run_started",
		"module", "scrape-ops/scrape-monitor-service",
		"layer", "application",
		"job_id", job.JobID,
		"run_id", run.RunID,
		"platform", job.Platform,
	)
	return run, nil
}

type FinishRunCommand struct {
	RunID      string
	Status     entities.RunStatus
	ItemsCount *int
	Error      string
}

type FinishRunUseCase struct {
	Jobs            ports.JobRepository
	Runs            ports.RunRepository
	Clock           ports.Clock
	CooldownInitial time.Duration
	Logger          *slog.Logger
}

// Execute closes a run and applies the job bookkeeping: success finishes the
// job, a failed or timed-out run bumps attempts and either parks the job in
// cooldown with an exponential next_retry_at or fails it for good.
func (uc FinishRunUseCase) Execute(ctx context.Context, cmd FinishRunCommand) (entities.ScrapeRun, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(cmd.RunID) == "" {
		return entities.ScrapeRun{}, domainerrors.ErrInvalidInput
	}
	switch cmd.Status {
	case entities.RunStatusSucceeded, entities.RunStatusFailed, entities.RunStatusTimedOut:
	default:
		return entities.ScrapeRun{}, domainerrors.ErrInvalidInput
	}

	run, err := uc.Runs.GetRun(ctx, strings.TrimSpace(cmd.RunID))
	if err != nil {
		return entities.ScrapeRun{}, err
	}
	if run.IsFinished() {
		return entities.ScrapeRun{}, domainerrors.ErrRunAlreadyFinished
	}

	job, err := uc.Jobs.GetJob(ctx, run.JobID)
	if err != nil {
		return entities.ScrapeRun{}, err
	}
	if job.Status != entities.JobStatusRunning {
		return entities.ScrapeRun{}, domainerrors.ErrJobNotRunning
	}

	now := uc.Clock.Now().UTC()
	duration := now.Sub(run.StartedAt).Milliseconds()

	run.Status = cmd.Status
	run.FinishedAt = &now
	run.DurationMS = &duration
	run.ItemsCount = cmd.ItemsCount
	run.Error = strings.TrimSpace(cmd.Error)
	if err := uc.Runs.UpdateRun(ctx, run); err != nil {
		return entities.ScrapeRun{}, err
	}

	job.Attempts++
	job.UpdatedAt = now
	job.NextRetryAt = nil
	switch cmd.Status {
	case entities.RunStatusSucceeded:
		job.Status = entities.JobStatusSuccess
		job.LastError = ""
	default:
		job.LastError = run.Error
		if job.Attempts < job.MaxAttempts {
			job.Status = entities.JobStatusCooldown
			retryAt := now.Add(uc.cooldownFor(job.Attempts))
			job.NextRetryAt = &retryAt
		} else {
			job.Status = entities.JobStatusFailed
		}
	}
	if err := uc.Jobs.UpdateJob(ctx, job); err != nil {
		return entities.ScrapeRun{}, err
	}

	logger.Info("scrape run finished",
		"event", "scrape_run_finished",
		"module", "scrape-ops/scrape-monitor-service",
		"layer", "application",
		"job_id", job.JobID,
		"run_id", run.RunID,
		"run_status", string(run.Status),
		"job_status", string(job.Status),
		"attempts", job.Attempts,
	)
	return run, nil
}

// cooldownFor doubles per attempt from the initial interval.
func (uc FinishRunUseCase) cooldownFor(attempts int) time.Duration {
	initial := uc.CooldownInitial
	if initial <= 0 {
		initial = 5 * time.Minute
	}
	cooldown := initial
	for i := 1; i < attempts; i++ {
		cooldown *= 2
		if cooldown >= 6*time.Hour {
			return 6 * time.Hour
		}
	}
	return cooldown
}
