package scrapemonitorservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"dttracker/contexts/scrape-ops/scrape-monitor-service/domain/entities"
	domainerrors "dttracker/contexts/scrape-ops/scrape-monitor-service/domain/errors"
	httptransport "dttracker/contexts/scrape-ops/scrape-monitor-service/transport/http"
)

func seedJob(id string, status entities.JobStatus, attempts int, maxAttempts int) entities.ScrapeJob {
	now := time.Now().UTC()
	return entities.ScrapeJob{
		JobID:         id,
		Platform:      "tiktok",
		ReferenceType: entities.ReferenceTypeCreator,
		ReferenceID:   "creator-" + id,
		Status:        status,
		Attempts:      attempts,
		MaxAttempts:   maxAttempts,
		ScheduledFor:  now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestRegisterJobQueuesImmediately(t *testing.T) {
	module := NewInMemoryModule(nil, nil)

	resp, err := module.Handler.RegisterJobHandler(context.Background(), httptransport.RegisterJobRequest{
		Platform:      "TikTok",
		ReferenceType: "creator",
		ReferenceID:   "creator-1",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if resp.Job.Status != "queued" {
		t.Fatalf("expected queued job, got %s", resp.Job.Status)
	}
	if resp.Job.Platform != "tiktok" {
		t.Fatalf("expected lowercased platform, got %s", resp.Job.Platform)
	}
	if resp.Job.MaxAttempts <= 0 {
		t.Fatalf("expected defaulted max attempts, got %d", resp.Job.MaxAttempts)
	}
}

func TestRegisterJobRejectsUnknownReferenceType(t *testing.T) {
	module := NewInMemoryModule(nil, nil)

	_, err := module.Handler.RegisterJobHandler(context.Background(), httptransport.RegisterJobRequest{
		Platform:      "tiktok",
		ReferenceType: "playlist",
		ReferenceID:   "ref-1",
	})
	if !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRunLifecycleSuccess(t *testing.T) {
	module := NewInMemoryModule([]entities.ScrapeJob{seedJob("job-1", entities.JobStatusQueued, 0, 3)}, nil)
	ctx := context.Background()

	started, err := module.Handler.StartRunHandler(ctx, "scraper-1", httptransport.StartRunRequest{JobID: "job-1"})
	if err != nil {
		t.Fatalf("start run failed: %v", err)
	}
	if started.Run.Status != "started" {
		t.Fatalf("expected started run, got %s", started.Run.Status)
	}

	items := 42
	finished, err := module.Handler.FinishRunHandler(ctx, started.Run.RunID, httptransport.FinishRunRequest{
		Status:     "succeeded",
		ItemsCount: &items,
	})
	if err != nil {
		t.Fatalf("finish run failed: %v", err)
	}
	if finished.Run.DurationMS == nil {
		t.Fatalf("expected duration recorded")
	}

	job, err := module.Store.GetJob(ctx, "job-1")
	if err != nil {
		t.Fatalf("get job failed: %v", err)
	}
	if job.Status != entities.JobStatusSuccess || job.Attempts != 1 {
		t.Fatalf("expected success with one attempt, got %+v", job)
	}
	if job.NextRetryAt != nil {
		t.Fatalf("expected no retry scheduled on success")
	}
}

func TestFailedRunParksJobInCooldown(t *testing.T) {
	module := NewInMemoryModule([]entities.ScrapeJob{seedJob("job-1", entities.JobStatusQueued, 0, 3)}, nil)
	ctx := context.Background()

	started, err := module.Handler.StartRunHandler(ctx, "scraper-1", httptransport.StartRunRequest{JobID: "job-1"})
	if err != nil {
		t.Fatalf("start run failed: %v", err)
	}
	if _, err := module.Handler.FinishRunHandler(ctx, started.Run.RunID, httptransport.FinishRunRequest{
		Status: "failed",
		Error:  "rate limited",
	}); err != nil {
		t.Fatalf("finish run failed: %v", err)
	}

	job, err := module.Store.GetJob(ctx, "job-1")
	if err != nil {
		t.Fatalf("get job failed: %v", err)
	}
	if job.Status != entities.JobStatusCooldown {
		t.Fatalf("expected cooldown, got %s", job.Status)
	}
	if job.NextRetryAt == nil || !job.NextRetryAt.After(time.Now().UTC()) {
		t.Fatalf("expected future next_retry_at, got %v", job.NextRetryAt)
	}
	if job.LastError != "rate limited" {
		t.Fatalf("expected last error recorded, got %q", job.LastError)
	}
}

func TestFailedRunOnLastAttemptFailsJob(t *testing.T) {
	module := NewInMemoryModule([]entities.ScrapeJob{seedJob("job-1", entities.JobStatusQueued, 2, 3)}, nil)
	ctx := context.Background()

	started, err := module.Handler.StartRunHandler(ctx, "scraper-1", httptransport.StartRunRequest{JobID: "job-1"})
	if err != nil {
		t.Fatalf("start run failed: %v", err)
	}
	if _, err := module.Handler.FinishRunHandler(ctx, started.Run.RunID, httptransport.FinishRunRequest{
		Status: "timed_out",
	}); err != nil {
		t.Fatalf("finish run failed: %v", err)
	}

	job, err := module.Store.GetJob(ctx, "job-1")
	if err != nil {
		t.Fatalf("get job failed: %v", err)
	}
	if job.Status != entities.JobStatusFailed || job.NextRetryAt != nil {
		t.Fatalf("expected terminal failed job, got %+v", job)
	}
}

func TestStartRunRejectsRunningJob(t *testing.T) {
	module := NewInMemoryModule([]entities.ScrapeJob{seedJob("job-1", entities.JobStatusQueued, 0, 3)}, nil)
	ctx := context.Background()

	if _, err := module.Handler.StartRunHandler(ctx, "scraper-1", httptransport.StartRunRequest{JobID: "job-1"}); err != nil {
		t.Fatalf("start run failed: %v", err)
	}
	_, err := module.Handler.StartRunHandler(ctx, "scraper-2", httptransport.StartRunRequest{JobID: "job-1"})
	if !errors.Is(err, domainerrors.ErrJobAlreadyRunning) {
		t.Fatalf("expected ErrJobAlreadyRunning, got %v", err)
	}
}

func TestFinishRunRejectsFinishedRun(t *testing.T) {
	module := NewInMemoryModule([]entities.ScrapeJob{seedJob("job-1", entities.JobStatusQueued, 0, 3)}, nil)
	ctx := context.Background()

	started, err := module.Handler.StartRunHandler(ctx, "scraper-1", httptransport.StartRunRequest{JobID: "job-1"})
	if err != nil {
		t.Fatalf("start run failed: %v", err)
	}
	if _, err := module.Handler.FinishRunHandler(ctx, started.Run.RunID, httptransport.FinishRunRequest{Status: "succeeded"}); err != nil {
		t.Fatalf("finish run failed: %v", err)
	}
	_, err = module.Handler.FinishRunHandler(ctx, started.Run.RunID, httptransport.FinishRunRequest{Status: "failed"})
	if !errors.Is(err, domainerrors.ErrRunAlreadyFinished) {
		t.Fatalf("expected ErrRunAlreadyFinished, got %v", err)
	}
}

func TestRetryJobsRequeuesOnlyEligibleJobs(t *testing.T) {
	module := NewInMemoryModule([]entities.ScrapeJob{
		seedJob("job-1", entities.JobStatusFailed, 1, 3),
		seedJob("job-2", entities.JobStatusFailed, 3, 3),
		seedJob("job-3", entities.JobStatusSuccess, 1, 3),
	}, nil)
	ctx := context.Background()

	resp, err := module.Handler.RetryJobsHandler(ctx, httptransport.RetryJobsRequest{
		JobIDs: []string{"job-1", "job-2", "job-3", "job-1", " "},
	})
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if resp.RequestedCount != 3 {
		t.Fatalf("expected 3 requested after dedupe, got %d", resp.RequestedCount)
	}
	if resp.RetriedCount != 1 {
		t.Fatalf("expected exactly 1 retried, got %d", resp.RetriedCount)
	}

	job, err := module.Store.GetJob(ctx, "job-1")
	if err != nil {
		t.Fatalf("get job failed: %v", err)
	}
	if job.Status != entities.JobStatusQueued {
		t.Fatalf("expected job-1 requeued, got %s", job.Status)
	}
	exhausted, err := module.Store.GetJob(ctx, "job-2")
	if err != nil {
		t.Fatalf("get job failed: %v", err)
	}
	if exhausted.Status != entities.JobStatusFailed {
		t.Fatalf("expected job-2 untouched, got %s", exhausted.Status)
	}
}

func TestRetryJobsRejectsEmptySelection(t *testing.T) {
	module := NewInMemoryModule(nil, nil)

	_, err := module.Handler.RetryJobsHandler(context.Background(), httptransport.RetryJobsRequest{JobIDs: []string{"  ", ""}})
	if !errors.Is(err, domainerrors.ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}
}

func TestListJobsFiltersByStatusAndPlatform(t *testing.T) {
	jobs := []entities.ScrapeJob{
		seedJob("job-1", entities.JobStatusFailed, 1, 3),
		seedJob("job-2", entities.JobStatusQueued, 0, 3),
	}
	jobs[1].Platform = "instagram"
	module := NewInMemoryModule(jobs, nil)

	resp, err := module.Handler.ListJobsHandler(context.Background(), "failed", "tiktok", 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].JobID != "job-1" {
		t.Fatalf("expected only job-1, got %+v", resp.Items)
	}
}
