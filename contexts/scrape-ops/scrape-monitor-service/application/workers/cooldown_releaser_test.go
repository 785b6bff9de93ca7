package workers

import (
	"context"
	"testing"
	"time"

	"dttracker/contexts/scrape-ops/scrape-monitor-service/adapters/memory"
	"dttracker/contexts/scrape-ops/scrape-monitor-service/domain/entities"
)

func cooldownJob(id string, retryAt time.Time) entities.ScrapeJob {
	now := time.Now().UTC()
	return entities.ScrapeJob{
		JobID:         id,
		Platform:      "tiktok",
		ReferenceType: entities.ReferenceTypePost,
		ReferenceID:   "post-" + id,
		Status:        entities.JobStatusCooldown,
		Attempts:      1,
		MaxAttempts:   3,
		NextRetryAt:   &retryAt,
		ScheduledFor:  now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestCooldownReleaserRequeuesDueJobs(t *testing.T) {
	now := time.Now().UTC()
	store := memory.NewStore([]entities.ScrapeJob{
		cooldownJob("job-due", now.Add(-time.Minute)),
		cooldownJob("job-later", now.Add(time.Hour)),
	})
	ctx := context.Background()

	worker := CooldownReleaser{Jobs: store, Clock: store}
	if err := worker.RunOnce(ctx); err != nil {
		t.Fatalf("run once failed: %v", err)
	}

	due, err := store.GetJob(ctx, "job-due")
	if err != nil {
		t.Fatalf("get job failed: %v", err)
	}
	if due.Status != entities.JobStatusQueued || due.NextRetryAt != nil {
		t.Fatalf("expected due job requeued, got %+v", due)
	}

	later, err := store.GetJob(ctx, "job-later")
	if err != nil {
		t.Fatalf("get job failed: %v", err)
	}
	if later.Status != entities.JobStatusCooldown {
		t.Fatalf("expected future job untouched, got %s", later.Status)
	}
}
