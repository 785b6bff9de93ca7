package workers

import (
	"context"
	"testing"
	"time"

	"dttracker/contexts/scrape-ops/scrape-monitor-service/adapters/memory"
	"dttracker/contexts/scrape-ops/scrape-monitor-service/domain/entities"
)

func TestRunRetentionPrunesOldFinishedRuns(t *testing.T) {
	store := memory.NewStore(nil)
	ctx := context.Background()
	now := time.Now().UTC()
	old := now.Add(-60 * 24 * time.Hour)

	finishedAt := old.Add(time.Minute)
	if err := store.AppendRun(ctx, entities.ScrapeRun{
		RunID:      "run-old",
		JobID:      "job-1",
		Status:     entities.RunStatusSucceeded,
		StartedAt:  old,
		FinishedAt: &finishedAt,
		Platform:   "tiktok",
	}); err != nil {
		t.Fatalf("seed run failed: %v", err)
	}
	if err := store.AppendRun(ctx, entities.ScrapeRun{
		RunID:     "run-recent",
		JobID:     "job-1",
		Status:    entities.RunStatusSucceeded,
		StartedAt: now.Add(-time.Hour),
		Platform:  "tiktok",
	}); err != nil {
		t.Fatalf("seed run failed: %v", err)
	}
	if err := store.AppendRun(ctx, entities.ScrapeRun{
		RunID:     "run-old-open",
		JobID:     "job-2",
		Status:    entities.RunStatusStarted,
		StartedAt: old,
		Platform:  "tiktok",
	}); err != nil {
		t.Fatalf("seed run failed: %v", err)
	}

	worker := RunRetention{Runs: store, Clock: store, Retention: 30 * 24 * time.Hour}
	if err := worker.RunOnce(ctx); err != nil {
		t.Fatalf("run once failed: %v", err)
	}

	if _, err := store.GetRun(ctx, "run-old"); err == nil {
		t.Fatalf("expected old finished run pruned")
	}
	if _, err := store.GetRun(ctx, "run-recent"); err != nil {
		t.Fatalf("expected recent run kept: %v", err)
	}
	if _, err := store.GetRun(ctx, "run-old-open"); err != nil {
		t.Fatalf("expected unfinished run kept: %v", err)
	}
}

func TestRunRetentionDefaultsToThirtyDayWindow(t *testing.T) {
	store := memory.NewStore(nil)
	ctx := context.Background()
	now := time.Now().UTC()

	beyondDefault := now.Add(-31 * 24 * time.Hour)
	finishedBeyond := beyondDefault.Add(time.Minute)
	if err := store.AppendRun(ctx, entities.ScrapeRun{
		RunID:      "run-beyond-default",
		JobID:      "job-1",
		Status:     entities.RunStatusFailed,
		StartedAt:  beyondDefault,
		FinishedAt: &finishedBeyond,
		Platform:   "instagram",
	}); err != nil {
		t.Fatalf("seed run failed: %v", err)
	}
	withinDefault := now.Add(-29 * 24 * time.Hour)
	finishedWithin := withinDefault.Add(time.Minute)
	if err := store.AppendRun(ctx, entities.ScrapeRun{
		RunID:      "run-within-default",
		JobID:      "job-1",
		Status:     entities.RunStatusFailed,
		StartedAt:  withinDefault,
		FinishedAt: &finishedWithin,
		Platform:   "instagram",
	}); err != nil {
		t.Fatalf("seed run failed: %v", err)
	}

	worker := RunRetention{Runs: store, Clock: store}
	if err := worker.RunOnce(ctx); err != nil {
		t.Fatalf("run once failed: %v", err)
	}

	if _, err := store.GetRun(ctx, "run-beyond-default"); err == nil {
		t.Fatalf("expected run beyond the default window pruned")
	}
	if _, err := store.GetRun(ctx, "run-within-default"); err != nil {
		t.Fatalf("expected run inside the default window kept: %v", err)
	}
}
