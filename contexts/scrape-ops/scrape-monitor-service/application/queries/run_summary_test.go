package queries

import (
	"testing"

	"dttracker/contexts/scrape-ops/scrape-monitor-service/domain/entities"
)

func TestSummarizeRunsCountsPerPlatform(t *testing.T) {
	runs := []entities.ScrapeRun{
		{RunID: "run-1", Platform: "tiktok", Status: entities.RunStatusSucceeded},
		{RunID: "run-2", Platform: "tiktok", Status: entities.RunStatusFailed},
		{RunID: "run-3", Platform: "instagram", Status: entities.RunStatusSucceeded},
		{RunID: "run-4", Platform: "instagram", Status: entities.RunStatusTimedOut},
		{RunID: "run-5", Platform: "tiktok", Status: entities.RunStatusSucceeded},
	}

	summary := SummarizeRuns(runs)
	if summary.Total != 5 || summary.Succeeded != 3 {
		t.Fatalf("unexpected totals: %+v", summary)
	}
	if got := summary.ByPlatform["tiktok"]; got.Total != 3 || got.Succeeded != 2 {
		t.Fatalf("unexpected tiktok summary: %+v", got)
	}
	if got := summary.ByPlatform["instagram"]; got.Total != 2 || got.Succeeded != 1 {
		t.Fatalf("unexpected instagram summary: %+v", got)
	}
}

func TestSummarizeRunsOnEmptyWindow(t *testing.T) {
	summary := SummarizeRuns(nil)
	if summary.Total != 0 || summary.Succeeded != 0 || len(summary.ByPlatform) != 0 {
		t.Fatalf("expected empty summary, got %+v", summary)
	}
}

func TestSummarizeRunsIsDeterministic(t *testing.T) {
	runs := []entities.ScrapeRun{
		{RunID: "run-1", Platform: "tiktok", Status: entities.RunStatusSucceeded},
		{RunID: "run-2", Platform: "youtube", Status: entities.RunStatusFailed},
	}

	first := SummarizeRuns(runs)
	second := SummarizeRuns(runs)
	if first.Total != second.Total || first.Succeeded != second.Succeeded {
		t.Fatalf("expected identical folds, got %+v and %+v", first, second)
	}
	for platform, got := range first.ByPlatform {
		if second.ByPlatform[platform] != got {
			t.Fatalf("platform %s diverged between folds", platform)
		}
	}
}
