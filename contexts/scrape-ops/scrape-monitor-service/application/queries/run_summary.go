package queries

import (
	"context"
	"log/slog"
	"time"

	"dttracker/contexts/scrape-ops/scrape-monitor-service/domain/entities"
	"dttracker/contexts/scrape-ops/scrape-monitor-service/ports"
)

type PlatformSummary struct {
	Total     int
	Succeeded int
}

type RunSummary struct {
	Total      int
	Succeeded  int
	ByPlatform map[string]PlatformSummary
}

// SummarizeRuns is a pure fold over a run window. Calling it twice on the
// same slice yields identical totals.
func SummarizeRuns(runs []entities.ScrapeRun) RunSummary {
	summary := RunSummary{ByPlatform: make(map[string]PlatformSummary)}
	for _, run := range runs {
		summary.Total++
		platform := summary.ByPlatform[run.Platform]
		platform.Total++
		if run.Status == entities.RunStatusSucceeded {
			summary.Succeeded++
			platform.Succeeded++
		}
		summary.ByPlatform[run.Platform] = platform
	}
	return summary
}

// RunSummaryUseCase computes the operational KPI. The window is always the
// trailing 24 hours, independent of whatever range the runs list shows.
type RunSummaryUseCase struct {
	Runs   ports.RunRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

const summaryWindow = 24 * time.Hour

func (uc RunSummaryUseCase) Execute(ctx context.Context) (RunSummary, error) {
	now := uc.Clock.Now().UTC()
	runs, err := uc.Runs.ListRuns(ctx, ports.RunFilter{
		From: now.Add(-summaryWindow),
		To:   now,
	})
	if err != nil {
		return RunSummary{}, err
	}
	return SummarizeRuns(runs), nil
}
