package commands

import (
	"context"
	"log/slog"
	"strings"

	application "dttracker/contexts/scrape-ops/scrape-monitor-service/application"
	domainerrors "dttracker/contexts/scrape-ops/scrape-monitor-service/domain/errors"
	"dttracker/contexts/scrape-ops/scrape-monitor-service/ports"
)

type RetryJobsCommand struct {
	JobIDs []string
}

type RetryJobsUseCase struct {
	Jobs   ports.JobRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

type RetryJobsResult struct {
	RequestedCount int
	RetriedCount   int
}

// Execute re-queues the selected jobs in one atomic batch. Jobs that lost
// eligibility between load and dispatch are skipped silently, so the retried
// count may be smaller than the selection.
func (uc RetryJobsUseCase) Execute(ctx context.Context, cmd RetryJobsCommand) (RetryJobsResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	ids := make([]string, 0, len(cmd.JobIDs))
	seen := make(map[string]struct{}, len(cmd.JobIDs))
	for _, raw := range cmd.JobIDs {
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return RetryJobsResult{}, domainerrors.ErrEmptySelection
	}

	now := uc.Clock.Now().UTC()
	retried, err := uc.Jobs.RequeueFailed(ctx, ids, now)
	if err != nil {
		logger.Error("bulk retry failed",
			"event", "scrape_bulk_retry_failed",
			"module", "scrape-ops/scrape-monitor-service",
			"layer", "application",
			"requested_count", len(ids),
			"error", err.Error(),
		)
		return RetryJobsResult{}, err
	}

	logger.Info("bulk retry dispatched",
		"event", "scrape_bulk_retry_dispatched",
		"module", "scrape-ops/scrape-monitor-service",
		"layer", "application",
		"requested_count", len(ids),
		"retried_count", retried,
	)
	return RetryJobsResult{
		RequestedCount: len(ids),
		RetriedCount:   retried,
	}, nil
}
