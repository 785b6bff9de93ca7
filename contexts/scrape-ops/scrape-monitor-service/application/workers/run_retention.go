package workers

import (
	"context"
	"log/slog"
	"time"

	application "dttracker/contexts/scrape-ops/scrape-monitor-service/application"
	"dttracker/contexts/scrape-ops/scrape-monitor-service/ports"
)

// RunRetention prunes finished runs older than the retention window so the
// append-only run table does not grow without bound.
type RunRetention struct {
	Runs      ports.RunRepository
	Clock     ports.Clock
	Retention time.Duration
	BatchSize int
	Logger    *slog.Logger
}

func (j RunRetention) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(j.Logger)
	now := time.Now().UTC()
	if j.Clock != nil {
		now = j.Clock.Now().UTC()
	}

	retention := j.Retention
	if retention <= 0 {
		retention = 30 * 24 * time.Hour
	}
	limit := j.BatchSize
	if limit <= 0 {
		limit = 100
	}

	pruned, err := j.Runs.PruneRunsBefore(ctx, now.Add(-retention), limit)
	if err != nil {
		logger.Error("run retention sweep failed",
			"event", "scrape_run_retention_failed",
			"module", "scrape-ops/scrape-monitor-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	if pruned > 0 {
		logger.Info("run retention sweep completed",
			"event", "scrape_run_retention_completed",
			"module", "scrape-ops/scrape-monitor-service",
			"layer", "worker",
			"pruned_count", pruned,
		)
	}
	return nil
}
