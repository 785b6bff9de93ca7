package workers

import (
	"context"
	"log/slog"
	"time"

	application "dttracker/contexts/scrape-ops/scrape-monitor-service/application"
	"dttracker/contexts/scrape-ops/scrape-monitor-service/ports"
)

// CooldownReleaser re-queues cooldown jobs whose next_retry_at has passed.
type CooldownReleaser struct {
	Jobs      ports.JobRepository
	Clock     ports.Clock
	BatchSize int
	Logger    *slog.Logger
}

func (j CooldownReleaser) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(j.Logger)
	now := time.Now().UTC()
	if j.Clock != nil {
		now = j.Clock.Now().UTC()
	}

	limit := j.BatchSize
	if limit <= 0 {
		limit = 100
	}

	released, err := j.Jobs.ReleaseCooldown(ctx, now, limit)
	if err != nil {
		logger.Error("cooldown release sweep failed",
			"event", "scrape_cooldown_release_failed",
			"module", "scrape-ops/scrape-monitor-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	if released > 0 {
		logger.Info("cooldown release sweep completed",
			"event", "scrape_cooldown_release_completed",
			"module", "scrape-ops/scrape-monitor-service",
			"layer", "worker",
			"released_count", released,
		)
	}
	return nil
}
