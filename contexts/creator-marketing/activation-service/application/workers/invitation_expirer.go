package workers

import (
	"context"
	"log/slog"
	"time"

	application "dttracker/contexts/creator-marketing/activation-service/application"
	"dttracker/contexts/creator-marketing/activation-service/ports"
)

// InvitationExpirer sweeps pending invitations whose activation deadline
// passed and marks them expired.
type InvitationExpirer struct {
	Invitations ports.ExpirationRepository
	Clock       ports.Clock
	BatchSize   int
	Logger      *slog.Logger
}

func (j InvitationExpirer) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(j.Logger)
	now := time.Now().UTC()
	if j.Clock != nil {
		now = j.Clock.Now().UTC()
	}

	limit := j.BatchSize
	if limit <= 0 {
		limit = 100
	}

	expired, err := j.Invitations.ExpirePendingPastDeadline(ctx, now, limit)
	if err != nil {
		logger.Error("invitation expiration sweep failed",
			"event", "invitation_expiration_failed",
			"module", "creator-marketing/activation-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	if len(expired) > 0 {
		logger.Info("invitation expiration sweep completed",
			"event", "invitation_expiration_completed",
			"module", "creator-marketing/activation-service",
			"layer", "worker",
			"expired_count", len(expired),
		)
	}
	return nil
}
