package queries

import (
	"context"
	"log/slog"
	"strings"

	"dttracker/contexts/creator-marketing/activation-service/domain/entities"
	"dttracker/contexts/creator-marketing/activation-service/ports"
)

// ListNotificationsUseCase backs the "my notifications" feed, newest first.
type ListNotificationsUseCase struct {
	Notifications ports.NotificationRepository
	Logger        *slog.Logger
}

func (uc ListNotificationsUseCase) Execute(ctx context.Context, recipientID string, limit int) ([]entities.InvitationNotification, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.Notifications.ListNotificationsByRecipient(ctx, strings.TrimSpace(recipientID), limit)
}
