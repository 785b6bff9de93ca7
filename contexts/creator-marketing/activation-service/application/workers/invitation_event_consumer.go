package workers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "dttracker/contexts/creator-marketing/activation-service/application"
	"dttracker/contexts/creator-marketing/activation-service/domain/entities"
	"dttracker/contexts/creator-marketing/activation-service/ports"
)

const (
	invitationAcceptedTopic   = "activation.invitation_accepted"
	invitationCompletedTopic  = "activation.invitation_completed"
	invitationCancelledTopic  = "activation.invitation_cancelled"
	defaultInvitationEventsCG = "activation-service-invitation-events-cg"
)

// InvitationEventConsumer projects invitation lifecycle events into the
// notification feed. Accepted notifies the brand; completed and cancelled
// notify the creator.
type InvitationEventConsumer struct {
	Subscriber    ports.EventSubscriber
	Notifications ports.NotificationRepository
	Dedup         ports.EventDedupStore
	Clock         ports.Clock
	IDGen         ports.IDGenerator
	ConsumerGroup string
	DedupTTL      time.Duration
	Disabled      bool
	Logger        *slog.Logger
}

func (c InvitationEventConsumer) Start(ctx context.Context) error {
	logger := application.ResolveLogger(c.Logger)
	if c.Disabled {
		logger.Info("invitation event consumer disabled by feature flag",
			"event", "invitation_event_consumer_disabled",
			"module", "creator-marketing/activation-service",
			"layer", "worker",
		)
		return nil
	}
	group := strings.TrimSpace(c.ConsumerGroup)
	if group == "" {
		group = defaultInvitationEventsCG
	}
	for _, topic := range []string{invitationAcceptedTopic, invitationCompletedTopic, invitationCancelledTopic} {
		if err := c.Subscriber.Subscribe(ctx, topic, group, c.HandleInvitationEvent); err != nil {
			logger.Error("invitation event subscribe failed",
				"event", "invitation_event_subscribe_failed",
				"module", "creator-marketing/activation-service",
				"layer", "worker",
				"topic", topic,
				"consumer_group", group,
				"error", err.Error(),
			)
			return err
		}
	}
	logger.Info("invitation event consumer subscriptions active",
		"event", "invitation_event_consumer_started",
		"module", "creator-marketing/activation-service",
		"layer", "worker",
		"consumer_group", group,
	)
	return nil
}

func (c InvitationEventConsumer) HandleInvitationEvent(ctx context.Context, event ports.EventEnvelope) error {
	logger := application.ResolveLogger(c.Logger)
	now := c.now()

	rawPayload, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("encode invitation event payload: %w", err)
	}
	if c.Dedup != nil {
		alreadyProcessed, err := c.Dedup.ReserveEvent(ctx, event.EventID, hashEventPayload(rawPayload), now.Add(c.dedupTTL()))
		if err != nil {
			logger.Error("invitation event dedupe failed",
				"event", "invitation_event_dedupe_failed",
				"module", "creator-marketing/activation-service",
				"layer", "worker",
				"event_id", event.EventID,
				"error", err.Error(),
			)
			return err
		}
		if alreadyProcessed {
			logger.Debug("invitation event already processed",
				"event", "invitation_event_replayed",
				"module", "creator-marketing/activation-service",
				"layer", "worker",
				"event_id", event.EventID,
			)
			return nil
		}
	}

	var payload struct {
		InvitationID   string  `json:"invitation_id"`
		ActivationID   string  `json:"activation_id"`
		CreatorID      string  `json:"creator_id"`
		BrandID        string  `json:"brand_id"`
		LockedAmount   float64 `json:"locked_amount"`
		PaymentAmount  float64 `json:"payment_amount"`
		RefundedAmount float64 `json:"refunded_amount"`
	}
	if err := json.Unmarshal(rawPayload, &payload); err != nil {
		return fmt.Errorf("decode invitation event payload: %w", err)
	}
	if strings.TrimSpace(payload.InvitationID) == "" {
		return fmt.Errorf("invitation event %s missing invitation_id", event.EventID)
	}

	var kind entities.NotificationKind
	var recipientID string
	var amount float64
	switch event.EventType {
	case invitationAcceptedTopic:
		kind = entities.NotificationKindInvitationAccepted
		recipientID = payload.BrandID
		amount = payload.LockedAmount
	case invitationCompletedTopic:
		kind = entities.NotificationKindInvitationCompleted
		recipientID = payload.CreatorID
		amount = payload.PaymentAmount
	case invitationCancelledTopic:
		kind = entities.NotificationKindInvitationCancelled
		recipientID = payload.CreatorID
		amount = payload.RefundedAmount
	default:
		return fmt.Errorf("unexpected invitation event type %q", event.EventType)
	}
	if strings.TrimSpace(recipientID) == "" {
		return fmt.Errorf("invitation event %s missing recipient", event.EventID)
	}

	notificationID, err := c.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	occurredAt := event.OccurredAtUTC.UTC()
	if occurredAt.IsZero() {
		occurredAt = now
	}
	notification := entities.InvitationNotification{
		NotificationID: notificationID,
		RecipientID:    strings.TrimSpace(recipientID),
		InvitationID:   strings.TrimSpace(payload.InvitationID),
		ActivationID:   strings.TrimSpace(payload.ActivationID),
		Kind:           kind,
		Amount:         amount,
		OccurredAt:     occurredAt,
		CreatedAt:      now,
	}
	if err := c.Notifications.AppendNotification(ctx, notification); err != nil {
		logger.Error("invitation notification append failed",
			"event", "invitation_notification_append_failed",
			"module", "creator-marketing/activation-service",
			"layer", "worker",
			"event_id", event.EventID,
			"invitation_id", notification.InvitationID,
			"error", err.Error(),
		)
		return err
	}

	logger.Info("invitation event projected",
		"event", "invitation_event_projected",
		"module", "creator-marketing/activation-service",
		"layer", "worker",
		"event_id", event.EventID,
		"invitation_id", notification.InvitationID,
		"recipient_id", notification.RecipientID,
		"kind", string(notification.Kind),
	)
	return nil
}

func (c InvitationEventConsumer) now() time.Time {
	now := time.Now().UTC()
	if c.Clock != nil {
		now = c.Clock.Now().UTC()
	}
	return now
}

func (c InvitationEventConsumer) dedupTTL() time.Duration {
	if c.DedupTTL <= 0 {
		return 7 * 24 * time.Hour
	}
	return c.DedupTTL
}

func hashEventPayload(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
