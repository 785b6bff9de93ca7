package workers

import (
	"context"
	"testing"
	"time"

	"dttracker/contexts/creator-marketing/activation-service/adapters/memory"
	"dttracker/contexts/creator-marketing/activation-service/domain/entities"
	"dttracker/contexts/creator-marketing/activation-service/ports"
)

func invitationEvent(eventID, eventType string, payload map[string]any) ports.EventEnvelope {
	return ports.EventEnvelope{
		EventID:       eventID,
		EventType:     eventType,
		SourceService: "activation-service",
		OccurredAtUTC: time.Now().UTC(),
		EntityType:    "invitation",
		EntityID:      "inv-1",
		Payload:       payload,
	}
}

func TestInvitationEventConsumerNotifiesBrandOnAccept(t *testing.T) {
	store := memory.NewStore(nil)
	ctx := context.Background()

	consumer := InvitationEventConsumer{
		Notifications: store,
		Dedup:         store,
		Clock:         store,
		IDGen:         store,
	}
	event := invitationEvent("evt-1", "activation.invitation_accepted", map[string]any{
		"invitation_id": "inv-1",
		"activation_id": "act-1",
		"creator_id":    "creator-1",
		"brand_id":      "brand-1",
		"locked_amount": 200.0,
	})
	if err := consumer.HandleInvitationEvent(ctx, event); err != nil {
		t.Fatalf("handle failed: %v", err)
	}

	items, err := store.ListNotificationsByRecipient(ctx, "brand-1", 10)
	if err != nil {
		t.Fatalf("list notifications failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one brand notification, got %d", len(items))
	}
	if items[0].Kind != entities.NotificationKindInvitationAccepted || items[0].Amount != 200 {
		t.Fatalf("unexpected notification: %+v", items[0])
	}
	if creatorItems, _ := store.ListNotificationsByRecipient(ctx, "creator-1", 10); len(creatorItems) != 0 {
		t.Fatalf("accept must not notify the creator, got %d", len(creatorItems))
	}
}

func TestInvitationEventConsumerNotifiesCreatorOnCompletionAndCancellation(t *testing.T) {
	store := memory.NewStore(nil)
	ctx := context.Background()

	consumer := InvitationEventConsumer{
		Notifications: store,
		Dedup:         store,
		Clock:         store,
		IDGen:         store,
	}
	completed := invitationEvent("evt-2", "activation.invitation_completed", map[string]any{
		"invitation_id":  "inv-1",
		"activation_id":  "act-1",
		"creator_id":     "creator-1",
		"brand_id":       "brand-1",
		"payment_amount": 100.0,
	})
	cancelled := invitationEvent("evt-3", "activation.invitation_cancelled", map[string]any{
		"invitation_id":   "inv-2",
		"activation_id":   "act-1",
		"creator_id":      "creator-1",
		"brand_id":        "brand-1",
		"refunded_amount": 50.0,
	})
	if err := consumer.HandleInvitationEvent(ctx, completed); err != nil {
		t.Fatalf("handle completed failed: %v", err)
	}
	if err := consumer.HandleInvitationEvent(ctx, cancelled); err != nil {
		t.Fatalf("handle cancelled failed: %v", err)
	}

	items, err := store.ListNotificationsByRecipient(ctx, "creator-1", 10)
	if err != nil {
		t.Fatalf("list notifications failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected two creator notifications, got %d", len(items))
	}
	kinds := map[entities.NotificationKind]float64{}
	for _, item := range items {
		kinds[item.Kind] = item.Amount
	}
	if kinds[entities.NotificationKindInvitationCompleted] != 100 {
		t.Fatalf("expected completed notification with amount 100, got %+v", kinds)
	}
	if kinds[entities.NotificationKindInvitationCancelled] != 50 {
		t.Fatalf("expected cancelled notification with amount 50, got %+v", kinds)
	}
}

func TestInvitationEventConsumerSkipsReplayedEvent(t *testing.T) {
	store := memory.NewStore(nil)
	ctx := context.Background()

	consumer := InvitationEventConsumer{
		Notifications: store,
		Dedup:         store,
		Clock:         store,
		IDGen:         store,
	}
	event := invitationEvent("evt-dup", "activation.invitation_accepted", map[string]any{
		"invitation_id": "inv-1",
		"activation_id": "act-1",
		"creator_id":    "creator-1",
		"brand_id":      "brand-1",
		"locked_amount": 200.0,
	})
	if err := consumer.HandleInvitationEvent(ctx, event); err != nil {
		t.Fatalf("first delivery failed: %v", err)
	}
	if err := consumer.HandleInvitationEvent(ctx, event); err != nil {
		t.Fatalf("redelivery failed: %v", err)
	}

	items, err := store.ListNotificationsByRecipient(ctx, "brand-1", 10)
	if err != nil {
		t.Fatalf("list notifications failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected redelivery deduplicated, got %d notifications", len(items))
	}
}

func TestInvitationEventConsumerRejectsPayloadWithoutInvitationID(t *testing.T) {
	store := memory.NewStore(nil)

	consumer := InvitationEventConsumer{
		Notifications: store,
		Dedup:         store,
		Clock:         store,
		IDGen:         store,
	}
	event := invitationEvent("evt-bad", "activation.invitation_accepted", map[string]any{
		"brand_id": "brand-1",
	})
	if err := consumer.HandleInvitationEvent(context.Background(), event); err == nil {
		t.Fatalf("expected error for payload without invitation_id")
	}
}
