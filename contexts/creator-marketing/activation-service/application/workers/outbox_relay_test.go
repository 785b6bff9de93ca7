package workers

import (
	"context"
	"testing"
	"time"

	"dttracker/contexts/creator-marketing/activation-service/adapters/memory"
	"dttracker/contexts/creator-marketing/activation-service/ports"
)

type capturingPublisher struct {
	topics []string
	events []ports.EventEnvelope
}

func (p *capturingPublisher) Publish(_ context.Context, topic string, event ports.EventEnvelope) error {
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return nil
}

func TestOutboxRelayPublishesPendingAndMarksThem(t *testing.T) {
	store := memory.NewStore(nil)
	ctx := context.Background()

	envelope := ports.EventEnvelope{
		EventID:       "evt-1",
		EventType:     "activation.invitation_accepted",
		SourceService: "activation-service",
		OccurredAtUTC: time.Now().UTC(),
		EntityType:    "invitation",
		EntityID:      "inv-1",
	}
	if err := store.AppendOutbox(ctx, envelope); err != nil {
		t.Fatalf("append outbox failed: %v", err)
	}

	publisher := &capturingPublisher{}
	relay := OutboxRelay{Outbox: store, Publisher: publisher, Clock: store}
	if err := relay.RunOnce(ctx); err != nil {
		t.Fatalf("relay run failed: %v", err)
	}

	if len(publisher.events) != 1 {
		t.Fatalf("expected one published event, got %d", len(publisher.events))
	}
	if publisher.topics[0] != "activation.invitation_accepted" {
		t.Fatalf("expected topic from event type, got %s", publisher.topics[0])
	}
	if publisher.events[0].EventID != "evt-1" {
		t.Fatalf("expected event id carried through, got %s", publisher.events[0].EventID)
	}

	pending, err := store.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected no pending rows after relay, got %d", len(pending))
	}
}
