package messaging

import (
	"context"
	"testing"
	"time"

	"dttracker/internal/shared/events"
)

func TestKafkaDeliversPublishedEventToSubscriber(t *testing.T) {
	bus, err := NewKafka(nil, nil)
	if err != nil {
		t.Fatalf("new kafka failed: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan events.Envelope, 1)
	err = bus.Subscribe(ctx, "activation.invitation_accepted", "test-cg", func(_ context.Context, event events.Envelope) error {
		received <- event
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	event := events.Envelope{EventID: "evt-1", EventType: "activation.invitation_accepted"}
	if err := bus.Publish(context.Background(), "activation.invitation_accepted", event); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	select {
	case got := <-received:
		if got.EventID != "evt-1" {
			t.Fatalf("expected evt-1, got %s", got.EventID)
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for delivery")
	}
}

func TestKafkaRemovesSubscriberOnContextCancel(t *testing.T) {
	bus, err := NewKafka(nil, nil)
	if err != nil {
		t.Fatalf("new kafka failed: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())

	err = bus.Subscribe(ctx, "activation.invitation_completed", "test-cg", func(context.Context, events.Envelope) error {
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	cancel()

	deadline := time.Now().Add(time.Second)
	for {
		bus.mu.RLock()
		remaining := len(bus.subscribers["activation.invitation_completed"])
		bus.mu.RUnlock()
		if remaining == 0 {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("expected subscriber removed after cancel, %d remaining", remaining)
		}
		time.Sleep(10 * time.Millisecond)
	}
}
