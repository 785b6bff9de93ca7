package commands

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"dttracker/contexts/creator-marketing/activation-service/ports"
)

func newInvitationEnvelope(
	eventID string,
	eventType string,
	invitationID string,
	occurredAt time.Time,
	payload map[string]any,
) ports.EventEnvelope {
	return ports.EventEnvelope{
		EventID:        eventID,
		EventType:      eventType,
		SourceService:  "activation-service",
		OccurredAtUTC:  occurredAt.UTC(),
		CorrelationID:  eventID,
		EntityType:     "invitation",
		EntityID:       invitationID,
		PayloadVersion: 1,
		Payload:        payload,
	}
}

func hashStrings(parts ...string) string {
	h := sha256.New()
	for _, part := range parts {
		h.Write([]byte(strings.TrimSpace(part)))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
