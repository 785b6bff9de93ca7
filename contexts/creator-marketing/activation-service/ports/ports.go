package ports

import (
	"context"
	"time"

	"dttracker/contexts/creator-marketing/activation-service/domain/entities"
	"dttracker/internal/shared/events"
)

type ActivationFilter struct {
	BrandID    string
	Status     entities.ActivationStatus
	Visibility entities.ActivationVisibility
}

type ActivationRepository interface {
	CreateActivation(ctx context.Context, activation entities.Activation) error
	UpdateActivation(ctx context.Context, activation entities.Activation) error
	GetActivation(ctx context.Context, activationID string) (entities.Activation, error)
	ListActivations(ctx context.Context, filter ActivationFilter) ([]entities.Activation, error)
}

type InvitationRepository interface {
	// CreateInvitations persists the whole batch or nothing.
	CreateInvitations(ctx context.Context, items []entities.Invitation) error
	UpdateInvitation(ctx context.Context, invitation entities.Invitation) error
	GetInvitation(ctx context.Context, invitationID string) (entities.Invitation, error)
	ListInvitationsByActivation(ctx context.Context, activationID string) ([]entities.Invitation, error)
	ListInvitationsByCreator(ctx context.Context, creatorID string) ([]entities.Invitation, error)
}

type ExpirationResult struct {
	InvitationID string
	ActivationID string
}

type ExpirationRepository interface {
	// ExpirePendingPastDeadline marks pending invitations whose activation
	// deadline passed as expired, up to limit rows.
	ExpirePendingPastDeadline(ctx context.Context, now time.Time, limit int) ([]ExpirationResult, error)
}

// WalletGateway is the finance-core boundary. Lock reserves funds on accept,
// release pays out on completion, refund returns a cancelled lock.
type WalletGateway interface {
	LockFunds(ctx context.Context, brandID string, amount float64, referenceID string) error
	ReleaseFunds(ctx context.Context, brandID string, amount float64, referenceID string) error
	RefundFunds(ctx context.Context, brandID string, amount float64, referenceID string) error
}

type IdempotencyRecord struct {
	Key             string
	RequestHash     string
	ResponsePayload []byte
	ExpiresAt       time.Time
}

type IdempotencyStore interface {
	GetRecord(ctx context.Context, key string, now time.Time) (IdempotencyRecord, bool, error)
	PutRecord(ctx context.Context, record IdempotencyRecord) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type EventEnvelope = events.Envelope

type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, envelope EventEnvelope) error
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

type EventSubscriber interface {
	Subscribe(ctx context.Context, topic string, consumerGroup string, handler func(context.Context, EventEnvelope) error) error
}

type EventDedupStore interface {
	// ReserveEvent records the event id for at-least-once delivery; returns
	// true when the event was already processed.
	ReserveEvent(ctx context.Context, eventID string, payloadHash string, expiresAt time.Time) (bool, error)
}

type NotificationRepository interface {
	AppendNotification(ctx context.Context, notification entities.InvitationNotification) error
	ListNotificationsByRecipient(ctx context.Context, recipientID string, limit int) ([]entities.InvitationNotification, error)
}
