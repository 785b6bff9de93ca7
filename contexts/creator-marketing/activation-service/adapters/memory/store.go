package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"dttracker/contexts/creator-marketing/activation-service/domain/entities"
	domainerrors "dttracker/contexts/creator-marketing/activation-service/domain/errors"
	"dttracker/contexts/creator-marketing/activation-service/ports"

	"github.com/google/uuid"
)

type outboxRow struct {
	message   ports.OutboxMessage
	published bool
}

type Store struct {
	mu sync.RWMutex

	activations map[string]entities.Activation
	invitations map[string]entities.Invitation

	// wallet balances keyed by brand id; the in-memory module stands in for
	// the finance-core gateway in tests.
	balances map[string]float64
	locked   map[string]float64

	outbox        []outboxRow
	idempotency   map[string]ports.IdempotencyRecord
	notifications []entities.InvitationNotification
	dedup         map[string]time.Time
}

func NewStore(seed []entities.Activation) *Store {
	activations := make(map[string]entities.Activation, len(seed))
	for _, item := range seed {
		activations[item.ActivationID] = item
	}
	return &Store{
		activations: activations,
		invitations: make(map[string]entities.Invitation),
		balances:    make(map[string]float64),
		locked:      make(map[string]float64),
		idempotency: make(map[string]ports.IdempotencyRecord),
		dedup:       make(map[string]time.Time),
	}
}

func (s *Store) CreateActivation(_ context.Context, activation entities.Activation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.activations[activation.ActivationID]; exists {
		return domainerrors.ErrInvalidInput
	}
	s.activations[activation.ActivationID] = activation
	return nil
}

func (s *Store) UpdateActivation(_ context.Context, activation entities.Activation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.activations[activation.ActivationID]; !exists {
		return domainerrors.ErrActivationNotFound
	}
	s.activations[activation.ActivationID] = activation
	return nil
}

func (s *Store) GetActivation(_ context.Context, activationID string) (entities.Activation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.activations[strings.TrimSpace(activationID)]
	if !exists {
		return entities.Activation{}, domainerrors.ErrActivationNotFound
	}
	return item, nil
}

func (s *Store) ListActivations(_ context.Context, filter ports.ActivationFilter) ([]entities.Activation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Activation, 0, len(s.activations))
	for _, activation := range s.activations {
		if strings.TrimSpace(filter.BrandID) != "" && activation.BrandID != strings.TrimSpace(filter.BrandID) {
			continue
		}
		if filter.Status != "" && activation.Status != filter.Status {
			continue
		}
		if filter.Visibility != "" && activation.Visibility != filter.Visibility {
			continue
		}
		items = append(items, activation)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) CreateInvitations(_ context.Context, items []entities.Invitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range items {
		if _, exists := s.invitations[item.InvitationID]; exists {
			return domainerrors.ErrDuplicateInvitation
		}
	}
	for _, item := range items {
		s.invitations[item.InvitationID] = item
	}
	return nil
}

func (s *Store) UpdateInvitation(_ context.Context, invitation entities.Invitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.invitations[invitation.InvitationID]; !exists {
		return domainerrors.ErrInvitationNotFound
	}
	s.invitations[invitation.InvitationID] = invitation
	return nil
}

func (s *Store) GetInvitation(_ context.Context, invitationID string) (entities.Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.invitations[strings.TrimSpace(invitationID)]
	if !exists {
		return entities.Invitation{}, domainerrors.ErrInvitationNotFound
	}
	return item, nil
}

func (s *Store) ListInvitationsByActivation(_ context.Context, activationID string) ([]entities.Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Invitation, 0)
	for _, item := range s.invitations {
		if item.ActivationID == strings.TrimSpace(activationID) {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].InvitedAt.Before(items[j].InvitedAt)
	})
	return items, nil
}

func (s *Store) ListInvitationsByCreator(_ context.Context, creatorID string) ([]entities.Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Invitation, 0)
	for _, item := range s.invitations {
		if item.CreatorID == strings.TrimSpace(creatorID) {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].InvitedAt.Before(items[j].InvitedAt)
	})
	return items, nil
}

func (s *Store) ExpirePendingPastDeadline(_ context.Context, now time.Time, limit int) ([]ports.ExpirationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]ports.ExpirationResult, 0)
	for id, invitation := range s.invitations {
		if len(results) >= limit {
			break
		}
		if invitation.Status != entities.InvitationStatusPending {
			continue
		}
		activation, exists := s.activations[invitation.ActivationID]
		if !exists || activation.DeadlineAt == nil || activation.DeadlineAt.After(now) {
			continue
		}
		invitation.Status = entities.InvitationStatusExpired
		s.invitations[id] = invitation
		results = append(results, ports.ExpirationResult{
			InvitationID: id,
			ActivationID: invitation.ActivationID,
		})
	}
	return results, nil
}

// SetBalance seeds a brand wallet for tests.
func (s *Store) SetBalance(brandID string, amount float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.balances[brandID] = amount
}

func (s *Store) Balance(brandID string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.balances[brandID]
}

func (s *Store) LockedBalance(brandID string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.locked[brandID]
}

func (s *Store) LockFunds(_ context.Context, brandID string, amount float64, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.balances[brandID] < amount {
		return domainerrors.ErrInsufficientFunds
	}
	s.balances[brandID] -= amount
	s.locked[brandID] += amount
	return nil
}

func (s *Store) ReleaseFunds(_ context.Context, brandID string, amount float64, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.locked[brandID] < amount {
		return domainerrors.ErrInvalidStateTransition
	}
	s.locked[brandID] -= amount
	return nil
}

func (s *Store) RefundFunds(_ context.Context, brandID string, amount float64, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.locked[brandID] < amount {
		return domainerrors.ErrInvalidStateTransition
	}
	s.locked[brandID] -= amount
	s.balances[brandID] += amount
	return nil
}

func (s *Store) AppendOutbox(_ context.Context, envelope ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	s.outbox = append(s.outbox, outboxRow{
		message: ports.OutboxMessage{
			OutboxID:     uuid.NewString(),
			EventType:    envelope.EventType,
			PartitionKey: envelope.EntityID,
			Payload:      payload,
			CreatedAt:    envelope.OccurredAtUTC,
		},
	})
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.OutboxMessage, 0, limit)
	for _, row := range s.outbox {
		if row.published {
			continue
		}
		items = append(items, row.message)
		if len(items) >= limit {
			break
		}
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, row := range s.outbox {
		if row.message.OutboxID == outboxID {
			s.outbox[i].published = true
			return nil
		}
	}
	return domainerrors.ErrInvalidInput
}

func (s *Store) GetRecord(_ context.Context, key string, now time.Time) (ports.IdempotencyRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, exists := s.idempotency[key]
	if !exists {
		return ports.IdempotencyRecord{}, false, nil
	}
	if !record.ExpiresAt.After(now) {
		delete(s.idempotency, key)
		return ports.IdempotencyRecord{}, false, nil
	}
	return record, true, nil
}

func (s *Store) PutRecord(_ context.Context, record ports.IdempotencyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.idempotency[record.Key]
	if exists {
		if existing.RequestHash != record.RequestHash {
			return domainerrors.ErrIdempotencyConflict
		}
		if !bytes.Equal(existing.ResponsePayload, record.ResponsePayload) {
			return domainerrors.ErrIdempotencyConflict
		}
	}
	s.idempotency[record.Key] = record
	return nil
}

func (s *Store) AppendNotification(_ context.Context, notification entities.InvitationNotification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifications = append(s.notifications, notification)
	return nil
}

func (s *Store) ListNotificationsByRecipient(_ context.Context, recipientID string, limit int) ([]entities.InvitationNotification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.InvitationNotification, 0, limit)
	for _, item := range s.notifications {
		if item.RecipientID == strings.TrimSpace(recipientID) {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) ReserveEvent(_ context.Context, eventID string, _ string, expiresAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.dedup[eventID]; exists {
		return true, nil
	}
	s.dedup[eventID] = expiresAt
	return false, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
