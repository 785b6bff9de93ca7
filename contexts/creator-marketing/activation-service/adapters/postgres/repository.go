package postgresadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"dttracker/contexts/creator-marketing/activation-service/domain/entities"
	domainerrors "dttracker/contexts/creator-marketing/activation-service/domain/errors"
	"dttracker/contexts/creator-marketing/activation-service/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateActivation(ctx context.Context, activation entities.Activation) error {
	row := activationModelFromEntity(activation)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidInput
		}
		return err
	}
	return nil
}

func (r *Repository) UpdateActivation(ctx context.Context, activation entities.Activation) error {
	result := r.db.WithContext(ctx).
		Model(&activationModel{}).
		Where("activation_id = ?", strings.TrimSpace(activation.ActivationID)).
		Updates(map[string]any{
			"title":        activation.Title,
			"brief":        activation.Brief,
			"deadline":     activation.DeadlineAt,
			"total_budget": activation.TotalBudget,
			"spent_amount": activation.SpentAmount,
			"status":       string(activation.Status),
			"visibility":   string(activation.Visibility),
			"updated_at":   activation.UpdatedAt,
			"completed_at": activation.CompletedAt,
			"cancelled_at": activation.CancelledAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrActivationNotFound
	}
	return nil
}

func (r *Repository) GetActivation(ctx context.Context, activationID string) (entities.Activation, error) {
	var row activationModel
	err := r.db.WithContext(ctx).
		Where("activation_id = ?", strings.TrimSpace(activationID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Activation{}, domainerrors.ErrActivationNotFound
		}
		return entities.Activation{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListActivations(ctx context.Context, filter ports.ActivationFilter) ([]entities.Activation, error) {
	tx := r.db.WithContext(ctx).Model(&activationModel{})
	if strings.TrimSpace(filter.BrandID) != "" {
		tx = tx.Where("brand_id = ?", strings.TrimSpace(filter.BrandID))
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}
	if filter.Visibility != "" {
		tx = tx.Where("visibility = ?", string(filter.Visibility))
	}

	var rows []activationModel
	if err := tx.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]entities.Activation, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) CreateInvitations(ctx context.Context, items []entities.Invitation) error {
	rows := make([]invitationModel, 0, len(items))
	for _, item := range items {
		rows = append(rows, invitationModelFromEntity(item))
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&rows).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateInvitation
		}
		return err
	}
	return nil
}

func (r *Repository) UpdateInvitation(ctx context.Context, invitation entities.Invitation) error {
	result := r.db.WithContext(ctx).
		Model(&invitationModel{}).
		Where("invitation_id = ?", strings.TrimSpace(invitation.InvitationID)).
		Updates(map[string]any{
			"status":        string(invitation.Status),
			"wallet_locked": invitation.WalletLocked,
			"responded_at":  invitation.RespondedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrInvitationNotFound
	}
	return nil
}

func (r *Repository) GetInvitation(ctx context.Context, invitationID string) (entities.Invitation, error) {
	var row invitationModel
	err := r.db.WithContext(ctx).
		Where("invitation_id = ?", strings.TrimSpace(invitationID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Invitation{}, domainerrors.ErrInvitationNotFound
		}
		return entities.Invitation{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListInvitationsByActivation(ctx context.Context, activationID string) ([]entities.Invitation, error) {
	var rows []invitationModel
	err := r.db.WithContext(ctx).
		Where("activation_id = ?", strings.TrimSpace(activationID)).
		Order("invited_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	items := make([]entities.Invitation, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListInvitationsByCreator(ctx context.Context, creatorID string) ([]entities.Invitation, error) {
	var rows []invitationModel
	err := r.db.WithContext(ctx).
		Where("creator_id = ?", strings.TrimSpace(creatorID)).
		Order("invited_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	items := make([]entities.Invitation, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ExpirePendingPastDeadline(ctx context.Context, now time.Time, limit int) ([]ports.ExpirationResult, error) {
	var results []ports.ExpirationResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []invitationModel
		err := tx.
			Joins("JOIN activations ON activations.activation_id = creator_request_invitations.activation_id").
			Where("creator_request_invitations.status = ?", string(entities.InvitationStatusPending)).
			Where("activations.deadline IS NOT NULL AND activations.deadline <= ?", now).
			Limit(limit).
			Find(&rows).
			Error
		if err != nil {
			return err
		}

		for _, row := range rows {
			update := tx.Model(&invitationModel{}).
				Where("invitation_id = ? AND status = ?", row.InvitationID, string(entities.InvitationStatusPending)).
				Update("status", string(entities.InvitationStatusExpired))
			if update.Error != nil {
				return update.Error
			}
			if update.RowsAffected == 0 {
				continue
			}
			results = append(results, ports.ExpirationResult{
				InvitationID: row.InvitationID,
				ActivationID: row.ActivationID,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Repository) AppendOutbox(ctx context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	row := outboxModel{
		OutboxID:     uuid.NewString(),
		EventType:    envelope.EventType,
		PartitionKey: envelope.EntityID,
		Payload:      payload,
		Status:       outboxStatusPending,
		CreatedAt:    envelope.OccurredAtUTC,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var rows []outboxModel
	err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      row.Payload,
			CreatedAt:    row.CreatedAt,
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ? AND status = ?", strings.TrimSpace(outboxID), outboxStatusPending).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	return nil
}

func (r *Repository) GetRecord(ctx context.Context, key string, now time.Time) (ports.IdempotencyRecord, bool, error) {
	var row idempotencyModel
	err := r.db.WithContext(ctx).
		Where("key = ? AND expires_at > ?", strings.TrimSpace(key), now).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.IdempotencyRecord{}, false, nil
		}
		return ports.IdempotencyRecord{}, false, err
	}
	return ports.IdempotencyRecord{
		Key:             row.Key,
		RequestHash:     row.RequestHash,
		ResponsePayload: row.ResponsePayload,
		ExpiresAt:       row.ExpiresAt,
	}, true, nil
}

func (r *Repository) PutRecord(ctx context.Context, record ports.IdempotencyRecord) error {
	var existing idempotencyModel
	err := r.db.WithContext(ctx).
		Where("key = ?", record.Key).
		First(&existing).
		Error
	if err == nil {
		if existing.RequestHash != record.RequestHash || !bytes.Equal(existing.ResponsePayload, record.ResponsePayload) {
			return domainerrors.ErrIdempotencyConflict
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	row := idempotencyModel{
		Key:             record.Key,
		RequestHash:     record.RequestHash,
		ResponsePayload: record.ResponsePayload,
		ExpiresAt:       record.ExpiresAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrIdempotencyConflict
		}
		return err
	}
	return nil
}

func (r *Repository) AppendNotification(ctx context.Context, notification entities.InvitationNotification) error {
	row := notificationModel{
		NotificationID: notification.NotificationID,
		RecipientID:    notification.RecipientID,
		InvitationID:   notification.InvitationID,
		ActivationID:   notification.ActivationID,
		Kind:           string(notification.Kind),
		Amount:         notification.Amount,
		OccurredAt:     notification.OccurredAt,
		CreatedAt:      notification.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) ListNotificationsByRecipient(ctx context.Context, recipientID string, limit int) ([]entities.InvitationNotification, error) {
	var rows []notificationModel
	query := r.db.WithContext(ctx).
		Where("recipient_id = ?", strings.TrimSpace(recipientID)).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.InvitationNotification, 0, len(rows))
	for _, row := range rows {
		items = append(items, entities.InvitationNotification{
			NotificationID: row.NotificationID,
			RecipientID:    row.RecipientID,
			InvitationID:   row.InvitationID,
			ActivationID:   row.ActivationID,
			Kind:           entities.NotificationKind(row.Kind),
			Amount:         row.Amount,
			OccurredAt:     row.OccurredAt,
			CreatedAt:      row.CreatedAt,
		})
	}
	return items, nil
}

func (r *Repository) ReserveEvent(ctx context.Context, eventID string, payloadHash string, expiresAt time.Time) (bool, error) {
	row := eventDedupModel{
		EventID:     strings.TrimSpace(eventID),
		PayloadHash: payloadHash,
		ExpiresAt:   expiresAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

type activationModel struct {
	ActivationID string     `gorm:"column:activation_id;primaryKey"`
	BrandID      string     `gorm:"column:brand_id"`
	Title        string     `gorm:"column:title"`
	Brief        string     `gorm:"column:brief"`
	DeadlineAt   *time.Time `gorm:"column:deadline"`
	TotalBudget  float64    `gorm:"column:total_budget"`
	SpentAmount  float64    `gorm:"column:spent_amount"`
	Status       string     `gorm:"column:status"`
	Visibility   string     `gorm:"column:visibility"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
	CompletedAt  *time.Time `gorm:"column:completed_at"`
	CancelledAt  *time.Time `gorm:"column:cancelled_at"`
}

func (activationModel) TableName() string {
	return "activations"
}

func activationModelFromEntity(item entities.Activation) activationModel {
	return activationModel{
		ActivationID: strings.TrimSpace(item.ActivationID),
		BrandID:      strings.TrimSpace(item.BrandID),
		Title:        item.Title,
		Brief:        item.Brief,
		DeadlineAt:   item.DeadlineAt,
		TotalBudget:  item.TotalBudget,
		SpentAmount:  item.SpentAmount,
		Status:       string(item.Status),
		Visibility:   string(item.Visibility),
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
		CompletedAt:  item.CompletedAt,
		CancelledAt:  item.CancelledAt,
	}
}

func (m activationModel) toEntity() entities.Activation {
	return entities.Activation{
		ActivationID: m.ActivationID,
		BrandID:      m.BrandID,
		Title:        m.Title,
		Brief:        m.Brief,
		DeadlineAt:   m.DeadlineAt,
		TotalBudget:  m.TotalBudget,
		SpentAmount:  m.SpentAmount,
		Status:       entities.ActivationStatus(m.Status),
		Visibility:   entities.ActivationVisibility(m.Visibility),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		CompletedAt:  m.CompletedAt,
		CancelledAt:  m.CancelledAt,
	}
}

type invitationModel struct {
	InvitationID string     `gorm:"column:invitation_id;primaryKey"`
	ActivationID string     `gorm:"column:activation_id;index:idx_invitation_activation_creator,unique"`
	CreatorID    string     `gorm:"column:creator_id;index:idx_invitation_activation_creator,unique"`
	QuotedRate   float64    `gorm:"column:quoted_rate"`
	Currency     string     `gorm:"column:currency"`
	Status       string     `gorm:"column:status"`
	WalletLocked bool       `gorm:"column:wallet_locked"`
	BrandNotes   string     `gorm:"column:brand_notes"`
	Deliverable  string     `gorm:"column:deliverable"`
	InvitedAt    time.Time  `gorm:"column:invited_at"`
	RespondedAt  *time.Time `gorm:"column:responded_at"`
}

func (invitationModel) TableName() string {
	return "creator_request_invitations"
}

func invitationModelFromEntity(item entities.Invitation) invitationModel {
	return invitationModel{
		InvitationID: strings.TrimSpace(item.InvitationID),
		ActivationID: strings.TrimSpace(item.ActivationID),
		CreatorID:    strings.TrimSpace(item.CreatorID),
		QuotedRate:   item.QuotedRate,
		Currency:     item.Currency,
		Status:       string(item.Status),
		WalletLocked: item.WalletLocked,
		BrandNotes:   item.BrandNotes,
		Deliverable:  item.Deliverable,
		InvitedAt:    item.InvitedAt,
		RespondedAt:  item.RespondedAt,
	}
}

func (m invitationModel) toEntity() entities.Invitation {
	return entities.Invitation{
		InvitationID: m.InvitationID,
		ActivationID: m.ActivationID,
		CreatorID:    m.CreatorID,
		QuotedRate:   m.QuotedRate,
		Currency:     m.Currency,
		Status:       entities.InvitationStatus(m.Status),
		WalletLocked: m.WalletLocked,
		BrandNotes:   m.BrandNotes,
		Deliverable:  m.Deliverable,
		InvitedAt:    m.InvitedAt,
		RespondedAt:  m.RespondedAt,
	}
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "activation_outbox"
}

type idempotencyModel struct {
	Key             string    `gorm:"column:key;primaryKey"`
	RequestHash     string    `gorm:"column:request_hash"`
	ResponsePayload []byte    `gorm:"column:response_payload"`
	ExpiresAt       time.Time `gorm:"column:expires_at"`
}

func (idempotencyModel) TableName() string {
	return "activation_idempotency_keys"
}

type notificationModel struct {
	NotificationID string    `gorm:"column:notification_id;primaryKey"`
	RecipientID    string    `gorm:"column:recipient_id;index"`
	InvitationID   string    `gorm:"column:invitation_id"`
	ActivationID   string    `gorm:"column:activation_id"`
	Kind           string    `gorm:"column:kind"`
	Amount         float64   `gorm:"column:amount"`
	OccurredAt     time.Time `gorm:"column:occurred_at"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (notificationModel) TableName() string {
	return "activation_notifications"
}

type eventDedupModel struct {
	EventID     string    `gorm:"column:event_id;primaryKey"`
	PayloadHash string    `gorm:"column:payload_hash"`
	ExpiresAt   time.Time `gorm:"column:expires_at"`
}

func (eventDedupModel) TableName() string {
	return "activation_event_dedup"
}
