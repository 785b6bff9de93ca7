package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	application "dttracker/contexts/creator-marketing/activation-service/application"
	"dttracker/contexts/creator-marketing/activation-service/domain/entities"
	domainerrors "dttracker/contexts/creator-marketing/activation-service/domain/errors"
	"dttracker/contexts/creator-marketing/activation-service/ports"
)

type InvitationRow struct {
	CreatorID   string
	QuotedRate  float64
	Currency    string
	BrandNotes  string
	Deliverable string
}

type CreateActivationCommand struct {
	BrandID        string
	IdempotencyKey string
	Title          string
	Brief          string
	DeadlineAt     *time.Time
	TotalBudget    float64
	Visibility     string
	// Rows optionally seeds the invitation list in the same request. When
	// present, TotalBudget must equal the sum of the quoted rates.
	Rows []InvitationRow
}

type CreateActivationUseCase struct {
	Activations    ports.ActivationRepository
	Invitations    ports.InvitationRepository
	Idempotency    ports.IdempotencyStore
	Clock          ports.Clock
	IDGenerator    ports.IDGenerator
	IdempotencyTTL time.Duration
	Logger         *slog.Logger
}

type CreateActivationResult struct {
	Activation  entities.Activation
	Invitations []entities.Invitation
	Replayed    bool
}

func (uc CreateActivationUseCase) Execute(ctx context.Context, cmd CreateActivationCommand) (CreateActivationResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(cmd.IdempotencyKey) == "" {
		return CreateActivationResult{}, domainerrors.ErrIdempotencyKeyRequired
	}

	now := uc.Clock.Now().UTC()
	rowsPayload, _ := json.Marshal(cmd.Rows)
	deadlinePart := ""
	if cmd.DeadlineAt != nil {
		deadlinePart = cmd.DeadlineAt.UTC().Format(time.RFC3339Nano)
	}
	requestHash := hashStrings(
		"create_activation",
		cmd.BrandID,
		cmd.Title,
		cmd.Brief,
		cmd.Visibility,
		strconv.FormatFloat(cmd.TotalBudget, 'f', -1, 64),
		deadlinePart,
		string(rowsPayload),
	)

	if record, found, err := uc.Idempotency.GetRecord(ctx, strings.TrimSpace(cmd.IdempotencyKey), now); err != nil {
		return CreateActivationResult{}, err
	} else if found {
		if record.RequestHash != requestHash {
			return CreateActivationResult{}, domainerrors.ErrIdempotencyConflict
		}
		var replayed CreateActivationResult
		if err := json.Unmarshal(record.ResponsePayload, &replayed); err != nil {
			return CreateActivationResult{}, err
		}
		replayed.Replayed = true
		return replayed, nil
	}

	activationID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return CreateActivationResult{}, err
	}

	activation := entities.Activation{
		ActivationID: activationID,
		BrandID:      strings.TrimSpace(cmd.BrandID),
		Title:        strings.TrimSpace(cmd.Title),
		Brief:        strings.TrimSpace(cmd.Brief),
		DeadlineAt:   cmd.DeadlineAt,
		TotalBudget:  cmd.TotalBudget,
		SpentAmount:  0,
		Status:       entities.ActivationStatusDraft,
		Visibility:   entities.ActivationVisibility(strings.TrimSpace(cmd.Visibility)),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if activation.Visibility == "" {
		activation.Visibility = entities.ActivationVisibilityPrivate
	}
	if !activation.ValidateBasics() || activation.BrandID == "" {
		return CreateActivationResult{}, domainerrors.ErrInvalidInput
	}

	invitations, err := uc.buildRows(ctx, activation, cmd.Rows, now)
	if err != nil {
		return CreateActivationResult{}, err
	}

	if err := uc.Activations.CreateActivation(ctx, activation); err != nil {
		return CreateActivationResult{}, err
	}
	if len(invitations) > 0 {
		if err := uc.Invitations.CreateInvitations(ctx, invitations); err != nil {
			return CreateActivationResult{}, err
		}
	}

	result := CreateActivationResult{Activation: activation, Invitations: invitations}
	serialized, err := json.Marshal(result)
	if err != nil {
		return CreateActivationResult{}, err
	}
	if err := uc.Idempotency.PutRecord(ctx, ports.IdempotencyRecord{
		Key:             strings.TrimSpace(cmd.IdempotencyKey),
		RequestHash:     requestHash,
		ResponsePayload: serialized,
		ExpiresAt:       now.Add(uc.IdempotencyTTL),
	}); err != nil {
		return CreateActivationResult{}, err
	}

	logger.Info("activation created",
		"event", "activation_created",
		"module", "creator-marketing/activation-service",
		"layer", "application",
		"activation_id", activation.ActivationID,
		"brand_id", activation.BrandID,
		"invitation_count", len(invitations),
	)
	return result, nil
}

func (uc CreateActivationUseCase) buildRows(
	ctx context.Context,
	activation entities.Activation,
	rows []InvitationRow,
	now time.Time,
) ([]entities.Invitation, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	seen := make(map[string]struct{}, len(rows))
	ratesTotal := 0.0
	invitations := make([]entities.Invitation, 0, len(rows))
	for _, row := range rows {
		invitationID, err := uc.IDGenerator.NewID(ctx)
		if err != nil {
			return nil, err
		}
		invitation := entities.Invitation{
			InvitationID: invitationID,
			ActivationID: activation.ActivationID,
			CreatorID:    strings.TrimSpace(row.CreatorID),
			QuotedRate:   row.QuotedRate,
			Currency:     strings.ToUpper(strings.TrimSpace(row.Currency)),
			Status:       entities.InvitationStatusPending,
			BrandNotes:   strings.TrimSpace(row.BrandNotes),
			Deliverable:  strings.TrimSpace(row.Deliverable),
			InvitedAt:    now,
		}
		if !invitation.ValidateBasics() {
			return nil, domainerrors.ErrInvalidInput
		}
		if _, dup := seen[invitation.CreatorID]; dup {
			return nil, domainerrors.ErrDuplicateInvitation
		}
		seen[invitation.CreatorID] = struct{}{}
		ratesTotal += invitation.QuotedRate
		invitations = append(invitations, invitation)
	}

	if math.Abs(ratesTotal-activation.TotalBudget) > 0.0001 {
		return nil, domainerrors.ErrInvalidInput
	}
	return invitations, nil
}
