package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	application "dttracker/contexts/creator-marketing/activation-service/application"
	"dttracker/contexts/creator-marketing/activation-service/domain/entities"
	domainerrors "dttracker/contexts/creator-marketing/activation-service/domain/errors"
	"dttracker/contexts/creator-marketing/activation-service/ports"
)

type CreateInvitationsCommand struct {
	ActivationID   string
	ActorID        string
	IdempotencyKey string
	Rows           []InvitationRow
}

type CreateInvitationsUseCase struct {
	Activations    ports.ActivationRepository
	Invitations    ports.InvitationRepository
	Idempotency    ports.IdempotencyStore
	Clock          ports.Clock
	IDGenerator    ports.IDGenerator
	IdempotencyTTL time.Duration
	Logger         *slog.Logger
}

type CreateInvitationsResult struct {
	Invitations []entities.Invitation
	Replayed    bool
}

// Execute creates the whole batch or nothing. Duplicate creators inside the
// batch or against existing invitations fail the request before any write.
func (uc CreateInvitationsUseCase) Execute(ctx context.Context, cmd CreateInvitationsCommand) (CreateInvitationsResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(cmd.IdempotencyKey) == "" {
		return CreateInvitationsResult{}, domainerrors.ErrIdempotencyKeyRequired
	}
	if len(cmd.Rows) == 0 {
		return CreateInvitationsResult{}, domainerrors.ErrInvalidInput
	}

	now := uc.Clock.Now().UTC()
	rowsPayload, _ := json.Marshal(cmd.Rows)
	requestHash := hashStrings("create_invitations", cmd.ActivationID, cmd.ActorID, string(rowsPayload))

	if record, found, err := uc.Idempotency.GetRecord(ctx, strings.TrimSpace(cmd.IdempotencyKey), now); err != nil {
		return CreateInvitationsResult{}, err
	} else if found {
		if record.RequestHash != requestHash {
			return CreateInvitationsResult{}, domainerrors.ErrIdempotencyConflict
		}
		var replayed CreateInvitationsResult
		if err := json.Unmarshal(record.ResponsePayload, &replayed); err != nil {
			return CreateInvitationsResult{}, err
		}
		replayed.Replayed = true
		return replayed, nil
	}

	activation, err := uc.Activations.GetActivation(ctx, strings.TrimSpace(cmd.ActivationID))
	if err != nil {
		return CreateInvitationsResult{}, err
	}
	if activation.BrandID != strings.TrimSpace(cmd.ActorID) {
		return CreateInvitationsResult{}, domainerrors.ErrNotActivationBrand
	}
	if !activation.IsOpenForInvitations() {
		return CreateInvitationsResult{}, domainerrors.ErrActivationClosed
	}

	existing, err := uc.Invitations.ListInvitationsByActivation(ctx, activation.ActivationID)
	if err != nil {
		return CreateInvitationsResult{}, err
	}
	invited := make(map[string]struct{}, len(existing))
	for _, item := range existing {
		invited[item.CreatorID] = struct{}{}
	}

	invitations := make([]entities.Invitation, 0, len(cmd.Rows))
	for _, row := range cmd.Rows {
		invitationID, err := uc.IDGenerator.NewID(ctx)
		if err != nil {
			return CreateInvitationsResult{}, err
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
			return CreateInvitationsResult{}, domainerrors.ErrInvalidInput
		}
		if _, dup := invited[invitation.CreatorID]; dup {
			return CreateInvitationsResult{}, domainerrors.ErrDuplicateInvitation
		}
		invited[invitation.CreatorID] = struct{}{}
		invitations = append(invitations, invitation)
	}

	if err := uc.Invitations.CreateInvitations(ctx, invitations); err != nil {
		return CreateInvitationsResult{}, err
	}

	result := CreateInvitationsResult{Invitations: invitations}
	serialized, err := json.Marshal(result)
	if err != nil {
		return CreateInvitationsResult{}, err
	}
	if err := uc.Idempotency.PutRecord(ctx, ports.IdempotencyRecord{
		Key:             strings.TrimSpace(cmd.IdempotencyKey),
		RequestHash:     requestHash,
		ResponsePayload: serialized,
		ExpiresAt:       now.Add(uc.IdempotencyTTL),
	}); err != nil {
		return CreateInvitationsResult{}, err
	}

	logger.Info("invitations created",
		"event", "invitations_created",
		"module", "creator-marketing/activation-service",
		"layer", "application",
		"activation_id", activation.ActivationID,
		"invitation_count", len(invitations),
	)
	return result, nil
}
