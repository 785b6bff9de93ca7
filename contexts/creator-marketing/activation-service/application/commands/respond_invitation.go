package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "dttracker/contexts/creator-marketing/activation-service/application"
	"dttracker/contexts/creator-marketing/activation-service/domain/entities"
	domainerrors "dttracker/contexts/creator-marketing/activation-service/domain/errors"
	"dttracker/contexts/creator-marketing/activation-service/ports"
)

type AcceptInvitationCommand struct {
	InvitationID string
	ActorID      string
}

type AcceptInvitationUseCase struct {
	Invitations ports.InvitationRepository
	Activations ports.ActivationRepository
	Wallet      ports.WalletGateway
	Outbox      ports.OutboxWriter
	Inflight    *application.InflightRegistry
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

type AcceptInvitationResult struct {
	InvitationID    string
	LockedAmount    float64
	ActivationTitle string
}

// Execute moves pending to accepted and reserves the quoted rate from the
// brand wallet. A wallet failure leaves the invitation pending and unlocked.
func (uc AcceptInvitationUseCase) Execute(ctx context.Context, cmd AcceptInvitationCommand) (AcceptInvitationResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	invitationID := strings.TrimSpace(cmd.InvitationID)
	if invitationID == "" || strings.TrimSpace(cmd.ActorID) == "" {
		return AcceptInvitationResult{}, domainerrors.ErrInvalidInput
	}

	if uc.Inflight != nil {
		if !uc.Inflight.Acquire(invitationID) {
			return AcceptInvitationResult{}, domainerrors.ErrMutationInFlight
		}
		defer uc.Inflight.Release(invitationID)
	}

	invitation, err := uc.Invitations.GetInvitation(ctx, invitationID)
	if err != nil {
		return AcceptInvitationResult{}, err
	}
	if invitation.CreatorID != strings.TrimSpace(cmd.ActorID) {
		return AcceptInvitationResult{}, domainerrors.ErrNotInvitationCreator
	}
	if invitation.Status != entities.InvitationStatusPending {
		return AcceptInvitationResult{}, domainerrors.ErrInvalidStateTransition
	}

	activation, err := uc.Activations.GetActivation(ctx, invitation.ActivationID)
	if err != nil {
		return AcceptInvitationResult{}, err
	}

	// Lock before the status write: if the wallet rejects, nothing changed.
	if err := uc.Wallet.LockFunds(ctx, activation.BrandID, invitation.QuotedRate, invitation.InvitationID); err != nil {
		return AcceptInvitationResult{}, err
	}

	now := uc.Clock.Now().UTC()
	invitation.Status = entities.InvitationStatusAccepted
	invitation.WalletLocked = true
	invitation.RespondedAt = &now
	if err := uc.Invitations.UpdateInvitation(ctx, invitation); err != nil {
		// Status write failed after the lock succeeded; undo the reservation.
		if refundErr := uc.Wallet.RefundFunds(ctx, activation.BrandID, invitation.QuotedRate, invitation.InvitationID); refundErr != nil {
			logger.Error("wallet lock rollback failed",
				"event", "invitation_accept_rollback_failed",
				"module", "creator-marketing/activation-service",
				"layer", "application",
				"invitation_id", invitation.InvitationID,
				"error", refundErr.Error(),
			)
		}
		return AcceptInvitationResult{}, err
	}

	uc.appendEvent(ctx, "activation.invitation_accepted", invitation, now, map[string]any{
		"invitation_id": invitation.InvitationID,
		"activation_id": invitation.ActivationID,
		"creator_id":    invitation.CreatorID,
		"brand_id":      activation.BrandID,
		"locked_amount": invitation.QuotedRate,
	})

	logger.Info("invitation accepted",
		"event", "invitation_accepted",
		"module", "creator-marketing/activation-service",
		"layer", "application",
		"invitation_id", invitation.InvitationID,
		"activation_id", invitation.ActivationID,
		"locked_amount", invitation.QuotedRate,
	)
	return AcceptInvitationResult{
		InvitationID:    invitation.InvitationID,
		LockedAmount:    invitation.QuotedRate,
		ActivationTitle: activation.Title,
	}, nil
}

func (uc AcceptInvitationUseCase) appendEvent(
	ctx context.Context,
	eventType string,
	invitation entities.Invitation,
	occurredAt time.Time,
	payload map[string]any,
) {
	if uc.Outbox == nil || uc.IDGen == nil {
		return
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return
	}
	envelope := newInvitationEnvelope(eventID, eventType, invitation.InvitationID, occurredAt, payload)
	if err := uc.Outbox.AppendOutbox(ctx, envelope); err != nil {
		application.ResolveLogger(uc.Logger).Error("outbox append failed",
			"event", "invitation_outbox_append_failed",
			"module", "creator-marketing/activation-service",
			"layer", "application",
			"invitation_id", invitation.InvitationID,
			"event_type", eventType,
			"error", err.Error(),
		)
	}
}

type DeclineInvitationCommand struct {
	InvitationID string
	ActorID      string
}

type DeclineInvitationUseCase struct {
	Invitations ports.InvitationRepository
	Inflight    *application.InflightRegistry
	Clock       ports.Clock
	Logger      *slog.Logger
}

// Execute moves pending to declined. Funds are never touched on this path.
func (uc DeclineInvitationUseCase) Execute(ctx context.Context, cmd DeclineInvitationCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	invitationID := strings.TrimSpace(cmd.InvitationID)
	if invitationID == "" || strings.TrimSpace(cmd.ActorID) == "" {
		return domainerrors.ErrInvalidInput
	}

	if uc.Inflight != nil {
		if !uc.Inflight.Acquire(invitationID) {
			return domainerrors.ErrMutationInFlight
		}
		defer uc.Inflight.Release(invitationID)
	}

	invitation, err := uc.Invitations.GetInvitation(ctx, invitationID)
	if err != nil {
		return err
	}
	if invitation.CreatorID != strings.TrimSpace(cmd.ActorID) {
		return domainerrors.ErrNotInvitationCreator
	}
	if invitation.Status != entities.InvitationStatusPending {
		return domainerrors.ErrInvalidStateTransition
	}

	now := uc.Clock.Now().UTC()
	invitation.Status = entities.InvitationStatusDeclined
	invitation.RespondedAt = &now
	if err := uc.Invitations.UpdateInvitation(ctx, invitation); err != nil {
		return err
	}

	logger.Info("invitation declined",
		"event", "invitation_declined",
		"module", "creator-marketing/activation-service",
		"layer", "application",
		"invitation_id", invitation.InvitationID,
		"activation_id", invitation.ActivationID,
	)
	return nil
}
