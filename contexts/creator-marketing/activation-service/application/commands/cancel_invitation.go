package commands

import (
	"context"
	"log/slog"
	"strings"

	application "dttracker/contexts/creator-marketing/activation-service/application"
	"dttracker/contexts/creator-marketing/activation-service/domain/entities"
	domainerrors "dttracker/contexts/creator-marketing/activation-service/domain/errors"
	"dttracker/contexts/creator-marketing/activation-service/ports"
)

type CancelInvitationCommand struct {
	InvitationID string
	ActorID      string
}

type CancelInvitationUseCase struct {
	Invitations ports.InvitationRepository
	Activations ports.ActivationRepository
	Wallet      ports.WalletGateway
	Outbox      ports.OutboxWriter
	Inflight    *application.InflightRegistry
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

type CancelInvitationResult struct {
	InvitationID   string
	RefundedAmount float64
}

// Execute cancels a pending or accepted invitation. A locked reservation is
// refunded to the brand wallet and the refunded amount returned.
func (uc CancelInvitationUseCase) Execute(ctx context.Context, cmd CancelInvitationCommand) (CancelInvitationResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	invitationID := strings.TrimSpace(cmd.InvitationID)
	if invitationID == "" || strings.TrimSpace(cmd.ActorID) == "" {
		return CancelInvitationResult{}, domainerrors.ErrInvalidInput
	}

	if uc.Inflight != nil {
		if !uc.Inflight.Acquire(invitationID) {
			return CancelInvitationResult{}, domainerrors.ErrMutationInFlight
		}
		defer uc.Inflight.Release(invitationID)
	}

	invitation, err := uc.Invitations.GetInvitation(ctx, invitationID)
	if err != nil {
		return CancelInvitationResult{}, err
	}
	activation, err := uc.Activations.GetActivation(ctx, invitation.ActivationID)
	if err != nil {
		return CancelInvitationResult{}, err
	}
	if activation.BrandID != strings.TrimSpace(cmd.ActorID) {
		return CancelInvitationResult{}, domainerrors.ErrNotActivationBrand
	}
	if !invitation.CanCancel() {
		return CancelInvitationResult{}, domainerrors.ErrInvalidStateTransition
	}

	refunded := 0.0
	if invitation.WalletLocked {
		if err := uc.Wallet.RefundFunds(ctx, activation.BrandID, invitation.QuotedRate, invitation.InvitationID); err != nil {
			return CancelInvitationResult{}, err
		}
		refunded = invitation.QuotedRate
	}

	now := uc.Clock.Now().UTC()
	invitation.Status = entities.InvitationStatusCancelled
	invitation.WalletLocked = false
	if err := uc.Invitations.UpdateInvitation(ctx, invitation); err != nil {
		return CancelInvitationResult{}, err
	}

	if uc.Outbox != nil && uc.IDGen != nil {
		if eventID, err := uc.IDGen.NewID(ctx); err == nil {
			envelope := newInvitationEnvelope(eventID, "activation.invitation_cancelled", invitation.InvitationID, now, map[string]any{
				"invitation_id":   invitation.InvitationID,
				"activation_id":   invitation.ActivationID,
				"creator_id":      invitation.CreatorID,
				"brand_id":        activation.BrandID,
				"refunded_amount": refunded,
			})
			if err := uc.Outbox.AppendOutbox(ctx, envelope); err != nil {
				logger.Error("outbox append failed",
					"event", "invitation_outbox_append_failed",
					"module", "creator-marketing/activation-service",
					"layer", "application",
					"invitation_id", invitation.InvitationID,
					"error", err.Error(),
				)
			}
		}
	}

	logger.Info("invitation cancelled",
		"event", "invitation_cancelled",
		"module", "creator-marketing/activation-service",
		"layer", "application",
		"invitation_id", invitation.InvitationID,
		"activation_id", invitation.ActivationID,
		"refunded_amount", refunded,
	)
	return CancelInvitationResult{
		InvitationID:   invitation.InvitationID,
		RefundedAmount: refunded,
	}, nil
}
