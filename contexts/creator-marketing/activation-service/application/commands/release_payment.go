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

type ReleasePaymentCommand struct {
	InvitationID string
	ActorID      string
}

type ReleasePaymentUseCase struct {
	Invitations ports.InvitationRepository
	Activations ports.ActivationRepository
	Wallet      ports.WalletGateway
	Outbox      ports.OutboxWriter
	Inflight    *application.InflightRegistry
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

type ReleasePaymentResult struct {
	InvitationID  string
	PaymentAmount float64
}

// Execute moves accepted to completed and pays out the reserved funds.
// The inflight guard rejects a second release for the same id while the
// first is still running.
func (uc ReleasePaymentUseCase) Execute(ctx context.Context, cmd ReleasePaymentCommand) (ReleasePaymentResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	invitationID := strings.TrimSpace(cmd.InvitationID)
	if invitationID == "" || strings.TrimSpace(cmd.ActorID) == "" {
		return ReleasePaymentResult{}, domainerrors.ErrInvalidInput
	}

	if uc.Inflight != nil {
		if !uc.Inflight.Acquire(invitationID) {
			return ReleasePaymentResult{}, domainerrors.ErrMutationInFlight
		}
		defer uc.Inflight.Release(invitationID)
	}

	invitation, err := uc.Invitations.GetInvitation(ctx, invitationID)
	if err != nil {
		return ReleasePaymentResult{}, err
	}
	activation, err := uc.Activations.GetActivation(ctx, invitation.ActivationID)
	if err != nil {
		return ReleasePaymentResult{}, err
	}
	if activation.BrandID != strings.TrimSpace(cmd.ActorID) {
		return ReleasePaymentResult{}, domainerrors.ErrNotActivationBrand
	}
	if invitation.Status != entities.InvitationStatusAccepted || !invitation.WalletLocked {
		return ReleasePaymentResult{}, domainerrors.ErrInvalidStateTransition
	}

	if err := uc.Wallet.ReleaseFunds(ctx, activation.BrandID, invitation.QuotedRate, invitation.InvitationID); err != nil {
		return ReleasePaymentResult{}, err
	}

	now := uc.Clock.Now().UTC()
	invitation.Status = entities.InvitationStatusCompleted
	invitation.WalletLocked = false
	if err := uc.Invitations.UpdateInvitation(ctx, invitation); err != nil {
		return ReleasePaymentResult{}, err
	}

	activation.SpentAmount += invitation.QuotedRate
	activation.UpdatedAt = now
	if err := uc.Activations.UpdateActivation(ctx, activation); err != nil {
		return ReleasePaymentResult{}, err
	}

	if uc.Outbox != nil && uc.IDGen != nil {
		if eventID, err := uc.IDGen.NewID(ctx); err == nil {
			envelope := newInvitationEnvelope(eventID, "activation.invitation_completed", invitation.InvitationID, now, map[string]any{
				"invitation_id":  invitation.InvitationID,
				"activation_id":  invitation.ActivationID,
				"creator_id":     invitation.CreatorID,
				"brand_id":       activation.BrandID,
				"payment_amount": invitation.QuotedRate,
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

	logger.Info("invitation payment released",
		"event", "invitation_payment_released",
		"module", "creator-marketing/activation-service",
		"layer", "application",
		"invitation_id", invitation.InvitationID,
		"activation_id", invitation.ActivationID,
		"payment_amount", invitation.QuotedRate,
	)
	return ReleasePaymentResult{
		InvitationID:  invitation.InvitationID,
		PaymentAmount: invitation.QuotedRate,
	}, nil
}
