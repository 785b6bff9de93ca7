package queries

import (
	"context"
	"log/slog"
	"strings"

	"dttracker/contexts/creator-marketing/activation-service/domain/entities"
	"dttracker/contexts/creator-marketing/activation-service/ports"
)

type BudgetSummary struct {
	TotalInvited float64
	LockedAmount float64
	SpentAmount  float64
}

// SummarizeInvitations is a pure fold over the invitation list. Order of the
// input never changes the totals; malformed rates count as 0.
func SummarizeInvitations(activation entities.Activation, invitations []entities.Invitation) BudgetSummary {
	var summary BudgetSummary
	for _, item := range invitations {
		rate := item.SafeRate()
		summary.TotalInvited += rate
		if item.Status == entities.InvitationStatusAccepted && item.WalletLocked {
			summary.LockedAmount += rate
		}
		if item.Status == entities.InvitationStatusCompleted {
			summary.SpentAmount += rate
		}
	}
	// Released payments recorded before invitation rows existed (imports,
	// backfills) only show up on the activation itself.
	if summary.SpentAmount == 0 {
		summary.SpentAmount = activation.SpentAmount
	}
	return summary
}

type BudgetSummaryUseCase struct {
	Activations ports.ActivationRepository
	Invitations ports.InvitationRepository
	Logger      *slog.Logger
}

func (uc BudgetSummaryUseCase) Execute(ctx context.Context, activationID string) (BudgetSummary, error) {
	activation, err := uc.Activations.GetActivation(ctx, strings.TrimSpace(activationID))
	if err != nil {
		return BudgetSummary{}, err
	}
	invitations, err := uc.Invitations.ListInvitationsByActivation(ctx, activation.ActivationID)
	if err != nil {
		return BudgetSummary{}, err
	}
	return SummarizeInvitations(activation, invitations), nil
}
