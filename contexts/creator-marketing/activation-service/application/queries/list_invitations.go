package queries

import (
	"context"
	"log/slog"
	"strings"

	"dttracker/contexts/creator-marketing/activation-service/domain/entities"
	"dttracker/contexts/creator-marketing/activation-service/ports"
)

type ListInvitationsByActivationUseCase struct {
	Invitations ports.InvitationRepository
	Logger      *slog.Logger
}

func (uc ListInvitationsByActivationUseCase) Execute(ctx context.Context, activationID string) ([]entities.Invitation, error) {
	return uc.Invitations.ListInvitationsByActivation(ctx, strings.TrimSpace(activationID))
}

// ListInvitationsByCreatorUseCase backs the creator's "my invitations" view.
type ListInvitationsByCreatorUseCase struct {
	Invitations ports.InvitationRepository
	Logger      *slog.Logger
}

func (uc ListInvitationsByCreatorUseCase) Execute(ctx context.Context, creatorID string) ([]entities.Invitation, error) {
	return uc.Invitations.ListInvitationsByCreator(ctx, strings.TrimSpace(creatorID))
}
