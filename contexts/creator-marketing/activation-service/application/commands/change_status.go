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

type ActivationStatusAction string

const (
	ActivationActionLaunch   ActivationStatusAction = "launch"
	ActivationActionComplete ActivationStatusAction = "complete"
	ActivationActionCancel   ActivationStatusAction = "cancel"
)

type ChangeActivationStatusCommand struct {
	ActivationID string
	ActorID      string
	Action       ActivationStatusAction
}

type ChangeActivationStatusUseCase struct {
	Activations ports.ActivationRepository
	Clock       ports.Clock
	Logger      *slog.Logger
}

func (uc ChangeActivationStatusUseCase) Execute(ctx context.Context, cmd ChangeActivationStatusCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	activation, err := uc.Activations.GetActivation(ctx, strings.TrimSpace(cmd.ActivationID))
	if err != nil {
		return err
	}
	if strings.TrimSpace(cmd.ActorID) == "" || activation.BrandID != strings.TrimSpace(cmd.ActorID) {
		return domainerrors.ErrNotActivationBrand
	}

	now := uc.Clock.Now().UTC()
	from := activation.Status
	switch cmd.Action {
	case ActivationActionLaunch:
		if activation.Status != entities.ActivationStatusDraft {
			return domainerrors.ErrInvalidStateTransition
		}
		activation.Status = entities.ActivationStatusLive
	case ActivationActionComplete:
		if activation.Status != entities.ActivationStatusLive {
			return domainerrors.ErrInvalidStateTransition
		}
		activation.Status = entities.ActivationStatusCompleted
		activation.CompletedAt = &now
	case ActivationActionCancel:
		if activation.Status != entities.ActivationStatusDraft && activation.Status != entities.ActivationStatusLive {
			return domainerrors.ErrInvalidStateTransition
		}
		activation.Status = entities.ActivationStatusCancelled
		activation.CancelledAt = &now
	default:
		return domainerrors.ErrInvalidStateTransition
	}

	activation.UpdatedAt = now
	if err := uc.Activations.UpdateActivation(ctx, activation); err != nil {
		return err
	}

	logger.Info("activation status changed",
		"event", "activation_status_changed",
		"module", "creator-marketing/activation-service",
		"layer", "application",
		"activation_id", activation.ActivationID,
		"from_status", string(from),
		"to_status", string(activation.Status),
	)
	return nil
}
