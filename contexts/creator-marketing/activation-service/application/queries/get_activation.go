package queries

import (
	"context"
	"log/slog"
	"strings"

	"dttracker/contexts/creator-marketing/activation-service/domain/entities"
	"dttracker/contexts/creator-marketing/activation-service/ports"
)

type GetActivationUseCase struct {
	Activations ports.ActivationRepository
	Logger      *slog.Logger
}

func (uc GetActivationUseCase) Execute(ctx context.Context, activationID string) (entities.Activation, error) {
	return uc.Activations.GetActivation(ctx, strings.TrimSpace(activationID))
}

type ListActivationsQuery struct {
	BrandID    string
	Status     string
	Visibility string
}

type ListActivationsUseCase struct {
	Activations ports.ActivationRepository
	Logger      *slog.Logger
}

func (uc ListActivationsUseCase) Execute(ctx context.Context, query ListActivationsQuery) ([]entities.Activation, error) {
	return uc.Activations.ListActivations(ctx, ports.ActivationFilter{
		BrandID:    strings.TrimSpace(query.BrandID),
		Status:     entities.ActivationStatus(strings.TrimSpace(query.Status)),
		Visibility: entities.ActivationVisibility(strings.TrimSpace(query.Visibility)),
	})
}
