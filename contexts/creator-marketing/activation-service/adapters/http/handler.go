package httpadapter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"dttracker/contexts/creator-marketing/activation-service/application/commands"
	"dttracker/contexts/creator-marketing/activation-service/application/queries"
	"dttracker/contexts/creator-marketing/activation-service/domain/entities"
	domainerrors "dttracker/contexts/creator-marketing/activation-service/domain/errors"
	httptransport "dttracker/contexts/creator-marketing/activation-service/transport/http"
)

type Handler struct {
	CreateActivation  commands.CreateActivationUseCase
	CreateInvitations commands.CreateInvitationsUseCase
	AcceptInvitation  commands.AcceptInvitationUseCase
	DeclineInvitation commands.DeclineInvitationUseCase
	ReleasePayment    commands.ReleasePaymentUseCase
	CancelInvitation  commands.CancelInvitationUseCase
	ChangeStatus      commands.ChangeActivationStatusUseCase
	GetActivation     queries.GetActivationUseCase
	ListActivations   queries.ListActivationsUseCase
	ListByActivation  queries.ListInvitationsByActivationUseCase
	ListByCreator     queries.ListInvitationsByCreatorUseCase
	BudgetSummary     queries.BudgetSummaryUseCase
	ListNotifications queries.ListNotificationsUseCase
	Logger            *slog.Logger
}

func (h Handler) CreateActivationHandler(
	ctx context.Context,
	userID string,
	idempotencyKey string,
	req httptransport.CreateActivationRequest,
) (httptransport.CreateActivationResponse, error) {
	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		return httptransport.CreateActivationResponse{}, domainerrors.ErrInvalidInput
	}
	result, err := h.CreateActivation.Execute(ctx, commands.CreateActivationCommand{
		BrandID:        userID,
		IdempotencyKey: idempotencyKey,
		Title:          req.Title,
		Brief:          req.Brief,
		DeadlineAt:     deadline,
		TotalBudget:    req.TotalBudget,
		Visibility:     req.Visibility,
		Rows:           mapRowRequests(req.Rows),
	})
	if err != nil {
		return httptransport.CreateActivationResponse{}, err
	}
	return httptransport.CreateActivationResponse{
		Activation:  mapActivation(result.Activation),
		Invitations: mapInvitations(result.Invitations),
		Replayed:    result.Replayed,
	}, nil
}

func (h Handler) CreateInvitationsHandler(
	ctx context.Context,
	userID string,
	idempotencyKey string,
	activationID string,
	req httptransport.CreateInvitationsRequest,
) (httptransport.CreateInvitationsResponse, error) {
	result, err := h.CreateInvitations.Execute(ctx, commands.CreateInvitationsCommand{
		ActivationID:   activationID,
		ActorID:        userID,
		IdempotencyKey: idempotencyKey,
		Rows:           mapRowRequests(req.Rows),
	})
	if err != nil {
		return httptransport.CreateInvitationsResponse{}, err
	}
	return httptransport.CreateInvitationsResponse{
		Invitations: mapInvitations(result.Invitations),
		Replayed:    result.Replayed,
	}, nil
}

func (h Handler) AcceptInvitationHandler(ctx context.Context, userID string, invitationID string) (httptransport.AcceptInvitationResponse, error) {
	result, err := h.AcceptInvitation.Execute(ctx, commands.AcceptInvitationCommand{
		InvitationID: invitationID,
		ActorID:      userID,
	})
	if err != nil {
		return httptransport.AcceptInvitationResponse{}, err
	}
	return httptransport.AcceptInvitationResponse{
		Success:         true,
		InvitationID:    result.InvitationID,
		LockedAmount:    result.LockedAmount,
		ActivationTitle: result.ActivationTitle,
	}, nil
}

func (h Handler) DeclineInvitationHandler(ctx context.Context, userID string, invitationID string) (httptransport.DeclineInvitationResponse, error) {
	if err := h.DeclineInvitation.Execute(ctx, commands.DeclineInvitationCommand{
		InvitationID: invitationID,
		ActorID:      userID,
	}); err != nil {
		return httptransport.DeclineInvitationResponse{}, err
	}
	return httptransport.DeclineInvitationResponse{
		Success:      true,
		InvitationID: strings.TrimSpace(invitationID),
	}, nil
}

func (h Handler) ReleasePaymentHandler(ctx context.Context, userID string, invitationID string) (httptransport.ReleasePaymentResponse, error) {
	result, err := h.ReleasePayment.Execute(ctx, commands.ReleasePaymentCommand{
		InvitationID: invitationID,
		ActorID:      userID,
	})
	if err != nil {
		return httptransport.ReleasePaymentResponse{}, err
	}
	return httptransport.ReleasePaymentResponse{
		Success:       true,
		InvitationID:  result.InvitationID,
		PaymentAmount: result.PaymentAmount,
	}, nil
}

func (h Handler) CancelInvitationHandler(ctx context.Context, userID string, invitationID string) (httptransport.CancelInvitationResponse, error) {
	result, err := h.CancelInvitation.Execute(ctx, commands.CancelInvitationCommand{
		InvitationID: invitationID,
		ActorID:      userID,
	})
	if err != nil {
		return httptransport.CancelInvitationResponse{}, err
	}
	return httptransport.CancelInvitationResponse{
		Success:      true,
		InvitationID: result.InvitationID,
		Refunded:     result.RefundedAmount,
	}, nil
}

func (h Handler) ChangeStatusHandler(ctx context.Context, userID string, activationID string, action string) error {
	return h.ChangeStatus.Execute(ctx, commands.ChangeActivationStatusCommand{
		ActivationID: activationID,
		ActorID:      userID,
		Action:       commands.ActivationStatusAction(strings.TrimSpace(action)),
	})
}

func (h Handler) GetActivationHandler(ctx context.Context, activationID string) (httptransport.GetActivationResponse, error) {
	item, err := h.GetActivation.Execute(ctx, activationID)
	if err != nil {
		return httptransport.GetActivationResponse{}, err
	}
	return httptransport.GetActivationResponse{Activation: mapActivation(item)}, nil
}

func (h Handler) ListActivationsHandler(ctx context.Context, userID string, status string, visibility string) (httptransport.ListActivationsResponse, error) {
	items, err := h.ListActivations.Execute(ctx, queries.ListActivationsQuery{
		BrandID:    userID,
		Status:     status,
		Visibility: visibility,
	})
	if err != nil {
		return httptransport.ListActivationsResponse{}, err
	}
	result := make([]httptransport.ActivationDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapActivation(item))
	}
	return httptransport.ListActivationsResponse{Items: result}, nil
}

func (h Handler) ListInvitationsHandler(ctx context.Context, activationID string) (httptransport.ListInvitationsResponse, error) {
	items, err := h.ListByActivation.Execute(ctx, activationID)
	if err != nil {
		return httptransport.ListInvitationsResponse{}, err
	}
	return httptransport.ListInvitationsResponse{Items: mapInvitations(items)}, nil
}

func (h Handler) ListMyInvitationsHandler(ctx context.Context, creatorID string) (httptransport.ListInvitationsResponse, error) {
	items, err := h.ListByCreator.Execute(ctx, creatorID)
	if err != nil {
		return httptransport.ListInvitationsResponse{}, err
	}
	return httptransport.ListInvitationsResponse{Items: mapInvitations(items)}, nil
}

func (h Handler) ListMyNotificationsHandler(ctx context.Context, recipientID string, limit int) (httptransport.ListNotificationsResponse, error) {
	items, err := h.ListNotifications.Execute(ctx, recipientID, limit)
	if err != nil {
		return httptransport.ListNotificationsResponse{}, err
	}
	dtos := make([]httptransport.NotificationDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, httptransport.NotificationDTO{
			NotificationID: item.NotificationID,
			InvitationID:   item.InvitationID,
			ActivationID:   item.ActivationID,
			Kind:           string(item.Kind),
			Amount:         item.Amount,
			OccurredAt:     item.OccurredAt.Format(time.RFC3339),
		})
	}
	return httptransport.ListNotificationsResponse{Items: dtos}, nil
}

func (h Handler) BudgetSummaryHandler(ctx context.Context, activationID string) (httptransport.BudgetSummaryResponse, error) {
	summary, err := h.BudgetSummary.Execute(ctx, activationID)
	if err != nil {
		return httptransport.BudgetSummaryResponse{}, err
	}
	return httptransport.BudgetSummaryResponse{
		ActivationID: strings.TrimSpace(activationID),
		TotalInvited: summary.TotalInvited,
		LockedAmount: summary.LockedAmount,
		SpentAmount:  summary.SpentAmount,
	}, nil
}

func mapRowRequests(rows []httptransport.InvitationRowRequest) []commands.InvitationRow {
	result := make([]commands.InvitationRow, 0, len(rows))
	for _, row := range rows {
		result = append(result, commands.InvitationRow{
			CreatorID:   row.CreatorID,
			QuotedRate:  row.QuotedRate,
			Currency:    row.Currency,
			BrandNotes:  row.BrandNotes,
			Deliverable: row.Deliverable,
		})
	}
	return result
}

func mapActivation(item entities.Activation) httptransport.ActivationDTO {
	result := httptransport.ActivationDTO{
		ActivationID: item.ActivationID,
		BrandID:      item.BrandID,
		Title:        item.Title,
		Brief:        item.Brief,
		TotalBudget:  item.TotalBudget,
		SpentAmount:  item.SpentAmount,
		Status:       string(item.Status),
		Visibility:   string(item.Visibility),
		CreatedAt:    item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    item.UpdatedAt.Format(time.RFC3339),
	}
	if item.DeadlineAt != nil {
		result.Deadline = item.DeadlineAt.UTC().Format(time.RFC3339)
	}
	if item.CompletedAt != nil {
		result.CompletedAt = item.CompletedAt.UTC().Format(time.RFC3339)
	}
	if item.CancelledAt != nil {
		result.CancelledAt = item.CancelledAt.UTC().Format(time.RFC3339)
	}
	return result
}

func mapInvitations(items []entities.Invitation) []httptransport.InvitationDTO {
	result := make([]httptransport.InvitationDTO, 0, len(items))
	for _, item := range items {
		dto := httptransport.InvitationDTO{
			InvitationID: item.InvitationID,
			ActivationID: item.ActivationID,
			CreatorID:    item.CreatorID,
			QuotedRate:   item.QuotedRate,
			Currency:     item.Currency,
			Status:       string(item.Status),
			WalletLocked: item.WalletLocked,
			BrandNotes:   item.BrandNotes,
			Deliverable:  item.Deliverable,
			InvitedAt:    item.InvitedAt.Format(time.RFC3339),
		}
		if item.RespondedAt != nil {
			dto.RespondedAt = item.RespondedAt.UTC().Format(time.RFC3339)
		}
		result = append(result, dto)
	}
	return result
}

func parseDeadline(raw string) (*time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("parse deadline: %w", err)
	}
	utc := parsed.UTC()
	return &utc, nil
}
