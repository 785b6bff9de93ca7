package activationservice

import (
	"context"
	"errors"
	"testing"

	domainerrors "dttracker/contexts/creator-marketing/activation-service/domain/errors"
	httptransport "dttracker/contexts/creator-marketing/activation-service/transport/http"
)

func newSeededModule(t *testing.T) (Module, httptransport.CreateActivationResponse) {
	t.Helper()
	module := NewInMemoryModule(nil, nil)
	module.Store.SetBalance("brand-1", 1000)

	resp, err := module.Handler.CreateActivationHandler(context.Background(), "brand-1", "idem-create-1", httptransport.CreateActivationRequest{
		Title:       "Spring launch",
		Brief:       "Creator push for the spring drop",
		TotalBudget: 350,
		Visibility:  "private",
		Rows: []httptransport.InvitationRowRequest{
			{CreatorID: "creator-1", QuotedRate: 100, Currency: "USD"},
			{CreatorID: "creator-2", QuotedRate: 200, Currency: "USD"},
			{CreatorID: "creator-3", QuotedRate: 50, Currency: "USD"},
		},
	})
	if err != nil {
		t.Fatalf("seed activation failed: %v", err)
	}
	if len(resp.Invitations) != 3 {
		t.Fatalf("expected 3 invitations, got %d", len(resp.Invitations))
	}
	return module, resp
}

func TestAcceptLocksQuotedRate(t *testing.T) {
	module, seed := newSeededModule(t)
	ctx := context.Background()

	accepted, err := module.Handler.AcceptInvitationHandler(ctx, "creator-2", seed.Invitations[1].InvitationID)
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if !accepted.Success || accepted.LockedAmount != 200 {
		t.Fatalf("expected locked 200, got %+v", accepted)
	}
	if got := module.Store.LockedBalance("brand-1"); got != 200 {
		t.Fatalf("expected wallet lock of 200, got %v", got)
	}
	if got := module.Store.Balance("brand-1"); got != 800 {
		t.Fatalf("expected balance 800 after lock, got %v", got)
	}
}

func TestAcceptRejectsNonCreator(t *testing.T) {
	module, seed := newSeededModule(t)

	_, err := module.Handler.AcceptInvitationHandler(context.Background(), "creator-9", seed.Invitations[0].InvitationID)
	if !errors.Is(err, domainerrors.ErrNotInvitationCreator) {
		t.Fatalf("expected ErrNotInvitationCreator, got %v", err)
	}
}

func TestAcceptInsufficientFundsLeavesInvitationPending(t *testing.T) {
	module, seed := newSeededModule(t)
	module.Store.SetBalance("brand-1", 50)
	ctx := context.Background()

	_, err := module.Handler.AcceptInvitationHandler(ctx, "creator-1", seed.Invitations[0].InvitationID)
	if !errors.Is(err, domainerrors.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	list, err := module.Handler.ListInvitationsHandler(ctx, seed.Activation.ActivationID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, item := range list.Items {
		if item.InvitationID == seed.Invitations[0].InvitationID {
			if item.Status != "pending" || item.WalletLocked {
				t.Fatalf("expected pending unlocked invitation, got %+v", item)
			}
		}
	}
	if got := module.Store.LockedBalance("brand-1"); got != 0 {
		t.Fatalf("expected no locked funds, got %v", got)
	}
}

func TestReleasePaymentCompletesInvitationAndSpends(t *testing.T) {
	module, seed := newSeededModule(t)
	ctx := context.Background()

	invitationID := seed.Invitations[0].InvitationID
	if _, err := module.Handler.AcceptInvitationHandler(ctx, "creator-1", invitationID); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	released, err := module.Handler.ReleasePaymentHandler(ctx, "brand-1", invitationID)
	if err != nil {
		t.Fatalf("release failed: %v", err)
	}
	if released.PaymentAmount != 100 {
		t.Fatalf("expected payment 100, got %v", released.PaymentAmount)
	}
	if got := module.Store.LockedBalance("brand-1"); got != 0 {
		t.Fatalf("expected lock drained after release, got %v", got)
	}

	summary, err := module.Handler.BudgetSummaryHandler(ctx, seed.Activation.ActivationID)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.SpentAmount != 100 {
		t.Fatalf("expected spent 100, got %v", summary.SpentAmount)
	}
}

func TestReleasePaymentRequiresBrand(t *testing.T) {
	module, seed := newSeededModule(t)
	ctx := context.Background()

	invitationID := seed.Invitations[0].InvitationID
	if _, err := module.Handler.AcceptInvitationHandler(ctx, "creator-1", invitationID); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	_, err := module.Handler.ReleasePaymentHandler(ctx, "brand-2", invitationID)
	if !errors.Is(err, domainerrors.ErrNotActivationBrand) {
		t.Fatalf("expected ErrNotActivationBrand, got %v", err)
	}
}

func TestCancelAcceptedInvitationRefundsLock(t *testing.T) {
	module, seed := newSeededModule(t)
	ctx := context.Background()

	invitationID := seed.Invitations[1].InvitationID
	if _, err := module.Handler.AcceptInvitationHandler(ctx, "creator-2", invitationID); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	cancelled, err := module.Handler.CancelInvitationHandler(ctx, "brand-1", invitationID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Refunded != 200 {
		t.Fatalf("expected refund 200, got %v", cancelled.Refunded)
	}
	if got := module.Store.Balance("brand-1"); got != 1000 {
		t.Fatalf("expected balance restored to 1000, got %v", got)
	}
	if got := module.Store.LockedBalance("brand-1"); got != 0 {
		t.Fatalf("expected no locked funds after refund, got %v", got)
	}
}

func TestCancelPendingInvitationRefundsNothing(t *testing.T) {
	module, seed := newSeededModule(t)

	cancelled, err := module.Handler.CancelInvitationHandler(context.Background(), "brand-1", seed.Invitations[0].InvitationID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Refunded != 0 {
		t.Fatalf("expected no refund for pending invitation, got %v", cancelled.Refunded)
	}
}

func TestDeclineIsTerminal(t *testing.T) {
	module, seed := newSeededModule(t)
	ctx := context.Background()

	invitationID := seed.Invitations[2].InvitationID
	if _, err := module.Handler.DeclineInvitationHandler(ctx, "creator-3", invitationID); err != nil {
		t.Fatalf("decline failed: %v", err)
	}

	_, err := module.Handler.AcceptInvitationHandler(ctx, "creator-3", invitationID)
	if !errors.Is(err, domainerrors.ErrInvalidStateTransition) {
		t.Fatalf("expected ErrInvalidStateTransition after decline, got %v", err)
	}
}

func TestCreateActivationReplaysOnSameIdempotencyKey(t *testing.T) {
	module, _ := newSeededModule(t)
	ctx := context.Background()

	replay, err := module.Handler.CreateActivationHandler(ctx, "brand-1", "idem-create-1", httptransport.CreateActivationRequest{
		Title:       "Spring launch",
		Brief:       "Creator push for the spring drop",
		TotalBudget: 350,
		Visibility:  "private",
		Rows: []httptransport.InvitationRowRequest{
			{CreatorID: "creator-1", QuotedRate: 100, Currency: "USD"},
			{CreatorID: "creator-2", QuotedRate: 200, Currency: "USD"},
			{CreatorID: "creator-3", QuotedRate: 50, Currency: "USD"},
		},
	})
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	if !replay.Replayed {
		t.Fatalf("expected replayed response")
	}
}

func TestCreateActivationConflictsOnReusedKeyWithNewPayload(t *testing.T) {
	module, _ := newSeededModule(t)

	_, err := module.Handler.CreateActivationHandler(context.Background(), "brand-1", "idem-create-1", httptransport.CreateActivationRequest{
		Title:       "Different campaign",
		Brief:       "Not the original payload",
		TotalBudget: 500,
		Visibility:  "private",
	})
	if !errors.Is(err, domainerrors.ErrIdempotencyConflict) {
		t.Fatalf("expected ErrIdempotencyConflict, got %v", err)
	}
}

func TestCreateActivationConflictsOnReusedKeyWithNewBudget(t *testing.T) {
	module, _ := newSeededModule(t)

	// Same title, brief and rows as the seed request; only the budget moved.
	_, err := module.Handler.CreateActivationHandler(context.Background(), "brand-1", "idem-create-1", httptransport.CreateActivationRequest{
		Title:       "Spring launch",
		Brief:       "Creator push for the spring drop",
		TotalBudget: 999,
		Visibility:  "private",
		Rows: []httptransport.InvitationRowRequest{
			{CreatorID: "creator-1", QuotedRate: 100, Currency: "USD"},
			{CreatorID: "creator-2", QuotedRate: 200, Currency: "USD"},
			{CreatorID: "creator-3", QuotedRate: 50, Currency: "USD"},
		},
	})
	if !errors.Is(err, domainerrors.ErrIdempotencyConflict) {
		t.Fatalf("expected ErrIdempotencyConflict on budget change, got %v", err)
	}
}

func TestCreateActivationRequiresIdempotencyKey(t *testing.T) {
	module := NewInMemoryModule(nil, nil)

	_, err := module.Handler.CreateActivationHandler(context.Background(), "brand-1", "", httptransport.CreateActivationRequest{
		Title:       "Spring launch",
		Brief:       "Creator push",
		TotalBudget: 100,
		Visibility:  "private",
	})
	if !errors.Is(err, domainerrors.ErrIdempotencyKeyRequired) {
		t.Fatalf("expected ErrIdempotencyKeyRequired, got %v", err)
	}
}

func TestCreateInvitationsRejectsDuplicateCreator(t *testing.T) {
	module, seed := newSeededModule(t)

	_, err := module.Handler.CreateInvitationsHandler(
		context.Background(),
		"brand-1",
		"idem-invite-dup",
		seed.Activation.ActivationID,
		httptransport.CreateInvitationsRequest{
			Rows: []httptransport.InvitationRowRequest{
				{CreatorID: "creator-1", QuotedRate: 80, Currency: "USD"},
			},
		},
	)
	if !errors.Is(err, domainerrors.ErrDuplicateInvitation) {
		t.Fatalf("expected ErrDuplicateInvitation, got %v", err)
	}
}
