package unit

import (
	"context"
	"testing"
	"time"

	activationservice "dttracker/contexts/creator-marketing/activation-service"
	activationmemory "dttracker/contexts/creator-marketing/activation-service/adapters/memory"
	httptransport "dttracker/contexts/creator-marketing/activation-service/transport/http"
	walletservice "dttracker/contexts/finance-core/wallet-service"
)

// Wires the activation module against the real wallet service instead of the
// in-store fake, the same seam the composition root uses.
func TestInvitationLifecycleAgainstWalletService(t *testing.T) {
	ctx := context.Background()

	wallet := walletservice.NewInMemoryModule(nil)
	if _, err := wallet.Service.Deposit(ctx, "brand-1", 500, "top-up-1"); err != nil {
		t.Fatalf("deposit failed: %v", err)
	}

	store := activationmemory.NewStore(nil)
	module := activationservice.NewModule(activationservice.Dependencies{
		Activations:    store,
		Invitations:    store,
		Wallet:         wallet.Service,
		Outbox:         store,
		Idempotency:    store,
		Clock:          store,
		IDGenerator:    store,
		IdempotencyTTL: 24 * time.Hour,
	})

	created, err := module.Handler.CreateActivationHandler(ctx, "brand-1", "idem-x-1", httptransport.CreateActivationRequest{
		Title:       "Cross context flow",
		Brief:       "activation paying through the wallet ledger",
		TotalBudget: 200,
		Visibility:  "private",
		Rows: []httptransport.InvitationRowRequest{
			{CreatorID: "creator-1", QuotedRate: 200, Currency: "USD"},
		},
	})
	if err != nil {
		t.Fatalf("create activation failed: %v", err)
	}

	invitationID := created.Invitations[0].InvitationID
	if _, err := module.Handler.AcceptInvitationHandler(ctx, "creator-1", invitationID); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	state, err := wallet.Service.GetWallet(ctx, "brand-1")
	if err != nil {
		t.Fatalf("get wallet failed: %v", err)
	}
	if state.Balance != 300 || state.Locked != 200 {
		t.Fatalf("expected 300/200 after lock, got %+v", state)
	}

	if _, err := module.Handler.ReleasePaymentHandler(ctx, "brand-1", invitationID); err != nil {
		t.Fatalf("release failed: %v", err)
	}

	state, err = wallet.Service.GetWallet(ctx, "brand-1")
	if err != nil {
		t.Fatalf("get wallet failed: %v", err)
	}
	if state.Balance != 300 || state.Locked != 0 {
		t.Fatalf("expected payout to drain the lock, got %+v", state)
	}

	ledger, err := wallet.Service.ListLedger(ctx, "brand-1", 10)
	if err != nil {
		t.Fatalf("list ledger failed: %v", err)
	}
	if len(ledger) != 3 {
		t.Fatalf("expected deposit+lock+release entries, got %d", len(ledger))
	}
}
