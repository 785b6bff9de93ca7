package application

import (
	"context"
	"errors"
	"testing"

	"dttracker/contexts/finance-core/wallet-service/adapters/memory"
	"dttracker/contexts/finance-core/wallet-service/domain/entities"
	domainerrors "dttracker/contexts/finance-core/wallet-service/domain/errors"
)

func newService() (Service, *memory.Store) {
	store := memory.NewStore()
	return Service{Repo: store, Clock: store, IDGen: store}, store
}

func TestDepositCreatesWalletAndLedgerEntry(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	wallet, err := service.Deposit(ctx, "brand-1", 500, "top-up-1")
	if err != nil {
		t.Fatalf("deposit failed: %v", err)
	}
	if wallet.Balance != 500 || wallet.Locked != 0 {
		t.Fatalf("unexpected wallet after deposit: %+v", wallet)
	}

	ledger, err := service.ListLedger(ctx, "brand-1", 10)
	if err != nil {
		t.Fatalf("list ledger failed: %v", err)
	}
	if len(ledger) != 1 || ledger[0].Kind != entities.LedgerKindDeposit {
		t.Fatalf("expected one deposit entry, got %+v", ledger)
	}
}

func TestLockReleaseRefundMoveFundsBetweenBuckets(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	if _, err := service.Deposit(ctx, "brand-1", 300, "top-up-1"); err != nil {
		t.Fatalf("deposit failed: %v", err)
	}
	if err := service.LockFunds(ctx, "brand-1", 200, "inv-1"); err != nil {
		t.Fatalf("lock failed: %v", err)
	}

	wallet, err := service.GetWallet(ctx, "brand-1")
	if err != nil {
		t.Fatalf("get wallet failed: %v", err)
	}
	if wallet.Balance != 100 || wallet.Locked != 200 {
		t.Fatalf("unexpected wallet after lock: %+v", wallet)
	}

	if err := service.ReleaseFunds(ctx, "brand-1", 150, "inv-1"); err != nil {
		t.Fatalf("release failed: %v", err)
	}
	if err := service.RefundFunds(ctx, "brand-1", 50, "inv-2"); err != nil {
		t.Fatalf("refund failed: %v", err)
	}

	wallet, err = service.GetWallet(ctx, "brand-1")
	if err != nil {
		t.Fatalf("get wallet failed: %v", err)
	}
	if wallet.Balance != 150 || wallet.Locked != 0 {
		t.Fatalf("unexpected wallet after release+refund: %+v", wallet)
	}
}

func TestLockRejectsInsufficientBalance(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	if _, err := service.Deposit(ctx, "brand-1", 100, "top-up-1"); err != nil {
		t.Fatalf("deposit failed: %v", err)
	}
	err := service.LockFunds(ctx, "brand-1", 101, "inv-1")
	if !errors.Is(err, domainerrors.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
}

func TestReleaseRejectsMoreThanLocked(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	if _, err := service.Deposit(ctx, "brand-1", 100, "top-up-1"); err != nil {
		t.Fatalf("deposit failed: %v", err)
	}
	if err := service.LockFunds(ctx, "brand-1", 60, "inv-1"); err != nil {
		t.Fatalf("lock failed: %v", err)
	}
	err := service.ReleaseFunds(ctx, "brand-1", 61, "inv-1")
	if !errors.Is(err, domainerrors.ErrInsufficientLock) {
		t.Fatalf("expected ErrInsufficientLock, got %v", err)
	}
}

func TestLockOnUnknownWalletFails(t *testing.T) {
	service, _ := newService()

	err := service.LockFunds(context.Background(), "brand-missing", 10, "inv-1")
	if !errors.Is(err, domainerrors.ErrWalletNotFound) {
		t.Fatalf("expected ErrWalletNotFound, got %v", err)
	}
}

func TestMovementsRejectNonPositiveAmounts(t *testing.T) {
	service, _ := newService()

	if _, err := service.Deposit(context.Background(), "brand-1", 0, "top-up"); !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero deposit, got %v", err)
	}
	if err := service.LockFunds(context.Background(), "brand-1", -5, "inv"); !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative lock, got %v", err)
	}
}
