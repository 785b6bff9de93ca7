package application

import (
	"context"
	"log/slog"
	"strings"

	"dttracker/contexts/finance-core/wallet-service/domain/entities"
	domainerrors "dttracker/contexts/finance-core/wallet-service/domain/errors"
	"dttracker/contexts/finance-core/wallet-service/ports"
)

type Service struct {
	Repo   ports.Repository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (s Service) GetWallet(ctx context.Context, brandID string) (entities.Wallet, error) {
	if strings.TrimSpace(brandID) == "" {
		return entities.Wallet{}, domainerrors.ErrInvalidInput
	}
	return s.Repo.GetWallet(ctx, strings.TrimSpace(brandID))
}

func (s Service) ListLedger(ctx context.Context, brandID string, limit int) ([]entities.LedgerEntry, error) {
	if strings.TrimSpace(brandID) == "" {
		return nil, domainerrors.ErrInvalidInput
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.Repo.ListLedger(ctx, strings.TrimSpace(brandID), limit)
}

func (s Service) Deposit(ctx context.Context, brandID string, amount float64, referenceID string) (entities.Wallet, error) {
	return s.move(ctx, brandID, entities.LedgerKindDeposit, amount, referenceID, amount, 0)
}

// LockFunds reserves amount from the available balance.
func (s Service) LockFunds(ctx context.Context, brandID string, amount float64, referenceID string) error {
	_, err := s.move(ctx, brandID, entities.LedgerKindLock, amount, referenceID, -amount, amount)
	return err
}

// ReleaseFunds pays out a reservation; the money leaves the wallet.
func (s Service) ReleaseFunds(ctx context.Context, brandID string, amount float64, referenceID string) error {
	_, err := s.move(ctx, brandID, entities.LedgerKindRelease, amount, referenceID, 0, -amount)
	return err
}

// RefundFunds returns a reservation to the available balance.
func (s Service) RefundFunds(ctx context.Context, brandID string, amount float64, referenceID string) error {
	_, err := s.move(ctx, brandID, entities.LedgerKindRefund, amount, referenceID, amount, -amount)
	return err
}

func (s Service) move(
	ctx context.Context,
	brandID string,
	kind entities.LedgerKind,
	amount float64,
	referenceID string,
	balanceDelta float64,
	lockedDelta float64,
) (entities.Wallet, error) {
	if strings.TrimSpace(brandID) == "" || amount <= 0 {
		return entities.Wallet{}, domainerrors.ErrInvalidInput
	}

	entryID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Wallet{}, err
	}
	entry := entities.LedgerEntry{
		EntryID:     entryID,
		BrandID:     strings.TrimSpace(brandID),
		Kind:        kind,
		Amount:      amount,
		ReferenceID: strings.TrimSpace(referenceID),
		CreatedAt:   s.Clock.Now().UTC(),
	}

	wallet, err := s.Repo.ApplyMovement(ctx, entry, balanceDelta, lockedDelta)
	if err != nil {
		return entities.Wallet{}, err
	}

	resolveLogger(s.Logger).Info("wallet movement applied",
		"event", "wallet_movement_applied",
		"module", "finance-core/wallet-service",
		"layer", "application",
		"brand_id", entry.BrandID,
		"kind", string(kind),
		"amount", amount,
		"reference_id", entry.ReferenceID,
	)
	return wallet, nil
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
