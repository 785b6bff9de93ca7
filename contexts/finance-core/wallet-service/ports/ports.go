package ports

import (
	"context"
	"time"

	"dttracker/contexts/finance-core/wallet-service/domain/entities"
)

type Repository interface {
	GetWallet(ctx context.Context, brandID string) (entities.Wallet, error)
	// ApplyMovement atomically adjusts balance/locked and appends the ledger
	// entry. balanceDelta and lockedDelta may be negative; the adapter rejects
	// a movement that would drive either below zero.
	ApplyMovement(ctx context.Context, entry entities.LedgerEntry, balanceDelta float64, lockedDelta float64) (entities.Wallet, error)
	ListLedger(ctx context.Context, brandID string, limit int) ([]entities.LedgerEntry, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
