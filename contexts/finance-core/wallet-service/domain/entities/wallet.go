package entities

import "time"

type LedgerKind string

const (
	LedgerKindDeposit LedgerKind = "deposit"
	LedgerKindLock    LedgerKind = "lock"
	LedgerKindRelease LedgerKind = "release"
	LedgerKindRefund  LedgerKind = "refund"
)

// Wallet holds a brand's available and reserved funds. Amounts are
// currency-agnostic decimals; both stay non-negative at all times.
type Wallet struct {
	BrandID   string
	Balance   float64
	Locked    float64
	UpdatedAt time.Time
}

// LedgerEntry is the append-only audit trail of wallet movements.
type LedgerEntry struct {
	EntryID     string
	BrandID     string
	Kind        LedgerKind
	Amount      float64
	ReferenceID string
	CreatedAt   time.Time
}

func IsSupportedLedgerKind(value LedgerKind) bool {
	switch value {
	case LedgerKindDeposit, LedgerKindLock, LedgerKindRelease, LedgerKindRefund:
		return true
	default:
		return false
	}
}
