package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"dttracker/contexts/finance-core/wallet-service/domain/entities"
	domainerrors "dttracker/contexts/finance-core/wallet-service/domain/errors"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	wallets map[string]entities.Wallet
	ledger  []entities.LedgerEntry
}

func NewStore() *Store {
	return &Store{
		wallets: make(map[string]entities.Wallet),
	}
}

func (s *Store) GetWallet(_ context.Context, brandID string) (entities.Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wallet, exists := s.wallets[strings.TrimSpace(brandID)]
	if !exists {
		return entities.Wallet{}, domainerrors.ErrWalletNotFound
	}
	return wallet, nil
}

func (s *Store) ApplyMovement(
	_ context.Context,
	entry entities.LedgerEntry,
	balanceDelta float64,
	lockedDelta float64,
) (entities.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wallet, exists := s.wallets[entry.BrandID]
	if !exists {
		if entry.Kind != entities.LedgerKindDeposit {
			return entities.Wallet{}, domainerrors.ErrWalletNotFound
		}
		wallet = entities.Wallet{BrandID: entry.BrandID}
	}

	balance := wallet.Balance + balanceDelta
	locked := wallet.Locked + lockedDelta
	if balance < 0 {
		return entities.Wallet{}, domainerrors.ErrInsufficientFunds
	}
	if locked < 0 {
		return entities.Wallet{}, domainerrors.ErrInsufficientLock
	}

	wallet.Balance = balance
	wallet.Locked = locked
	wallet.UpdatedAt = entry.CreatedAt
	s.wallets[entry.BrandID] = wallet
	s.ledger = append(s.ledger, entry)
	return wallet, nil
}

func (s *Store) ListLedger(_ context.Context, brandID string, limit int) ([]entities.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.LedgerEntry, 0)
	for _, entry := range s.ledger {
		if entry.BrandID == strings.TrimSpace(brandID) {
			items = append(items, entry)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
