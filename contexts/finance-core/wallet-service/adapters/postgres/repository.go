package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"dttracker/contexts/finance-core/wallet-service/domain/entities"
	domainerrors "dttracker/contexts/finance-core/wallet-service/domain/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) GetWallet(ctx context.Context, brandID string) (entities.Wallet, error) {
	var row walletModel
	err := r.db.WithContext(ctx).
		Where("brand_id = ?", strings.TrimSpace(brandID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Wallet{}, domainerrors.ErrWalletNotFound
		}
		return entities.Wallet{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ApplyMovement(
	ctx context.Context,
	entry entities.LedgerEntry,
	balanceDelta float64,
	lockedDelta float64,
) (entities.Wallet, error) {
	var wallet entities.Wallet
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row walletModel
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("brand_id = ?", entry.BrandID).
			First(&row).
			Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if entry.Kind != entities.LedgerKindDeposit {
				return domainerrors.ErrWalletNotFound
			}
			row = walletModel{BrandID: entry.BrandID}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		balance := row.Balance + balanceDelta
		locked := row.Locked + lockedDelta
		if balance < 0 {
			return domainerrors.ErrInsufficientFunds
		}
		if locked < 0 {
			return domainerrors.ErrInsufficientLock
		}

		result := tx.Model(&walletModel{}).
			Where("brand_id = ?", entry.BrandID).
			Updates(map[string]any{
				"balance":    balance,
				"locked":     locked,
				"updated_at": entry.CreatedAt,
			})
		if result.Error != nil {
			return result.Error
		}

		ledgerRow := ledgerModel{
			EntryID:     entry.EntryID,
			BrandID:     entry.BrandID,
			Kind:        string(entry.Kind),
			Amount:      entry.Amount,
			ReferenceID: entry.ReferenceID,
			CreatedAt:   entry.CreatedAt,
		}
		if ledgerRow.EntryID == "" {
			ledgerRow.EntryID = uuid.NewString()
		}
		if err := tx.Create(&ledgerRow).Error; err != nil {
			return err
		}

		wallet = entities.Wallet{
			BrandID:   entry.BrandID,
			Balance:   balance,
			Locked:    locked,
			UpdatedAt: entry.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return entities.Wallet{}, err
	}
	return wallet, nil
}

func (r *Repository) ListLedger(ctx context.Context, brandID string, limit int) ([]entities.LedgerEntry, error) {
	var rows []ledgerModel
	err := r.db.WithContext(ctx).
		Where("brand_id = ?", strings.TrimSpace(brandID)).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	items := make([]entities.LedgerEntry, 0, len(rows))
	for _, row := range rows {
		items = append(items, entities.LedgerEntry{
			EntryID:     row.EntryID,
			BrandID:     row.BrandID,
			Kind:        entities.LedgerKind(row.Kind),
			Amount:      row.Amount,
			ReferenceID: row.ReferenceID,
			CreatedAt:   row.CreatedAt,
		})
	}
	return items, nil
}

type walletModel struct {
	BrandID   string    `gorm:"column:brand_id;primaryKey"`
	Balance   float64   `gorm:"column:balance"`
	Locked    float64   `gorm:"column:locked"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (walletModel) TableName() string {
	return "brand_wallets"
}

func (m walletModel) toEntity() entities.Wallet {
	return entities.Wallet{
		BrandID:   m.BrandID,
		Balance:   m.Balance,
		Locked:    m.Locked,
		UpdatedAt: m.UpdatedAt,
	}
}

type ledgerModel struct {
	EntryID     string    `gorm:"column:entry_id;primaryKey"`
	BrandID     string    `gorm:"column:brand_id;index"`
	Kind        string    `gorm:"column:kind"`
	Amount      float64   `gorm:"column:amount"`
	ReferenceID string    `gorm:"column:reference_id"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (ledgerModel) TableName() string {
	return "brand_wallet_ledger"
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
