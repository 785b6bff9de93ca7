package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"dttracker/contexts/finance-core/wallet-service/application"
	"dttracker/contexts/finance-core/wallet-service/domain/entities"
	httptransport "dttracker/contexts/finance-core/wallet-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) GetWalletHandler(ctx context.Context, brandID string) (httptransport.GetWalletResponse, error) {
	wallet, err := h.Service.GetWallet(ctx, brandID)
	if err != nil {
		return httptransport.GetWalletResponse{}, err
	}
	return httptransport.GetWalletResponse{Wallet: mapWallet(wallet)}, nil
}

func (h Handler) DepositHandler(ctx context.Context, brandID string, req httptransport.DepositRequest) (httptransport.GetWalletResponse, error) {
	wallet, err := h.Service.Deposit(ctx, brandID, req.Amount, req.ReferenceID)
	if err != nil {
		return httptransport.GetWalletResponse{}, err
	}
	return httptransport.GetWalletResponse{Wallet: mapWallet(wallet)}, nil
}

func (h Handler) ListLedgerHandler(ctx context.Context, brandID string, limit int) (httptransport.ListLedgerResponse, error) {
	items, err := h.Service.ListLedger(ctx, brandID, limit)
	if err != nil {
		return httptransport.ListLedgerResponse{}, err
	}
	result := make([]httptransport.LedgerEntryDTO, 0, len(items))
	for _, item := range items {
		result = append(result, httptransport.LedgerEntryDTO{
			EntryID:     item.EntryID,
			BrandID:     item.BrandID,
			Kind:        string(item.Kind),
			Amount:      item.Amount,
			ReferenceID: item.ReferenceID,
			CreatedAt:   item.CreatedAt.Format(time.RFC3339),
		})
	}
	return httptransport.ListLedgerResponse{Items: result}, nil
}

func mapWallet(item entities.Wallet) httptransport.WalletDTO {
	return httptransport.WalletDTO{
		BrandID:   item.BrandID,
		Balance:   item.Balance,
		Locked:    item.Locked,
		UpdatedAt: item.UpdatedAt.Format(time.RFC3339),
	}
}
