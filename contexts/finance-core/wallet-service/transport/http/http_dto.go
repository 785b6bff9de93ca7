package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type DepositRequest struct {
	Amount      float64 `json:"amount"`
	ReferenceID string  `json:"reference_id,omitempty"`
}

type WalletDTO struct {
	BrandID   string  `json:"brand_id"`
	Balance   float64 `json:"balance"`
	Locked    float64 `json:"locked"`
	UpdatedAt string  `json:"updated_at"`
}

type GetWalletResponse struct {
	Wallet WalletDTO `json:"wallet"`
}

type LedgerEntryDTO struct {
	EntryID     string  `json:"entry_id"`
	BrandID     string  `json:"brand_id"`
	Kind        string  `json:"kind"`
	Amount      float64 `json:"amount"`
	ReferenceID string  `json:"reference_id,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

type ListLedgerResponse struct {
	Items []LedgerEntryDTO `json:"items"`
}
