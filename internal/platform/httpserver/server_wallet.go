package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	walleterrors "dttracker/contexts/finance-core/wallet-service/domain/errors"
	wallethttp "dttracker/contexts/finance-core/wallet-service/transport/http"
)

func (s *Server) handleGetWallet(w http.ResponseWriter, r *http.Request) {
	brandID := requireUserID(r)
	if brandID == "" {
		writeWalletError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	resp, err := s.wallet.Handler.GetWalletHandler(r.Context(), brandID)
	if err != nil {
		writeWalletDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeposit(w http.ResponseWriter, r *http.Request) {
	brandID := requireUserID(r)
	if brandID == "" {
		writeWalletError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req wallethttp.DepositRequest
	if !s.decodeJSON(w, r, &req, writeWalletError) {
		return
	}

	resp, err := s.wallet.Handler.DepositHandler(r.Context(), brandID, req)
	if err != nil {
		writeWalletDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListLedger(w http.ResponseWriter, r *http.Request) {
	brandID := requireUserID(r)
	if brandID == "" {
		writeWalletError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	limit := 0
	if limitRaw := r.URL.Query().Get("limit"); limitRaw != "" {
		parsed, err := strconv.Atoi(limitRaw)
		if err != nil {
			writeWalletError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return
		}
		limit = parsed
	}

	resp, err := s.wallet.Handler.ListLedgerHandler(r.Context(), brandID, limit)
	if err != nil {
		writeWalletDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeWalletDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, walleterrors.ErrWalletNotFound):
		writeWalletError(w, http.StatusNotFound, "wallet_not_found", err.Error())
	case errors.Is(err, walleterrors.ErrInvalidInput):
		writeWalletError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, walleterrors.ErrInsufficientFunds):
		writeWalletError(w, http.StatusConflict, "insufficient_funds", err.Error())
	case errors.Is(err, walleterrors.ErrInsufficientLock):
		writeWalletError(w, http.StatusConflict, "insufficient_lock", err.Error())
	default:
		writeWalletError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeWalletError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, wallethttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
