package errors

import "errors"

var (
	ErrWalletNotFound    = errors.New("wallet not found")
	ErrInvalidInput      = errors.New("invalid wallet input")
	ErrInsufficientFunds = errors.New("insufficient wallet balance")
	ErrInsufficientLock  = errors.New("reserved funds are less than requested amount")
)
