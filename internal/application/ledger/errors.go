package ledger

import "errors"

var (
	ErrAccountNotFound    = errors.New("Account not found")
	ErrHoldingNotFound    = errors.New("No holding for this ticker")
	ErrInsufficientFunds  = errors.New("Not enough money")
	ErrInsufficientShares = errors.New("Not enough shares")
)
