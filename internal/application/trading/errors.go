package trading

import "errors"

var (
	ErrInvalidQuantity  = errors.New("Shares must be a positive whole number")
	ErrQuoteUnavailable = errors.New("Market data unavailable")
)
