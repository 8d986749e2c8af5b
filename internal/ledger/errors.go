package ledger

import "errors"

// Sentinel errors shared by all account operations. Callers match with
// errors.Is; the bank service translates them into user-facing messages.
var (
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrLimitExceeded     = errors.New("limit exceeded")
	ErrNilRecipient      = errors.New("recipient account is required")
	ErrNilAccount        = errors.New("account is required")
	ErrNilUser           = errors.New("user is required")
	ErrSameAccount       = errors.New("sender and recipient are the same account")
)
