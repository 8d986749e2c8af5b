package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger event.
type TransactionType string

const (
	TypeDeposit  TransactionType = "Deposit"
	TypeWithdraw TransactionType = "Withdraw"
	TypeTransfer TransactionType = "Transfer"
)

// Transaction is an immutable record of one balance-changing event. It
// snapshots the owning account's balance immediately before and after the
// event so history can be audited without replaying it.
type Transaction struct {
	ID            string
	Amount        decimal.Decimal
	Timestamp     time.Time
	Type          TransactionType
	Description   string
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal

	// Counterparty is the other account involved in a transfer. It is a
	// non-owning reference; nil for deposits and withdrawals.
	Counterparty *Account
}

// NewTransaction builds a validated record for a deposit, a withdrawal or the
// sender side of a transfer. BalanceAfter is derived from the type: deposits
// add the amount, withdrawals and outgoing transfers subtract it. The
// timestamp is passed in by the caller so both sides of a transfer can share
// one instant.
func NewTransaction(amount, balanceBefore decimal.Decimal, description string, counterparty *Account, txType TransactionType, timestamp time.Time) (Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return Transaction{}, fmt.Errorf("%w: transaction amount must be positive", ErrInvalidAmount)
	}
	if description == "" {
		return Transaction{}, fmt.Errorf("transaction description cannot be empty")
	}

	var after decimal.Decimal
	switch txType {
	case TypeDeposit:
		after = balanceBefore.Add(amount)
	case TypeWithdraw, TypeTransfer:
		after = balanceBefore.Sub(amount)
	default:
		return Transaction{}, fmt.Errorf("unknown transaction type %q", txType)
	}

	return Transaction{
		ID:            uuid.New().String(),
		Amount:        amount,
		Timestamp:     timestamp,
		Type:          txType,
		Description:   description,
		BalanceBefore: balanceBefore,
		BalanceAfter:  after,
		Counterparty:  counterparty,
	}, nil
}

// NewIncomingTransfer builds the recipient-side record of a transfer, where
// the amount is credited rather than debited. Everything else follows
// NewTransaction.
func NewIncomingTransfer(amount, balanceBefore decimal.Decimal, description string, counterparty *Account, timestamp time.Time) (Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return Transaction{}, fmt.Errorf("%w: transaction amount must be positive", ErrInvalidAmount)
	}
	if description == "" {
		return Transaction{}, fmt.Errorf("transaction description cannot be empty")
	}

	return Transaction{
		ID:            uuid.New().String(),
		Amount:        amount,
		Timestamp:     timestamp,
		Type:          TypeTransfer,
		Description:   description,
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceBefore.Add(amount),
		Counterparty:  counterparty,
	}, nil
}

// SignedAmount returns the record's effect on the owning account's balance:
// positive for credits, negative for debits.
func (t Transaction) SignedAmount() decimal.Decimal {
	return t.BalanceAfter.Sub(t.BalanceBefore)
}
