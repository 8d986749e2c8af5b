package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// AccountType discriminates the account variants. The string value appears in
// transaction descriptions ("... into your Savings Account").
type AccountType string

const (
	TypeSavings AccountType = "Savings"
	TypeCurrent AccountType = "Current"
)

// ParseAccountType maps external input onto a known variant.
func ParseAccountType(s string) (AccountType, error) {
	switch AccountType(s) {
	case TypeSavings:
		return TypeSavings, nil
	case TypeCurrent:
		return TypeCurrent, nil
	}
	return "", fmt.Errorf("unknown account type %q", s)
}

// SavingsOperationLimit is the per-operation ceiling on savings withdrawals
// and transfers.
var SavingsOperationLimit = decimal.NewFromInt(200000)

// LimitPolicy caps the amount a single withdrawal or transfer may move.
// A zero ceiling means the operation is uncapped.
type LimitPolicy struct {
	MaxWithdrawal decimal.Decimal
	MaxTransfer   decimal.Decimal
}

// DefaultPolicy returns the built-in limit policy for an account variant:
// savings accounts cap both operations at SavingsOperationLimit, current
// accounts are uncapped.
func DefaultPolicy(t AccountType) LimitPolicy {
	if t == TypeSavings {
		return LimitPolicy{MaxWithdrawal: SavingsOperationLimit, MaxTransfer: SavingsOperationLimit}
	}
	return LimitPolicy{}
}

func (p LimitPolicy) allowsWithdrawal(amount decimal.Decimal) bool {
	return p.MaxWithdrawal.IsZero() || amount.LessThanOrEqual(p.MaxWithdrawal)
}

func (p LimitPolicy) allowsTransfer(amount decimal.Decimal) bool {
	return p.MaxTransfer.IsZero() || amount.LessThanOrEqual(p.MaxTransfer)
}

// Account holds a balance and an append-only transaction history. Balance and
// history are unexported so they can only change together, through the
// operations below; the balance always equals the sum of the history's signed
// effects and never goes negative.
type Account struct {
	accountNumber string
	balance       decimal.Decimal
	dateCreated   time.Time
	owner         *User
	history       []Transaction
	accountType   AccountType
	policy        LimitPolicy
}

// NewAccount creates an empty account of the given variant with its default
// limit policy. The account number comes from the caller (the generator
// collaborator) and is treated as an opaque unique key.
func NewAccount(accountNumber string, owner *User, t AccountType) (*Account, error) {
	return NewAccountWithPolicy(accountNumber, owner, t, DefaultPolicy(t))
}

// NewAccountWithPolicy creates an empty account with an explicit limit
// policy, for callers that load policies from configuration.
func NewAccountWithPolicy(accountNumber string, owner *User, t AccountType, policy LimitPolicy) (*Account, error) {
	if owner == nil {
		return nil, fmt.Errorf("%w: account owner is required", ErrNilUser)
	}
	if _, err := ParseAccountType(string(t)); err != nil {
		return nil, err
	}
	return &Account{
		accountNumber: accountNumber,
		balance:       decimal.Zero,
		dateCreated:   time.Now(),
		owner:         owner,
		accountType:   t,
		policy:        policy,
	}, nil
}

func (a *Account) AccountNumber() string { return a.accountNumber }

func (a *Account) Balance() decimal.Decimal { return a.balance }

func (a *Account) DateCreated() time.Time { return a.dateCreated }

func (a *Account) Owner() *User { return a.owner }

func (a *Account) Type() AccountType { return a.accountType }

func (a *Account) Policy() LimitPolicy { return a.policy }

// Transactions returns a copy of the history in operation order, so callers
// cannot alter the ledger through the returned slice.
func (a *Account) Transactions() []Transaction {
	out := make([]Transaction, len(a.history))
	copy(out, a.history)
	return out
}

// Deposit credits the account. Fails with ErrInvalidAmount for non-positive
// amounts; on failure neither balance nor history changes.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: deposit amount must be positive", ErrInvalidAmount)
	}

	description := fmt.Sprintf("%s deposited into your %s Account", FormatAmount(amount), a.accountType)
	tx, err := NewTransaction(amount, a.balance, description, nil, TypeDeposit, time.Now())
	if err != nil {
		return err
	}

	a.balance = a.balance.Add(amount)
	a.history = append(a.history, tx)
	return nil
}

// Withdraw debits the account. Validation order: amount positivity, then the
// variant's withdrawal ceiling, then sufficient funds. The limit check runs
// before the funds check so an over-limit amount reports ErrLimitExceeded
// even when the balance could cover it.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: withdrawal amount must be positive", ErrInvalidAmount)
	}
	if !a.policy.allowsWithdrawal(amount) {
		return fmt.Errorf("%w: withdrawal limit exceeded for %s Account", ErrLimitExceeded, a.accountType)
	}
	if amount.GreaterThan(a.balance) {
		return fmt.Errorf("%w: withdrawal of %s exceeds balance %s", ErrInsufficientFunds, FormatAmount(amount), FormatAmount(a.balance))
	}

	description := fmt.Sprintf("%s withdrawn from your %s Account", FormatAmount(amount), a.accountType)
	tx, err := NewTransaction(amount, a.balance, description, nil, TypeWithdraw, time.Now())
	if err != nil {
		return err
	}

	a.balance = a.balance.Sub(amount)
	a.history = append(a.history, tx)
	return nil
}

// TransferTo debits this account and credits the recipient as one logical
// unit: both records are built and validated before either balance moves, and
// both share a single timestamp. Validation order: amount positivity,
// recipient presence, the sender variant's transfer ceiling, sufficient
// funds. Any failure leaves both accounts untouched.
func (a *Account) TransferTo(amount decimal.Decimal, recipient *Account) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: transfer amount must be positive", ErrInvalidAmount)
	}
	if recipient == nil {
		return ErrNilRecipient
	}
	if !a.policy.allowsTransfer(amount) {
		return fmt.Errorf("%w: transfer limit exceeded for %s Account", ErrLimitExceeded, a.accountType)
	}
	if amount.GreaterThan(a.balance) {
		return fmt.Errorf("%w: transfer of %s exceeds balance %s", ErrInsufficientFunds, FormatAmount(amount), FormatAmount(a.balance))
	}

	// One timestamp for both sides; sampling time twice would break the
	// equal-timestamp invariant under clock resolution.
	now := time.Now()

	senderDescription := fmt.Sprintf("%s sent to %s's %s Account", FormatAmount(amount), recipient.owner.Username, recipient.accountType)
	outgoing, err := NewTransaction(amount, a.balance, senderDescription, recipient, TypeTransfer, now)
	if err != nil {
		return err
	}

	recipientDescription := fmt.Sprintf("%s received from %s's %s Account", FormatAmount(amount), a.owner.Username, a.accountType)
	incoming, err := NewIncomingTransfer(amount, recipient.balance, recipientDescription, a, now)
	if err != nil {
		return err
	}

	a.balance = a.balance.Sub(amount)
	recipient.balance = recipient.balance.Add(amount)
	a.history = append(a.history, outgoing)
	recipient.history = append(recipient.history, incoming)
	return nil
}

// RestoreAccount rebuilds an account from persisted state, bypassing the
// operation path. Only the persistence layer should call it; the caller is
// responsible for restoring a history consistent with the balance and for
// fixing up the owner back-reference to the in-memory user object.
func RestoreAccount(accountNumber string, owner *User, t AccountType, policy LimitPolicy, balance decimal.Decimal, dateCreated time.Time) *Account {
	return &Account{
		accountNumber: accountNumber,
		balance:       balance,
		dateCreated:   dateCreated,
		owner:         owner,
		accountType:   t,
		policy:        policy,
	}
}

// RestoreTransaction re-appends a persisted record during load. Records must
// be restored in their original operation order.
func (a *Account) RestoreTransaction(tx Transaction) {
	a.history = append(a.history, tx)
}
