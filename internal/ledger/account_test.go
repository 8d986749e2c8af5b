package ledger

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func newTestAccount(t *testing.T, username string, accountType AccountType) *Account {
	t.Helper()

	user, err := NewUser(username, "hash")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	account, err := NewAccount("100200300"+username, user, accountType)
	if err != nil {
		t.Fatalf("Failed to create account: %v", err)
	}
	user.Accounts = append(user.Accounts, account)
	return account
}

func mustDeposit(t *testing.T, account *Account, amount int64) {
	t.Helper()
	if err := account.Deposit(decimal.NewFromInt(amount)); err != nil {
		t.Fatalf("Deposit of %d failed: %v", amount, err)
	}
}

// checkLedgerInvariants verifies that the balance matches both the last
// record's BalanceAfter and the sum of all signed record effects.
func checkLedgerInvariants(t *testing.T, account *Account) {
	t.Helper()

	history := account.Transactions()
	if len(history) == 0 {
		if !account.Balance().IsZero() {
			t.Errorf("Account with empty history has balance %s", account.Balance())
		}
		return
	}

	last := history[len(history)-1]
	if !account.Balance().Equal(last.BalanceAfter) {
		t.Errorf("Balance %s does not match last record's BalanceAfter %s", account.Balance(), last.BalanceAfter)
	}

	sum := decimal.Zero
	for _, tx := range history {
		sum = sum.Add(tx.SignedAmount())
	}
	if !account.Balance().Equal(sum) {
		t.Errorf("Balance %s does not match signed history sum %s", account.Balance(), sum)
	}
}

func TestDeposit(t *testing.T) {
	account := newTestAccount(t, "alice", TypeSavings)

	mustDeposit(t, account, 25000)

	if !account.Balance().Equal(decimal.NewFromInt(25000)) {
		t.Errorf("Expected balance 25000, got %s", account.Balance())
	}

	history := account.Transactions()
	if len(history) != 1 {
		t.Fatalf("Expected 1 transaction, got %d", len(history))
	}

	tx := history[0]
	if tx.Type != TypeDeposit {
		t.Errorf("Expected type %s, got %s", TypeDeposit, tx.Type)
	}
	if !tx.BalanceBefore.IsZero() {
		t.Errorf("Expected BalanceBefore 0, got %s", tx.BalanceBefore)
	}
	if !tx.BalanceAfter.Equal(decimal.NewFromInt(25000)) {
		t.Errorf("Expected BalanceAfter 25000, got %s", tx.BalanceAfter)
	}
	if tx.Counterparty != nil {
		t.Error("Deposit record should have no counterparty")
	}
	if tx.Description != "25,000 deposited into your Savings Account" {
		t.Errorf("Unexpected description: %q", tx.Description)
	}

	checkLedgerInvariants(t, account)
}

func TestDepositNonPositiveAmount(t *testing.T) {
	account := newTestAccount(t, "alice", TypeCurrent)
	mustDeposit(t, account, 1000)

	for _, amount := range []int64{0, -50} {
		err := account.Deposit(decimal.NewFromInt(amount))
		if !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("Deposit of %d: expected ErrInvalidAmount, got %v", amount, err)
		}
	}

	if !account.Balance().Equal(decimal.NewFromInt(1000)) {
		t.Errorf("Failed deposits changed balance to %s", account.Balance())
	}
	if len(account.Transactions()) != 1 {
		t.Errorf("Failed deposits changed history length to %d", len(account.Transactions()))
	}
}

func TestWithdraw(t *testing.T) {
	account := newTestAccount(t, "alice", TypeCurrent)
	mustDeposit(t, account, 5000)

	if err := account.Withdraw(decimal.NewFromInt(1500)); err != nil {
		t.Fatalf("Withdraw failed: %v", err)
	}

	if !account.Balance().Equal(decimal.NewFromInt(3500)) {
		t.Errorf("Expected balance 3500, got %s", account.Balance())
	}

	history := account.Transactions()
	if len(history) != 2 {
		t.Fatalf("Expected 2 transactions, got %d", len(history))
	}
	tx := history[1]
	if tx.Type != TypeWithdraw {
		t.Errorf("Expected type %s, got %s", TypeWithdraw, tx.Type)
	}
	if tx.Description != "1,500 withdrawn from your Current Account" {
		t.Errorf("Unexpected description: %q", tx.Description)
	}
	if !tx.BalanceBefore.Equal(decimal.NewFromInt(5000)) || !tx.BalanceAfter.Equal(decimal.NewFromInt(3500)) {
		t.Errorf("Unexpected snapshots: before=%s after=%s", tx.BalanceBefore, tx.BalanceAfter)
	}

	checkLedgerInvariants(t, account)
}

func TestWithdrawInsufficientFunds(t *testing.T) {
	account := newTestAccount(t, "alice", TypeCurrent)
	mustDeposit(t, account, 1000)

	err := account.Withdraw(decimal.NewFromInt(2000))
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("Expected ErrInsufficientFunds, got %v", err)
	}

	if !account.Balance().Equal(decimal.NewFromInt(1000)) {
		t.Errorf("Failed withdrawal changed balance to %s", account.Balance())
	}
	if len(account.Transactions()) != 1 {
		t.Errorf("Expected history to keep exactly the deposit record, got %d records", len(account.Transactions()))
	}
}

func TestSavingsWithdrawalLimit(t *testing.T) {
	account := newTestAccount(t, "alice", TypeSavings)
	mustDeposit(t, account, 500000)

	err := account.Withdraw(decimal.NewFromInt(250000))
	if !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("Expected ErrLimitExceeded, got %v", err)
	}
	if err.Error() != "limit exceeded: withdrawal limit exceeded for Savings Account" {
		t.Errorf("Unexpected limit message: %q", err.Error())
	}
	if !account.Balance().Equal(decimal.NewFromInt(500000)) {
		t.Errorf("Failed withdrawal changed balance to %s", account.Balance())
	}

	// Exactly at the ceiling is allowed.
	if err := account.Withdraw(decimal.NewFromInt(200000)); err != nil {
		t.Fatalf("Withdrawal at the limit should succeed, got %v", err)
	}
}

// The limit check runs before the funds check, so an over-limit amount
// reports the limit even when the balance is too small anyway.
func TestSavingsLimitCheckedBeforeFunds(t *testing.T) {
	account := newTestAccount(t, "alice", TypeSavings)
	mustDeposit(t, account, 100)

	err := account.Withdraw(decimal.NewFromInt(300000))
	if !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("Expected ErrLimitExceeded before ErrInsufficientFunds, got %v", err)
	}
}

func TestCurrentAccountHasNoLimit(t *testing.T) {
	account := newTestAccount(t, "alice", TypeCurrent)
	mustDeposit(t, account, 1000000)

	if err := account.Withdraw(decimal.NewFromInt(900000)); err != nil {
		t.Fatalf("Current account withdrawal above 200k should succeed, got %v", err)
	}
	checkLedgerInvariants(t, account)
}

func TestTransfer(t *testing.T) {
	sender := newTestAccount(t, "alice", TypeSavings)
	recipient := newTestAccount(t, "bob", TypeSavings)
	mustDeposit(t, sender, 25000)

	if err := sender.TransferTo(decimal.NewFromInt(10000), recipient); err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}

	if !sender.Balance().Equal(decimal.NewFromInt(15000)) {
		t.Errorf("Expected sender balance 15000, got %s", sender.Balance())
	}
	if !recipient.Balance().Equal(decimal.NewFromInt(10000)) {
		t.Errorf("Expected recipient balance 10000, got %s", recipient.Balance())
	}

	senderHistory := sender.Transactions()
	recipientHistory := recipient.Transactions()
	if len(senderHistory) != 2 {
		t.Fatalf("Expected 2 sender records, got %d", len(senderHistory))
	}
	if len(recipientHistory) != 1 {
		t.Fatalf("Expected 1 recipient record, got %d", len(recipientHistory))
	}

	out := senderHistory[1]
	in := recipientHistory[0]

	if out.Type != TypeTransfer || in.Type != TypeTransfer {
		t.Errorf("Expected both records to be transfers, got %s and %s", out.Type, in.Type)
	}
	if !out.Amount.Equal(decimal.NewFromInt(10000)) {
		t.Errorf("Expected sender record amount 10000, got %s", out.Amount)
	}
	if !out.Timestamp.Equal(in.Timestamp) {
		t.Errorf("Transfer records have different timestamps: %v vs %v", out.Timestamp, in.Timestamp)
	}
	if out.Counterparty != recipient {
		t.Error("Sender record does not reference the recipient account")
	}
	if in.Counterparty != sender {
		t.Error("Recipient record does not reference the sender account")
	}

	if out.Description != "10,000 sent to bob's Savings Account" {
		t.Errorf("Unexpected sender description: %q", out.Description)
	}
	if in.Description != "10,000 received from alice's Savings Account" {
		t.Errorf("Unexpected recipient description: %q", in.Description)
	}

	if !out.BalanceBefore.Equal(decimal.NewFromInt(25000)) || !out.BalanceAfter.Equal(decimal.NewFromInt(15000)) {
		t.Errorf("Unexpected sender snapshots: before=%s after=%s", out.BalanceBefore, out.BalanceAfter)
	}
	if !in.BalanceBefore.IsZero() || !in.BalanceAfter.Equal(decimal.NewFromInt(10000)) {
		t.Errorf("Unexpected recipient snapshots: before=%s after=%s", in.BalanceBefore, in.BalanceAfter)
	}

	checkLedgerInvariants(t, sender)
	checkLedgerInvariants(t, recipient)
}

func TestSavingsTransferLimit(t *testing.T) {
	sender := newTestAccount(t, "alice", TypeSavings)
	recipient := newTestAccount(t, "bob", TypeSavings)
	mustDeposit(t, sender, 300000)

	err := sender.TransferTo(decimal.NewFromInt(250000), recipient)
	if !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("Expected ErrLimitExceeded, got %v", err)
	}
	if err.Error() != "limit exceeded: transfer limit exceeded for Savings Account" {
		t.Errorf("Unexpected limit message: %q", err.Error())
	}

	if !sender.Balance().Equal(decimal.NewFromInt(300000)) {
		t.Errorf("Failed transfer changed sender balance to %s", sender.Balance())
	}
	if !recipient.Balance().IsZero() {
		t.Errorf("Failed transfer changed recipient balance to %s", recipient.Balance())
	}
	if len(recipient.Transactions()) != 0 {
		t.Error("Failed transfer appended a recipient record")
	}
}

func TestTransferValidationOrder(t *testing.T) {
	sender := newTestAccount(t, "alice", TypeSavings)
	recipient := newTestAccount(t, "bob", TypeCurrent)
	mustDeposit(t, sender, 100)

	// Non-positive amount wins over everything, including a nil recipient.
	if err := sender.TransferTo(decimal.Zero, nil); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("Expected ErrInvalidAmount first, got %v", err)
	}

	// Nil recipient wins over the limit and funds checks.
	if err := sender.TransferTo(decimal.NewFromInt(300000), nil); !errors.Is(err, ErrNilRecipient) {
		t.Errorf("Expected ErrNilRecipient before limit check, got %v", err)
	}

	// Limit wins over insufficient funds.
	if err := sender.TransferTo(decimal.NewFromInt(300000), recipient); !errors.Is(err, ErrLimitExceeded) {
		t.Errorf("Expected ErrLimitExceeded before funds check, got %v", err)
	}

	// Finally the funds check.
	if err := sender.TransferTo(decimal.NewFromInt(500), recipient); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("Expected ErrInsufficientFunds, got %v", err)
	}

	if len(sender.Transactions()) != 1 || len(recipient.Transactions()) != 0 {
		t.Error("Failed transfers modified transaction history")
	}
}

func TestTransferInsufficientFundsLeavesBothUntouched(t *testing.T) {
	sender := newTestAccount(t, "alice", TypeCurrent)
	recipient := newTestAccount(t, "bob", TypeCurrent)
	mustDeposit(t, sender, 50)
	mustDeposit(t, recipient, 10)

	err := sender.TransferTo(decimal.NewFromInt(75), recipient)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("Expected ErrInsufficientFunds, got %v", err)
	}

	if !sender.Balance().Equal(decimal.NewFromInt(50)) || !recipient.Balance().Equal(decimal.NewFromInt(10)) {
		t.Errorf("Failed transfer moved funds: sender=%s recipient=%s", sender.Balance(), recipient.Balance())
	}
}

func TestBalanceMatchesHistoryAfterMixedOperations(t *testing.T) {
	savings := newTestAccount(t, "alice", TypeSavings)
	current := newTestAccount(t, "bob", TypeCurrent)

	mustDeposit(t, savings, 80000)
	mustDeposit(t, current, 12000)

	if err := savings.Withdraw(decimal.NewFromInt(2500)); err != nil {
		t.Fatalf("Withdraw failed: %v", err)
	}
	if err := savings.TransferTo(decimal.NewFromInt(30000), current); err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}
	if err := current.TransferTo(decimal.NewFromInt(41000), savings); err != nil {
		t.Fatalf("Transfer back failed: %v", err)
	}
	if err := current.Withdraw(decimal.NewFromInt(1)); err != nil {
		t.Fatalf("Withdraw failed: %v", err)
	}

	checkLedgerInvariants(t, savings)
	checkLedgerInvariants(t, current)

	total := savings.Balance().Add(current.Balance())
	if !total.Equal(decimal.NewFromInt(89499)) {
		t.Errorf("Expected total funds 89499 (92000 deposited minus 2501 withdrawn), got %s", total)
	}
}

func TestTransactionsReturnsCopy(t *testing.T) {
	account := newTestAccount(t, "alice", TypeCurrent)
	mustDeposit(t, account, 100)

	history := account.Transactions()
	history[0].Description = "tampered"

	if account.Transactions()[0].Description == "tampered" {
		t.Error("Mutating the returned slice altered the account's history")
	}
}

func TestNewAccountRequiresOwner(t *testing.T) {
	if _, err := NewAccount("123", nil, TypeSavings); !errors.Is(err, ErrNilUser) {
		t.Errorf("Expected ErrNilUser, got %v", err)
	}
}
