/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package bank wraps the raw account operations for callers that want
// result objects instead of errors. It is the only layer allowed to swallow
// ledger errors, and it triggers persistence after every mutation.
package bank

import (
	"context"
	"fmt"

	"banking-ledger-go/internal/accountnum"
	"banking-ledger-go/internal/ledger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Result is the outcome of an orchestrated operation. Message is safe to show
// to the end user as-is.
type Result struct {
	Success bool
	Message string
}

// Persister saves the full user graph after a mutating operation.
type Persister interface {
	Save(ctx context.Context) error
}

// Service orchestrates account operations: pre-validation, error-to-result
// translation and persistence triggering.
type Service struct {
	persister      Persister
	generateNumber func() string
	policies       map[ledger.AccountType]ledger.LimitPolicy
}

// NewService builds the orchestration layer. generateNumber may be nil to use
// the built-in account number generator; policies may be nil to use the
// per-variant defaults.
func NewService(persister Persister, generateNumber func() string, policies map[ledger.AccountType]ledger.LimitPolicy) *Service {
	if generateNumber == nil {
		generateNumber = accountnum.Generate
	}
	return &Service{
		persister:      persister,
		generateNumber: generateNumber,
		policies:       policies,
	}
}

func (s *Service) policyFor(t ledger.AccountType) ledger.LimitPolicy {
	if policy, ok := s.policies[t]; ok {
		return policy
	}
	return ledger.DefaultPolicy(t)
}

// CreateAccount constructs the requested variant, appends it to the user's
// account list and persists the change.
func (s *Service) CreateAccount(ctx context.Context, user *ledger.User, t ledger.AccountType) (*ledger.Account, error) {
	if user == nil {
		return nil, fmt.Errorf("%w: cannot create an account without a user", ledger.ErrNilUser)
	}

	account, err := ledger.NewAccountWithPolicy(s.generateNumber(), user, t, s.policyFor(t))
	if err != nil {
		return nil, err
	}

	user.Accounts = append(user.Accounts, account)
	s.save(ctx, "create account")

	zap.L().Info("Account created",
		zap.String("account_number", account.AccountNumber()),
		zap.String("type", string(t)),
		zap.String("user_id", user.ID))
	return account, nil
}

// Deposit credits the account and reports the outcome as a Result.
func (s *Service) Deposit(ctx context.Context, account *ledger.Account, amount decimal.Decimal) Result {
	if account == nil {
		return Result{false, "Account is required."}
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return Result{false, "Deposit amount must be greater than zero."}
	}

	if err := account.Deposit(amount); err != nil {
		return Result{false, fmt.Sprintf("Deposit failed: %v", err)}
	}

	s.save(ctx, "deposit")
	return Result{true, "Deposit successful."}
}

// Withdraw debits the account and reports the outcome as a Result.
func (s *Service) Withdraw(ctx context.Context, account *ledger.Account, amount decimal.Decimal) Result {
	if account == nil {
		return Result{false, "Account is required."}
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return Result{false, "Withdrawal amount must be greater than zero."}
	}

	if err := account.Withdraw(amount); err != nil {
		return Result{false, fmt.Sprintf("Withdrawal failed: %v", err)}
	}

	s.save(ctx, "withdrawal")
	return Result{true, "Withdrawal successful."}
}

// Transfer moves funds between two accounts. Sender and recipient must be
// distinct; the ledger enforces the rest (limits, funds, atomicity).
func (s *Service) Transfer(ctx context.Context, sender, recipient *ledger.Account, amount decimal.Decimal) Result {
	if sender == nil || recipient == nil {
		return Result{false, "Both sender and recipient accounts must be provided."}
	}
	if sender == recipient {
		return Result{false, "Cannot transfer to the same account."}
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return Result{false, "Transfer amount must be greater than zero."}
	}

	if err := sender.TransferTo(amount, recipient); err != nil {
		return Result{false, fmt.Sprintf("Transfer failed: %v", err)}
	}

	s.save(ctx, "transfer")
	return Result{true, "Transfer successful."}
}

// AccountsByType returns the user's accounts of the given type, preserving
// their original order.
func (s *Service) AccountsByType(user *ledger.User, t ledger.AccountType) ([]*ledger.Account, error) {
	if user == nil {
		return nil, fmt.Errorf("%w: cannot list accounts without a user", ledger.ErrNilUser)
	}

	var out []*ledger.Account
	for _, account := range user.Accounts {
		if account.Type() == t {
			out = append(out, account)
		}
	}
	return out, nil
}

// save persists the user graph after a successful mutation. The ledger change
// has already been applied; a save failure is logged rather than unwound,
// matching the fire-and-forget persistence of the original design.
func (s *Service) save(ctx context.Context, operation string) {
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(ctx); err != nil {
		zap.L().Warn("Failed to persist after operation",
			zap.String("operation", operation),
			zap.Error(err))
	}
}
