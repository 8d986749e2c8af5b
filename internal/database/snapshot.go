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

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"banking-ledger-go/internal/ledger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Save rewrites the full user graph in one transaction. Decimals are stored
// as TEXT to keep exact values; counterparty references are stored as account
// numbers and resolved back to objects on Load.
func (s *Service) Save(ctx context.Context, users map[string]*ledger.User) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Child tables first to satisfy the foreign keys.
	for _, query := range []string{queryDeleteTransactions, queryDeleteAccounts, queryDeleteUsers} {
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to clear snapshot: %w", err)
		}
	}

	for _, user := range users {
		if _, err := tx.ExecContext(ctx, queryInsertUser, user.ID, user.Username, user.PasswordHash, user.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert user %s: %w", user.ID, err)
		}

		for position, account := range user.Accounts {
			policy := account.Policy()
			_, err := tx.ExecContext(ctx, queryInsertAccount,
				account.AccountNumber(), user.ID, string(account.Type()),
				account.Balance().String(), policy.MaxWithdrawal.String(), policy.MaxTransfer.String(),
				account.DateCreated(), position)
			if err != nil {
				return fmt.Errorf("failed to insert account %s: %w", account.AccountNumber(), err)
			}

			for txPosition, record := range account.Transactions() {
				var counterparty sql.NullString
				if record.Counterparty != nil {
					counterparty = sql.NullString{String: record.Counterparty.AccountNumber(), Valid: true}
				}
				_, err := tx.ExecContext(ctx, queryInsertTransaction,
					record.ID, account.AccountNumber(), string(record.Type),
					record.Amount.String(), record.BalanceBefore.String(), record.BalanceAfter.String(),
					record.Description, counterparty, record.Timestamp, txPosition)
				if err != nil {
					return fmt.Errorf("failed to insert transaction %s: %w", record.ID, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// Load reconstructs the user graph. Owner back-references and transaction
// counterparties are fixed up explicitly after all accounts exist, so every
// reference resolves to the same in-memory object rather than a copy.
func (s *Service) Load(ctx context.Context) (map[string]*ledger.User, error) {
	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}

	accountsByNumber, err := s.loadAccounts(ctx, users)
	if err != nil {
		return nil, err
	}

	if err := s.loadTransactions(ctx, accountsByNumber); err != nil {
		return nil, err
	}

	zap.L().Info("Loaded user graph",
		zap.Int("users", len(users)),
		zap.Int("accounts", len(accountsByNumber)))
	return users, nil
}

func (s *Service) loadUsers(ctx context.Context) (map[string]*ledger.User, error) {
	rows, err := s.db.QueryContext(ctx, querySelectUsers)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	defer rows.Close()

	users := make(map[string]*ledger.User)
	for rows.Next() {
		user := &ledger.User{}
		if err := rows.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users[user.ID] = user
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

func (s *Service) loadAccounts(ctx context.Context, users map[string]*ledger.User) (map[string]*ledger.Account, error) {
	rows, err := s.db.QueryContext(ctx, querySelectAccounts)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	defer rows.Close()

	accountsByNumber := make(map[string]*ledger.Account)
	for rows.Next() {
		var (
			number, userID, accountType            string
			balanceStr, maxWithdrawal, maxTransfer string
			dateCreated                            time.Time
		)
		if err := rows.Scan(&number, &userID, &accountType, &balanceStr, &maxWithdrawal, &maxTransfer, &dateCreated); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}

		owner, ok := users[userID]
		if !ok {
			return nil, fmt.Errorf("account %s references unknown user %s", number, userID)
		}

		balance, err := decimal.NewFromString(balanceStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse balance %q: %w", balanceStr, err)
		}
		policy := ledger.LimitPolicy{}
		if policy.MaxWithdrawal, err = decimal.NewFromString(maxWithdrawal); err != nil {
			return nil, fmt.Errorf("failed to parse withdrawal limit %q: %w", maxWithdrawal, err)
		}
		if policy.MaxTransfer, err = decimal.NewFromString(maxTransfer); err != nil {
			return nil, fmt.Errorf("failed to parse transfer limit %q: %w", maxTransfer, err)
		}

		account := ledger.RestoreAccount(number, owner, ledger.AccountType(accountType), policy, balance, dateCreated)
		owner.Accounts = append(owner.Accounts, account)
		accountsByNumber[number] = account
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accountsByNumber, nil
}

func (s *Service) loadTransactions(ctx context.Context, accountsByNumber map[string]*ledger.Account) error {
	rows, err := s.db.QueryContext(ctx, querySelectTransactions)
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			record                                 ledger.Transaction
			accountNumber, txType                  string
			amountStr, balanceBefore, balanceAfter string
			counterparty                           sql.NullString
		)
		err := rows.Scan(&record.ID, &accountNumber, &txType, &amountStr,
			&balanceBefore, &balanceAfter, &record.Description, &counterparty, &record.Timestamp)
		if err != nil {
			return fmt.Errorf("failed to scan transaction: %w", err)
		}

		account, ok := accountsByNumber[accountNumber]
		if !ok {
			return fmt.Errorf("transaction %s references unknown account %s", record.ID, accountNumber)
		}

		record.Type = ledger.TransactionType(txType)
		if record.Amount, err = decimal.NewFromString(amountStr); err != nil {
			return fmt.Errorf("failed to parse amount %q: %w", amountStr, err)
		}
		if record.BalanceBefore, err = decimal.NewFromString(balanceBefore); err != nil {
			return fmt.Errorf("failed to parse balance_before %q: %w", balanceBefore, err)
		}
		if record.BalanceAfter, err = decimal.NewFromString(balanceAfter); err != nil {
			return fmt.Errorf("failed to parse balance_after %q: %w", balanceAfter, err)
		}
		if counterparty.Valid {
			other, ok := accountsByNumber[counterparty.String]
			if !ok {
				return fmt.Errorf("transaction %s references unknown counterparty %s", record.ID, counterparty.String)
			}
			record.Counterparty = other
		}

		account.RestoreTransaction(record)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return nil
}
