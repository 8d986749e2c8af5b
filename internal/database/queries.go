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

const (
	queryDeleteTransactions = `DELETE FROM transactions`
	queryDeleteAccounts     = `DELETE FROM accounts`
	queryDeleteUsers        = `DELETE FROM users`

	queryInsertUser = `
		INSERT INTO users (id, username, password_hash, created_at)
		VALUES (?, ?, ?, ?)`

	queryInsertAccount = `
		INSERT INTO accounts (account_number, user_id, account_type, balance,
			max_withdrawal, max_transfer, date_created, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	queryInsertTransaction = `
		INSERT INTO transactions (id, account_number, type, amount,
			balance_before, balance_after, description, counterparty_account,
			timestamp, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	querySelectUsers = `
		SELECT id, username, password_hash, created_at
		FROM users`

	querySelectAccounts = `
		SELECT account_number, user_id, account_type, balance,
			max_withdrawal, max_transfer, date_created
		FROM accounts
		ORDER BY user_id, position`

	querySelectTransactions = `
		SELECT id, account_number, type, amount, balance_before,
			balance_after, description, counterparty_account, timestamp
		FROM transactions
		ORDER BY account_number, position`
)
