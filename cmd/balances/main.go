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

package main

import (
	"context"
	"flag"
	"fmt"

	"banking-ledger-go/internal/common"
	"banking-ledger-go/internal/config"
	"banking-ledger-go/internal/ledger"

	"go.uber.org/zap"
)

type balanceStats struct {
	totalUsers        int
	totalAccounts     int
	usersWithAccounts int
}

func printAccount(account *ledger.Account, isLast bool) {
	symbol := common.BoxPrefix(isLast)
	fmt.Printf("%s %-10s %s: %15s (opened: %s, records: %d)\n",
		symbol,
		account.Type(),
		account.AccountNumber(),
		ledger.FormatAmount(account.Balance()),
		account.DateCreated().Format("2006-01-02 15:04:05"),
		len(account.Transactions()))
}

func printAccounts(accounts []*ledger.Account) {
	for i, account := range accounts {
		printAccount(account, i == len(accounts)-1)
	}
}

func printUserHeader(user *ledger.User) {
	fmt.Printf("\n┌─ User: %s\n", user.Username)
	fmt.Printf("│  ID: %s\n", user.ID)
	fmt.Printf("│  Accounts: %d\n", len(user.Accounts))
	common.PrintBoxSeparator(78)
}

func processUsers(users []*ledger.User) balanceStats {
	stats := balanceStats{}

	for _, user := range users {
		stats.totalUsers++

		if len(user.Accounts) == 0 {
			continue
		}

		printUserHeader(user)
		printAccounts(user.Accounts)

		stats.usersWithAccounts++
		stats.totalAccounts += len(user.Accounts)
	}

	return stats
}

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	// Parse command line flags
	usernameFlag := flag.String("username", "", "Filter by specific username (optional)")
	flag.Parse()

	logger.Info("Starting balance report")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Connecting to database", zap.String("path", cfg.Database.Path))
	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	var report []*ledger.User
	if *usernameFlag != "" {
		user, ok := services.Users.GetUser(*usernameFlag)
		if !ok {
			logger.Fatal("No such user", zap.String("username", *usernameFlag))
		}
		report = []*ledger.User{user}
	} else {
		report = services.Users.AllUsers()
	}

	common.PrintHeader("ACCOUNT BALANCE REPORT", common.DefaultWidth)

	stats := processUsers(report)

	summary := fmt.Sprintf("SUMMARY: %d users with accounts (%d total accounts across %d users queried)",
		stats.usersWithAccounts, stats.totalAccounts, stats.totalUsers)
	common.PrintFooter(summary, common.DefaultWidth)

	logger.Info("Balance report completed",
		zap.Int("users_queried", stats.totalUsers),
		zap.Int("users_with_accounts", stats.usersWithAccounts),
		zap.Int("total_accounts", stats.totalAccounts))
}
