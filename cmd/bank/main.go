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
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"banking-ledger-go/internal/common"
	"banking-ledger-go/internal/config"
	"banking-ledger-go/internal/ledger"
	"banking-ledger-go/internal/users"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type session struct {
	services *common.Services
	scanner  *bufio.Scanner
	user     *ledger.User
}

func (s *session) prompt(label string) string {
	fmt.Printf("%s: ", label)
	if !s.scanner.Scan() {
		// Stdin closed; treat as an empty answer and let the caller bail out.
		return ""
	}
	return strings.TrimSpace(s.scanner.Text())
}

func (s *session) promptAmount(label string) (decimal.Decimal, error) {
	raw := s.prompt(label)
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("not a valid amount: %q", raw)
	}
	return amount, nil
}

// selectAccount lists the user's accounts and asks which one to use.
func (s *session) selectAccount(label string) (*ledger.Account, error) {
	if len(s.user.Accounts) == 0 {
		return nil, fmt.Errorf("you have no accounts yet, open one first")
	}

	fmt.Printf("\n%s:\n", label)
	for i, account := range s.user.Accounts {
		fmt.Printf("  %d) %s Account %s — balance %s\n",
			i+1, account.Type(), account.AccountNumber(), ledger.FormatAmount(account.Balance()))
	}

	choice := s.prompt("Choose an account")
	for i, account := range s.user.Accounts {
		if choice == fmt.Sprintf("%d", i+1) || choice == account.AccountNumber() {
			return account, nil
		}
	}
	return nil, fmt.Errorf("no such account: %q", choice)
}

func (s *session) handleRegister(ctx context.Context) {
	username := s.prompt("Username")
	password := s.prompt("Password")

	user, err := s.services.Users.Register(ctx, username, password)
	if err != nil {
		if errors.Is(err, users.ErrUsernameTaken) {
			fmt.Println("That username is already taken.")
			return
		}
		fmt.Printf("Registration failed: %v\n", err)
		return
	}

	s.user = user
	fmt.Printf("Welcome, %s! Your user ID is %s.\n", user.Username, user.ID)
}

func (s *session) handleLogin() {
	username := s.prompt("Username")
	password := s.prompt("Password")

	user, err := s.services.Users.Login(username, password)
	if err != nil {
		fmt.Println("Invalid username or password.")
		return
	}

	s.user = user
	fmt.Printf("Welcome back, %s!\n", user.Username)
}

func (s *session) handleOpenAccount(ctx context.Context) {
	raw := s.prompt("Account variant (Savings/Current)")
	accountType, err := ledger.ParseAccountType(raw)
	if err != nil {
		fmt.Printf("Unknown account variant: %q\n", raw)
		return
	}

	account, err := s.services.Bank.CreateAccount(ctx, s.user, accountType)
	if err != nil {
		fmt.Printf("Could not open account: %v\n", err)
		return
	}

	fmt.Printf("Opened %s Account %s.\n", account.Type(), account.AccountNumber())
}

func (s *session) handleDeposit(ctx context.Context) {
	account, err := s.selectAccount("Deposit into")
	if err != nil {
		fmt.Println(err)
		return
	}
	amount, err := s.promptAmount("Amount")
	if err != nil {
		fmt.Println(err)
		return
	}

	result := s.services.Bank.Deposit(ctx, account, amount)
	fmt.Println(result.Message)
}

func (s *session) handleWithdraw(ctx context.Context) {
	account, err := s.selectAccount("Withdraw from")
	if err != nil {
		fmt.Println(err)
		return
	}
	amount, err := s.promptAmount("Amount")
	if err != nil {
		fmt.Println(err)
		return
	}

	result := s.services.Bank.Withdraw(ctx, account, amount)
	fmt.Println(result.Message)
}

func (s *session) handleTransfer(ctx context.Context) {
	sender, err := s.selectAccount("Transfer from")
	if err != nil {
		fmt.Println(err)
		return
	}

	number := s.prompt("Recipient account number")
	recipient, ok := s.services.Users.FindAccountByNumber(number)
	if !ok {
		fmt.Printf("No account with number %q.\n", number)
		return
	}

	amount, err := s.promptAmount("Amount")
	if err != nil {
		fmt.Println(err)
		return
	}

	result := s.services.Bank.Transfer(ctx, sender, recipient, amount)
	fmt.Println(result.Message)
}

func (s *session) handleViewBalances() {
	if len(s.user.Accounts) == 0 {
		fmt.Println("You have no accounts yet.")
		return
	}

	common.PrintHeader("YOUR ACCOUNTS", common.DefaultWidth)
	for i, account := range s.user.Accounts {
		isLast := i == len(s.user.Accounts)-1
		fmt.Printf("%s %s Account %s\n", common.BoxPrefix(isLast), account.Type(), account.AccountNumber())
		fmt.Printf("%s   Balance: %s\n", common.BoxDetailPrefix(isLast), ledger.FormatAmount(account.Balance()))
		fmt.Printf("%s   Opened:  %s\n", common.BoxDetailPrefix(isLast), account.DateCreated().Format("2006-01-02"))
	}
	common.PrintSeparator("=", common.DefaultWidth)
}

func (s *session) handleViewTransactions() {
	account, err := s.selectAccount("Show history for")
	if err != nil {
		fmt.Println(err)
		return
	}

	records := account.Transactions()
	if len(records) == 0 {
		fmt.Println("No transactions on this account yet.")
		return
	}

	common.PrintHeader(fmt.Sprintf("HISTORY — %s ACCOUNT %s", strings.ToUpper(string(account.Type())), account.AccountNumber()), common.DefaultWidth)
	for i, record := range records {
		isLast := i == len(records)-1
		fmt.Printf("%s %s  %-8s  %s\n",
			common.BoxPrefix(isLast),
			record.Timestamp.Format("2006-01-02 15:04:05"),
			record.Type,
			record.Description)
		fmt.Printf("%s   balance %s -> %s\n",
			common.BoxDetailPrefix(isLast),
			ledger.FormatAmount(record.BalanceBefore),
			ledger.FormatAmount(record.BalanceAfter))
	}
	common.PrintSeparator("=", common.DefaultWidth)
}

func (s *session) runLoggedOut(ctx context.Context) bool {
	common.PrintHeader("PERSONAL BANKING", common.DefaultWidth)
	fmt.Println("1) Register")
	fmt.Println("2) Login")
	fmt.Println("3) Exit")

	switch s.prompt("Select an option") {
	case "1":
		s.handleRegister(ctx)
	case "2":
		s.handleLogin()
	case "3", "":
		return false
	default:
		fmt.Println("Unknown option.")
	}
	return true
}

func (s *session) runLoggedIn(ctx context.Context) bool {
	common.PrintHeader(fmt.Sprintf("LOGGED IN AS %s", strings.ToUpper(s.user.Username)), common.DefaultWidth)
	fmt.Println("1) Open account")
	fmt.Println("2) Deposit")
	fmt.Println("3) Withdraw")
	fmt.Println("4) Transfer")
	fmt.Println("5) View balances")
	fmt.Println("6) View transactions")
	fmt.Println("7) Logout")

	switch s.prompt("Select an option") {
	case "1":
		s.handleOpenAccount(ctx)
	case "2":
		s.handleDeposit(ctx)
	case "3":
		s.handleWithdraw(ctx)
	case "4":
		s.handleTransfer(ctx)
	case "5":
		s.handleViewBalances()
	case "6":
		s.handleViewTransactions()
	case "7":
		fmt.Printf("Goodbye, %s.\n", s.user.Username)
		s.user = nil
	case "":
		return false
	default:
		fmt.Println("Unknown option.")
	}
	return true
}

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	logger.Info("Starting banking console")

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

	s := &session{
		services: services,
		scanner:  bufio.NewScanner(os.Stdin),
	}

	for {
		var keepGoing bool
		if s.user == nil {
			keepGoing = s.runLoggedOut(ctx)
		} else {
			keepGoing = s.runLoggedIn(ctx)
		}
		if !keepGoing {
			break
		}
	}

	// Final snapshot so nothing typed in this session is lost.
	if err := services.Users.Save(ctx); err != nil {
		logger.Warn("Failed to persist final snapshot", zap.Error(err))
	}

	logger.Info("Banking console stopped")
	fmt.Println("Goodbye.")
}
