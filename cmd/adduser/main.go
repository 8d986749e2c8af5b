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
	"errors"
	"flag"
	"fmt"

	"banking-ledger-go/internal/common"
	"banking-ledger-go/internal/config"
	"banking-ledger-go/internal/ledger"
	"banking-ledger-go/internal/users"

	"go.uber.org/zap"
)

func validateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if len(username) < 2 {
		return fmt.Errorf("username must be at least 2 characters")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}
	if len(password) < 4 {
		return fmt.Errorf("password must be at least 4 characters")
	}
	return nil
}

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	// Parse command line flags
	usernameFlag := flag.String("username", "", "Username for the new user (required)")
	passwordFlag := flag.String("password", "", "Password for the new user (required)")
	accountFlag := flag.String("account", "", "Optional initial account variant: Savings or Current")
	flag.Parse()

	// Validate required flags
	if *usernameFlag == "" || *passwordFlag == "" {
		zap.L().Fatal("Both flags are required: --username and --password")
	}

	if err := validateUsername(*usernameFlag); err != nil {
		zap.L().Fatal("Invalid username", zap.Error(err))
	}

	if err := validatePassword(*passwordFlag); err != nil {
		zap.L().Fatal("Invalid password", zap.Error(err))
	}

	var accountType ledger.AccountType
	if *accountFlag != "" {
		var err error
		if accountType, err = ledger.ParseAccountType(*accountFlag); err != nil {
			zap.L().Fatal("Invalid account variant", zap.Error(err))
		}
	}

	zap.L().Info("Starting user creation process", zap.String("username", *usernameFlag))

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	// Initialize services
	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	user, err := services.Users.Register(ctx, *usernameFlag, *passwordFlag)
	if err != nil {
		if errors.Is(err, users.ErrUsernameTaken) {
			zap.L().Fatal("User already exists with this username", zap.String("username", *usernameFlag))
		}
		zap.L().Fatal("Failed to create user", zap.Error(err))
	}

	fmt.Println()
	common.PrintHeader("USER CREATED", common.DefaultWidth)
	fmt.Printf("ID:       %s\n", user.ID)
	fmt.Printf("Username: %s\n", user.Username)
	common.PrintSeparator("=", common.DefaultWidth)
	fmt.Println()

	zap.L().Info("User created successfully", zap.String("id", user.ID))

	if *accountFlag == "" {
		return
	}

	account, err := services.Bank.CreateAccount(ctx, user, accountType)
	if err != nil {
		zap.L().Fatal("Failed to open account", zap.Error(err))
	}

	common.PrintHeader("ACCOUNT OPENED", common.DefaultWidth)
	fmt.Printf("Number:  %s\n", account.AccountNumber())
	fmt.Printf("Variant: %s\n", account.Type())
	fmt.Printf("Balance: %s\n", ledger.FormatAmount(account.Balance()))
	common.PrintSeparator("=", common.DefaultWidth)
	fmt.Println()

	zap.L().Info("Account opened",
		zap.String("user_id", user.ID),
		zap.String("account_number", account.AccountNumber()),
		zap.String("account_type", string(account.Type())))
}
