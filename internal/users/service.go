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

package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"banking-ledger-go/internal/auth"
	"banking-ledger-go/internal/ledger"
	"banking-ledger-go/internal/store"

	"go.uber.org/zap"
)

var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrUnknownUser        = errors.New("user does not exist")
	ErrWrongPassword      = errors.New("incorrect password")
)

// Service owns the in-memory user graph and is the only component that talks
// to the persistence backend. Mutating callers (the bank service, Register)
// trigger Save after each change.
type Service struct {
	dataStore  store.DataStore
	users      map[string]*ledger.User
	bcryptCost int
}

// NewService loads the stored user graph into memory. Pass bcryptCost 0 to
// use bcrypt's default cost.
func NewService(ctx context.Context, dataStore store.DataStore, bcryptCost int) (*Service, error) {
	if dataStore == nil {
		return nil, fmt.Errorf("data store is required")
	}

	users, err := dataStore.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	if users == nil {
		users = make(map[string]*ledger.User)
	}

	zap.L().Info("User service initialized", zap.Int("users", len(users)))
	return &Service{dataStore: dataStore, users: users, bcryptCost: bcryptCost}, nil
}

// Save writes the current in-memory user graph to the persistence backend.
func (s *Service) Save(ctx context.Context) error {
	return s.dataStore.Save(ctx, s.users)
}

// Register creates a new user with a hashed password and persists the change.
func (s *Service) Register(ctx context.Context, username, password string) (*ledger.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return nil, ErrMissingCredentials
	}

	if _, exists := s.GetUser(username); exists {
		return nil, ErrUsernameTaken
	}

	passwordHash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := ledger.NewUser(username, passwordHash)
	if err != nil {
		return nil, err
	}

	s.users[user.ID] = user
	if err := s.Save(ctx); err != nil {
		return nil, fmt.Errorf("failed to persist new user: %w", err)
	}

	zap.L().Info("User registered", zap.String("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// Login verifies the credentials and returns the matching user.
func (s *Service) Login(username, password string) (*ledger.User, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return nil, ErrMissingCredentials
	}

	user, ok := s.GetUser(username)
	if !ok {
		return nil, ErrUnknownUser
	}
	if !auth.VerifyPassword(password, user.PasswordHash) {
		zap.L().Warn("Failed login attempt", zap.String("username", username))
		return nil, ErrWrongPassword
	}
	return user, nil
}

// GetUser looks a user up by username (case-sensitive).
func (s *Service) GetUser(username string) (*ledger.User, bool) {
	for _, user := range s.users {
		if user.Username == username {
			return user, true
		}
	}
	return nil, false
}

// AllUsers returns a defensive copy of the user list.
func (s *Service) AllUsers() []*ledger.User {
	out := make([]*ledger.User, 0, len(s.users))
	for _, user := range s.users {
		out = append(out, user)
	}
	return out
}

// FindAccountByNumber searches every user's accounts for the given account
// number, for transfer recipients addressed by number.
func (s *Service) FindAccountByNumber(accountNumber string) (*ledger.Account, bool) {
	for _, user := range s.users {
		for _, account := range user.Accounts {
			if account.AccountNumber() == accountNumber {
				return account, true
			}
		}
	}
	return nil, false
}
