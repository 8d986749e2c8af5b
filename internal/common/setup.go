package common

import (
	"context"
	"log"
	"strings"

	"banking-ledger-go/internal/bank"
	"banking-ledger-go/internal/database"
	"banking-ledger-go/internal/models"
	"banking-ledger-go/internal/users"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// init loads environment variables from a .env file if one exists.
// Environment variables can also be set via shell export, docker, etc.
func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: No .env file found or unable to load it: %v\n", err)
	} else {
		log.Println("✓ Loaded environment variables from .env file")
	}
}

type Services struct {
	Store *database.Service
	Users *users.Service
	Bank  *bank.Service
}

func InitializeLogger() (*zap.Logger, func()) {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	zap.ReplaceGlobals(logger)

	cleanup := func() {
		if err := logger.Sync(); err != nil {
			if !isIgnorableSyncError(err) {
				log.Printf("Failed to sync logger: %v\n", err)
			}
		}
	}

	return logger, cleanup
}

// InitializeServices wires the full stack: SQLite store, user service (which
// loads the persisted graph) and the bank orchestration service on top.
func InitializeServices(ctx context.Context, cfg *models.Config) (*Services, error) {
	dbService, err := database.NewService(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	policies, err := LoadLimitPolicies(cfg.Policy.File)
	if err != nil {
		dbService.Close()
		return nil, err
	}

	userService, err := users.NewService(ctx, dbService, cfg.Auth.BcryptCost)
	if err != nil {
		dbService.Close()
		return nil, err
	}

	bankService := bank.NewService(userService, nil, policies)

	return &Services{
		Store: dbService,
		Users: userService,
		Bank:  bankService,
	}, nil
}

func (cs *Services) Close() {
	if cs.Store != nil {
		cs.Store.Close()
	}
}

// Sync on stdout/stderr fails with these on most platforms; nothing to do.
func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "invalid argument") ||
		strings.Contains(msg, "inappropriate ioctl for device") ||
		strings.Contains(msg, "bad file descriptor")
}
