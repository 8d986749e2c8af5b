package store

import (
	"context"

	"banking-ledger-go/internal/ledger"
)

// DataStore is the contract every persistence backend must satisfy. The
// stored unit is the full user graph keyed by user ID: each user with their
// accounts, each account with its transaction history.
//
// Load must preserve object identity: an account's Owner back-reference and a
// transaction's Counterparty must resolve to the same in-memory objects as
// the ones reachable from the returned map, not to detached copies.
type DataStore interface {
	Load(ctx context.Context) (map[string]*ledger.User, error)
	Save(ctx context.Context, users map[string]*ledger.User) error
}
