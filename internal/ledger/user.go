package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User owns a collection of accounts. Each account holds a non-owning Owner
// pointer back to its user; the user's Accounts slice is the single owning
// side of that relation.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Accounts     []*Account
	CreatedAt    time.Time
}

// NewUser creates a user with no accounts. The password arrives already
// hashed; this package never sees plaintext credentials.
func NewUser(username, passwordHash string) (*User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("username cannot be empty")
	}
	return &User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}, nil
}
