package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("Hash must not equal the plaintext password")
	}

	if !VerifyPassword("s3cret", hash) {
		t.Error("Expected correct password to verify")
	}
	if VerifyPassword("wrong", hash) {
		t.Error("Expected wrong password to fail verification")
	}
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	if _, err := HashPassword("   ", bcrypt.MinCost); err == nil {
		t.Error("Expected error for blank password")
	}
}
