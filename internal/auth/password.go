// Package auth implements password hashing, session tokens and the account
// operations built on them.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the work factor used when none is configured.
const DefaultBcryptCost = 10

// PasswordHasher hashes and verifies passwords with bcrypt and an optional
// pepper appended before hashing.
type PasswordHasher struct {
	Cost   int
	Pepper string
}

// NewPasswordHasher validates the cost and returns a hasher.
func NewPasswordHasher(cost int, pepper string) (*PasswordHasher, error) {
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	if cost < 10 || cost > 14 {
		return nil, fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", cost)
	}
	return &PasswordHasher{Cost: cost, Pepper: pepper}, nil
}

// Hash returns the bcrypt hash of pw.
func (h *PasswordHasher) Hash(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw+h.Pepper), h.Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether pw matches storedHash.
func (h *PasswordHasher) Verify(pw, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(pw+h.Pepper)) == nil
}
