// Package security implements credential handling and session issuance.
package security

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is used when no cost is configured.
const DefaultBcryptCost = 12

// CredentialService hashes and verifies passwords and POS PINs with bcrypt.
type CredentialService struct {
	cost int
}

// NewCredentialService creates a CredentialService with the given bcrypt
// cost; values outside bcrypt's range fall back to DefaultBcryptCost.
func NewCredentialService(cost int) *CredentialService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &CredentialService{cost: cost}
}

// HashPassword hashes a login password.
func (s *CredentialService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether the candidate matches the stored hash.
func (s *CredentialService) Verify(candidate, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(candidate)) == nil
}

// NewPIN generates a random 6-digit POS PIN and its hash. Each digit is drawn
// uniformly; a byte mod 10 would skew toward 0-5.
func (s *CredentialService) NewPIN() (pin, hash string, err error) {
	digits := make([]byte, 6)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", "", fmt.Errorf("generate pin: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	pin = string(digits)
	h, err := bcrypt.GenerateFromPassword([]byte(pin), s.cost)
	if err != nil {
		return "", "", fmt.Errorf("bcrypt pin: %w", err)
	}
	return pin, string(h), nil
}
