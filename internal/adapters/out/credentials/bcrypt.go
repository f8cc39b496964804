// Package credentials turns passwords into opaque secrets and back.
package credentials

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher implements commands.PasswordHasher and queries.PasswordVerifier.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher uses bcrypt.DefaultCost when cost is zero.
func NewBcryptHasher(cost int) BcryptHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return BcryptHasher{cost: cost}
}

func (h BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hash), nil
}

func (h BcryptHasher) Compare(secretHash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(secretHash), []byte(password))
}
