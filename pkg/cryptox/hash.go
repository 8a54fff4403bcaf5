package cryptox

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used for login token and passcode hashes.
const DefaultCost = 10

// ErrHashMismatch is returned when a value does not match a stored hash. A
// missing or malformed stored hash reports the same error so callers never
// branch on why a comparison failed.
var ErrHashMismatch = errors.New("cryptox: hash mismatch")

// Hasher produces salted one-way digests and verifies values against them.
type Hasher interface {
	Hash(value string) (string, error)
	Compare(value, hash string) error
}

// Bcrypt is a Hasher backed by bcrypt. The zero value uses DefaultCost.
type Bcrypt struct {
	Cost int
}

// NewBcrypt returns a Bcrypt hasher with the given cost, falling back to
// DefaultCost when cost is outside bcrypt's accepted range.
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Bcrypt{Cost: cost}
}

// Hash returns the bcrypt digest of value.
func (b *Bcrypt) Hash(value string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = DefaultCost
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(value), cost)
	if err != nil {
		return "", fmt.Errorf("cryptox: bcrypt hash: %w", err)
	}
	return string(digest), nil
}

// Compare checks value against a bcrypt digest.
func (b *Bcrypt) Compare(value, hash string) error {
	if hash == "" {
		return ErrHashMismatch
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(value)); err != nil {
		return fmt.Errorf("%w: %w", ErrHashMismatch, err)
	}
	return nil
}
