package cryptox

import (
	"fmt"

	"github.com/google/uuid"
)

// NewNonce returns a random opaque token (UUIDv4). It is embedded in signed
// login tokens and only its bcrypt hash is persisted.
func NewNonce() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("cryptox: nonce: %w", err)
	}
	return id.String(), nil
}
