// Package id generates opaque identifiers.
package id

import (
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// NewID returns a random version 4 UUID as 32 lowercase hex characters.
func NewID() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return hex.EncodeToString(u[:]), nil
}
