package booking

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// NewHoldToken returns a 256-bit random hex token. The token is the only
// external handle to a hold, so it must be unguessable.
func NewHoldToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("booking: generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
