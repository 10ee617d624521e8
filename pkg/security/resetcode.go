package security

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// ResetCodeBytes is the amount of entropy in a password reset code.
const ResetCodeBytes = 6

// GenerateResetCode returns a lowercase hex string of ResetCodeBytes random bytes.
func GenerateResetCode() (string, error) {
	buf := make([]byte, ResetCodeBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate reset code: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
