package secrets

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// DefaultPasswordLength is used when GeneratePassword is asked for zero length.
const DefaultPasswordLength = 32

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*"

// GeneratePassword returns a random password drawn uniformly from letters,
// digits and !@#$%^&*.
func GeneratePassword(length int) (string, error) {
	if length == 0 {
		length = DefaultPasswordLength
	}
	if length < 0 {
		return "", fmt.Errorf("password length must be positive, got %d", length)
	}

	limit := big.NewInt(int64(len(passwordAlphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("failed to generate password: %w", err)
		}
		out[i] = passwordAlphabet[n.Int64()]
	}
	return string(out), nil
}
