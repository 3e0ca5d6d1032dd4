// File: internal/platform/crypto/generator.go
package crypto

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// alphabet is the character set tokens are sampled from.
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// DefaultRandomStringLength is used when callers have no length requirement.
const DefaultRandomStringLength = 32

// SecureTokenLength is the length of tokens produced by SecureToken.
const SecureTokenLength = 64

// RandomString returns a random alphanumeric string of length n, sampled from
// a CSPRNG. Tokens from here are safe to use as security tokens.
func RandomString(n int) (string, error) {
	if n <= 0 {
		n = DefaultRandomStringLength
	}
	max := big.NewInt(int64(len(alphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random source: %w", err)
		}
		b[i] = alphabet[idx.Int64()]
	}
	return string(b), nil
}

// SecureToken returns a 64-character random token for passwordless flows.
func SecureToken() (string, error) {
	return RandomString(SecureTokenLength)
}
