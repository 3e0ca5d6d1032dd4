// File: internal/platform/crypto/generator_test.go
package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomString_LengthAndAlphabet(t *testing.T) {
	s, err := RandomString(32)
	require.NoError(t, err)
	assert.Len(t, s, 32)
	for _, r := range s {
		assert.True(t, strings.ContainsRune(alphabet, r), "unexpected character %q", r)
	}
}

func TestRandomString_NonPositiveLengthUsesDefault(t *testing.T) {
	s, err := RandomString(0)
	require.NoError(t, err)
	assert.Len(t, s, DefaultRandomStringLength)

	s, err = RandomString(-5)
	require.NoError(t, err)
	assert.Len(t, s, DefaultRandomStringLength)
}

func TestRandomString_Uniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		s, err := RandomString(32)
		require.NoError(t, err)
		assert.False(t, seen[s], "duplicate token generated")
		seen[s] = true
	}
}

func TestSecureToken_Length(t *testing.T) {
	token, err := SecureToken()
	require.NoError(t, err)
	assert.Len(t, token, SecureTokenLength)
}
