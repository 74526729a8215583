package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword_Deterministic(t *testing.T) {
	first := HashPassword("pw1", "somesalt")
	second := HashPassword("pw1", "somesalt")
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func TestHashPassword_SaltChangesDigest(t *testing.T) {
	assert.NotEqual(t, HashPassword("pw1", "saltA"), HashPassword("pw1", "saltB"))
	assert.NotEqual(t, HashPassword("pw1", "saltA"), HashPassword("pw2", "saltA"))
}

func TestNewSecret(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		secret, err := NewSecret()
		assert.NoError(t, err)
		assert.Len(t, secret, SecretLength)
		for _, r := range secret {
			isAlnum := (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
			assert.True(t, isAlnum, "unexpected character %q", r)
		}
		seen[secret] = true
	}
	// 100 draws from a 62^16 space should never repeat.
	assert.Len(t, seen, 100)
}
