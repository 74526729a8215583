// Package auth holds the credential primitives: the password digest and the
// opaque secret generator used for both per-account salts and bearer tokens.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
)

// SecretLength is the length of generated salts and bearer tokens.
const SecretLength = 16

const secretAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// HashPassword derives the stored credential digest: SHA-256 of the password
// concatenated with the salt, base64 encoded. Deterministic for the same
// inputs, which is what the login equality check relies on.
func HashPassword(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// NewSecret returns a SecretLength-character random alphanumeric string from
// a cryptographic source. No uniqueness check is performed here; the token
// space is large enough that collisions are handled (rarely) at the store
// by its unique index.
func NewSecret() (string, error) {
	buf := make([]byte, SecretLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = secretAlphabet[int(b)%len(secretAlphabet)]
	}
	return string(buf), nil
}
