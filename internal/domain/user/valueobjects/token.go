package valueobjects

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// Token is a single-use secret for email verification and password reset
// flows. Only its SHA-256 hash is stored; the raw value goes out in email.
type Token struct {
	value string
}

// GenerateToken creates a new token from 32 bytes of crypto/rand entropy.
func GenerateToken() (*Token, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &Token{value: hex.EncodeToString(bytes)}, nil
}

// NewTokenFromValue wraps a token received back from a client.
func NewTokenFromValue(value string) (*Token, error) {
	if len(value) < 32 {
		return nil, fmt.Errorf("token too short")
	}
	if _, err := hex.DecodeString(value); err != nil {
		return nil, fmt.Errorf("token must be hex encoded")
	}
	return &Token{value: value}, nil
}

func (t *Token) String() string {
	return t.value
}

// Hash returns the SHA-256 digest of the token for storage.
func (t *Token) Hash() string {
	sum := sha256.Sum256([]byte(t.value))
	return hex.EncodeToString(sum[:])
}

// Verify compares the token against a stored hash in constant time.
func (t *Token) Verify(storedHash string) bool {
	return subtle.ConstantTimeCompare([]byte(t.Hash()), []byte(storedHash)) == 1
}
