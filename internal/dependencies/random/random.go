package random

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// Random provides random token generation that can be mocked for testing
type Random interface {
	// Token returns byteLen random bytes encoded as unpadded base64url
	Token(byteLen int) (string, error)
}

// CryptoRandom implements Random using crypto/rand
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// Token returns a cryptographically random base64url token
func (r *CryptoRandom) Token(byteLen int) (string, error) {
	if byteLen <= 0 {
		return "", fmt.Errorf("token length must be positive, got %d", byteLen)
	}
	b := make([]byte, byteLen)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
