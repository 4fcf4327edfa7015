package security

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"time"
)

const tokenSize = 32

// VerificationToken holds a freshly issued email verification token.
// Only Hash and ExpiresAt are meant to be persisted. Plain goes into
// the mailed link and is never stored anywhere
type VerificationToken struct {
	Plain     string
	Hash      string
	ExpiresAt time.Time
}

// MakeVerificationToken generates a random token valid for ttl
func MakeVerificationToken(ttl time.Duration) (*VerificationToken, error) {
	b := make([]byte, tokenSize)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}

	plain := hex.EncodeToString(b)

	return &VerificationToken{
		Plain:     plain,
		Hash:      HashToken(plain),
		ExpiresAt: time.Now().Add(ttl),
	}, nil
}

// HashToken deterministically hashes a plaintext token so a presented
// token can be matched against the stored hash by value
func HashToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

// VerifyToken checks a presented plaintext token against the stored
// hash and expiry. Returns false on any mismatch, expiry or missing
// stored value, never an error
func VerifyToken(plain string, storedHash *string, storedExpiry *time.Time) bool {
	if plain == "" || storedHash == nil || storedExpiry == nil {
		return false
	}

	if time.Now().After(*storedExpiry) {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(HashToken(plain)), []byte(*storedHash)) == 1
}
