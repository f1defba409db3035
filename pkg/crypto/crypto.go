package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashCost is the bcrypt work factor applied to user passwords. Cost 10 is
// the interactive-login sweet spot: slow enough to resist offline cracking,
// fast enough to keep sign-in latency reasonable.
const HashCost = 10

// HashPassword returns a bcrypt hash of the supplied password. The input is
// used byte-for-byte; callers must not trim or normalise it.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return "", fmt.Errorf("crypto: hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword compares the stored hash with the plaintext candidate using
// bcrypt's constant-time comparison.
func VerifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// RandomToken returns a hex-encoded random token of the requested byte
// length. 32 bytes yields 256 bits of entropy.
func RandomToken(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("crypto: token length must be positive, got %d", length)
	}

	buffer := make([]byte, length)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("crypto: read random bytes: %w", err)
	}
	return hex.EncodeToString(buffer), nil
}
