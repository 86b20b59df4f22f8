package utils

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns the bcrypt hash of plain using the given cost.
// A value that is already a bcrypt hash is returned unchanged, so profile
// updates that carry the stored hash back do not double-hash it.
func HashPassword(plain string, cost int) (string, error) {
	if IsHashed(plain) {
		return plain, nil
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// IsHashed reports whether s already looks like a bcrypt hash.
func IsHashed(s string) bool {
	return strings.HasPrefix(s, "$2")
}

// VerifyPassword safely compares bcrypt hash and plain password.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
