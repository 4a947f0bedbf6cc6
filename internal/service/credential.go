package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns the bcrypt digest of password at the default cost.
// Internal hashing errors are wrapped generically so nothing about the
// mechanism leaks to callers.
func HashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash operation failed: %w", err)
	}
	return string(digest), nil
}

// VerifyPassword reports whether password matches the stored bcrypt digest.
// Fails closed: a malformed digest or any internal error counts as not verified.
func VerifyPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
