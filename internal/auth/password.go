package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// IsBcryptHash reports whether the configured secret is a bcrypt hash
// rather than a plaintext password.
func IsBcryptHash(secret string) bool {
	for _, p := range bcryptPrefixes {
		if strings.HasPrefix(secret, p) {
			return true
		}
	}
	return false
}

// HashPassword creates a bcrypt hash suitable for NAV_AUTH_PASSWORD.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// matchPassword compares a candidate against the configured secret.
func matchPassword(secret, candidate string) bool {
	if candidate == "" {
		return false
	}
	if IsBcryptHash(secret) {
		return bcrypt.CompareHashAndPassword([]byte(secret), []byte(candidate)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(candidate)) == 1
}
