package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

var (
	ErrInvalidPasswordHash = errors.New("invalid password hash format")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)

const (
	pbkdf2SaltLength = 16
	pbkdf2KeyLength  = 32
)

// HashPassword derives a PBKDF2-SHA256 hash with the given iteration count.
// Format is $pbkdf2-sha256$i=<iterations>$<salt>$<hash>, both parts base64.
func HashPassword(password string, iterations int) (string, error) {
	if iterations <= 0 {
		iterations = 310000
	}
	salt := make([]byte, pbkdf2SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	key := pbkdf2.Key([]byte(password), salt, iterations, pbkdf2KeyLength, sha256.New)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Key := base64.RawStdEncoding.EncodeToString(key)
	return fmt.Sprintf("$pbkdf2-sha256$i=%d$%s$%s", iterations, b64Salt, b64Key), nil
}

// ComparePassword verifies a password against its stored hash in constant
// time.
func ComparePassword(hashed, password string) error {
	parts := strings.Split(hashed, "$")
	if len(parts) != 5 || parts[1] != "pbkdf2-sha256" {
		return ErrInvalidPasswordHash
	}

	var iterations int
	if _, err := fmt.Sscanf(parts[2], "i=%d", &iterations); err != nil {
		return ErrInvalidPasswordHash
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil {
		return ErrInvalidPasswordHash
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return ErrInvalidPasswordHash
	}

	key := pbkdf2.Key([]byte(password), salt, iterations, len(expected), sha256.New)
	if subtle.ConstantTimeCompare(key, expected) == 1 {
		return nil
	}
	return ErrInvalidCredentials
}
