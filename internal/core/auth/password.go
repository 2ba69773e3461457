package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext password using bcrypt
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// VerifyPassword checks if a plaintext password matches the hashed password
func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// Credentials is the single admin account of the panel.
type Credentials struct {
	username     string
	passwordHash string
}

// NewCredentials accepts the configured password either in plain text or as
// a bcrypt hash ("$2a$..."); plain text is hashed once here.
func NewCredentials(username, password string) (*Credentials, error) {
	hash := password
	if !isBcryptHash(password) {
		var err error
		hash, err = HashPassword(password)
		if err != nil {
			return nil, err
		}
	}
	return &Credentials{username: username, passwordHash: hash}, nil
}

// Check reports whether the login form matches the configured account.
func (c *Credentials) Check(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.username)) == 1
	passOK := VerifyPassword(c.passwordHash, password) == nil
	return userOK && passOK
}

func (c *Credentials) Username() string {
	return c.username
}

func isBcryptHash(s string) bool {
	return len(s) == 60 && (strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$"))
}
