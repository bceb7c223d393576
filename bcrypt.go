package accounts

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHashCost is the fixed bcrypt work factor. It must not change for
// the lifetime of stored hashes; verification always uses the parameters
// embedded in the stored hash, so hash and verify can never disagree on the
// variant.
const PasswordHashCost = 11

// HashPassword checks the password policy and generates a salted bcrypt hash.
// A policy violation returns the validation error and no hash is produced.
func HashPassword(password string) (string, error) {
	if err := ValidatePassword(password); err != nil {
		return "", err
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), PasswordHashCost)
	return string(h), err
}

// ComparePasswordAndHash will validate the given cleartext password against
// the stored hash in constant time.
func ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatchedHashAndPassword
		}
		return err
	}
	return nil
}

// PasswordMatches reports whether password matches the stored hash. A
// malformed stored hash is a mismatch, never a panic or an error.
func PasswordMatches(password, hash string) bool {
	return ComparePasswordAndHash(password, hash) == nil
}
