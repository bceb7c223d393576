package accounts

import "github.com/goliatone/go-errors"

// ErrMissingSigningKey aborts TokenService construction when no signing
// secret is configured.
var ErrMissingSigningKey = errors.New("token signing secret is not configured", errors.CategoryValidation).
	WithTextCode("MISSING_SIGNING_KEY")

// ErrTokenExpired marks a token whose exp claim is in the past.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode("TOKEN_EXPIRED").
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed covers every other validation failure: bad signature,
// wrong issuer or audience, garbled input.
var ErrTokenMalformed = errors.New("token is malformed or invalid", errors.CategoryAuth).
	WithTextCode("TOKEN_MALFORMED").
	WithCode(errors.CodeUnauthorized)

// ErrInvalidCredentials is returned for every failed credential check. A
// missing user and a wrong password are deliberately indistinguishable so
// callers cannot enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid username or password", errors.CategoryAuth).
	WithTextCode("INVALID_CREDENTIALS").
	WithCode(errors.CodeUnauthorized)

// ErrMismatchedHashAndPassword reports a cleartext password that does not
// match the stored hash.
var ErrMismatchedHashAndPassword = errors.New("hashed password is not the hash of the given password", errors.CategoryAuth).
	WithTextCode("PASSWORD_MISMATCH")

// ErrUserNotFound is the not-found result for direct record lookups. The
// Authenticate path never returns it; it maps to ErrInvalidCredentials there.
var ErrUserNotFound = errors.New("user not found", errors.CategoryNotFound).
	WithTextCode("USER_NOT_FOUND")
