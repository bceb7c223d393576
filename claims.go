package accounts

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the claim set carried by issued session tokens. Tokens are
// self-contained and never persisted server side; once signed they are only
// invalidated by expiry or signature mismatch.
type TokenClaims struct {
	jwt.RegisteredClaims
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
	UserRole  string `json:"role,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	IsActive  bool   `json:"is_active"`
	RoleID    int    `json:"role_id,omitempty"`
}

// Subject returns the subject claim, the user id.
func (c *TokenClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// TokenID returns the jti claim.
func (c *TokenClaims) TokenID() string {
	return c.RegisteredClaims.ID
}

// Role returns the role claim, defaulting to RoleUser when it is absent or
// unrecognized.
func (c *TokenClaims) Role() Role {
	if c.UserRole == "" {
		return RoleUser
	}
	return ParseRole(c.UserRole)
}

// Expires returns the expiration time, zero when the claim is absent.
func (c *TokenClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued-at time, zero when the claim is absent.
func (c *TokenClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
