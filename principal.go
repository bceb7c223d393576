package accounts

import (
	"strings"
	"time"
)

// Principal is the resolved identity for the current request: either the
// anonymous principal or the claim set carried by a validated token. It is
// created fresh per resolution and never cached beyond it.
type Principal struct {
	ID        string
	Username  string
	Email     string
	FirstName string
	LastName  string
	Role      Role
	RoleID    int
	Active    bool
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time

	authenticated bool
}

// AnonymousPrincipal is the identity used when no valid token is present. It
// carries no role and satisfies no policy.
func AnonymousPrincipal() Principal {
	return Principal{}
}

// IsAuthenticated reports whether the principal was derived from a valid
// token.
func (p Principal) IsAuthenticated() bool {
	return p.authenticated
}

// HasRole reports whether an authenticated principal holds the given role.
func (p Principal) HasRole(role Role) bool {
	return p.authenticated && p.Role == role
}

// DisplayName returns the full name when present, otherwise the username.
func (p Principal) DisplayName() string {
	if name := strings.TrimSpace(p.FirstName + " " + p.LastName); name != "" {
		return name
	}
	return p.Username
}

// PrincipalFromClaims builds an authenticated principal mirroring the
// token's claims. A nil claim set yields the anonymous principal.
func PrincipalFromClaims(claims *TokenClaims) Principal {
	if claims == nil {
		return AnonymousPrincipal()
	}

	roleID := claims.RoleID
	if roleID == 0 {
		roleID = claims.Role().ID()
	}

	return Principal{
		ID:            claims.Subject(),
		Username:      claims.Username,
		Email:         claims.Email,
		FirstName:     claims.FirstName,
		LastName:      claims.LastName,
		Role:          claims.Role(),
		RoleID:        roleID,
		Active:        claims.IsActive,
		TokenID:       claims.TokenID(),
		IssuedAt:      claims.IssuedAt(),
		ExpiresAt:     claims.Expires(),
		authenticated: true,
	}
}
