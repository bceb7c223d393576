package accounts

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// TokenService issues and validates signed, time-bounded identity tokens.
// Implementations hold only immutable configuration, so concurrent use needs
// no locking.
type TokenService interface {
	// Issue signs a token asserting the user's identity at this point in time.
	Issue(user *User) (string, error)
	// Validate verifies signature, issuer, audience, and expiry. Callers that
	// need "nil, never throws" semantics treat any error as no principal.
	Validate(token string) (*TokenClaims, error)
	// IsExpired reports whether the exp claim is in the past without
	// verifying the signature. Informational only; never an authorization
	// decision.
	IsExpired(token string) bool
	// RoleName returns the validated token's role name, "User" on any failure.
	RoleName(token string) string
	// Role returns the validated token's role, RoleUser on any failure.
	Role(token string) Role
}

type tokenService struct {
	signingKey []byte
	issuer     string
	audience   jwt.ClaimStrings
	expiration time.Duration
	logger     Logger
}

// NewTokenService builds a TokenService from cfg, applying defaults for
// issuer, audience, and expiration. It fails fast with ErrMissingSigningKey
// when no secret is configured.
func NewTokenService(cfg Config, logger Logger) (TokenService, error) {
	cfg = cfg.WithDefaults()
	if cfg.SecretKey == "" {
		return nil, ErrMissingSigningKey
	}
	if logger == nil {
		logger = defLogger{}
	}

	var aud jwt.ClaimStrings
	if cfg.Audience != "" {
		aud = jwt.ClaimStrings{cfg.Audience}
	}

	return &tokenService{
		signingKey: []byte(cfg.SecretKey),
		issuer:     cfg.Issuer,
		audience:   aud,
		expiration: time.Duration(cfg.ExpirationDays) * 24 * time.Hour,
		logger:     logger,
	}, nil
}

func (ts *tokenService) Issue(user *User) (string, error) {
	if user == nil {
		return "", errors.New("user must not be nil", errors.CategoryBadInput)
	}

	now := time.Now()
	claims := &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    ts.issuer,
			Subject:   user.ID.String(),
			Audience:  ts.audience,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.expiration)),
		},
		Username:  user.Username,
		Email:     user.Email,
		UserRole:  string(RoleFromID(user.RoleID)),
		FirstName: user.FirstName,
		LastName:  user.LastName,
		IsActive:  user.IsActive,
		RoleID:    user.RoleID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign token")
	}

	return signed, nil
}

func (ts *tokenService) Validate(tokenString string) (*TokenClaims, error) {
	if tokenString == "" {
		return nil, ErrTokenMalformed
	}

	// Expiry is checked with zero clock-skew leeway; synchronized clocks are
	// a deployment precondition.
	parserOptions := make([]jwt.ParserOption, 0, 2)
	if ts.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(ts.issuer))
	}
	if len(ts.audience) > 0 {
		parserOptions = append(parserOptions, jwt.WithAudience(ts.audience[0]))
	}

	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("token validate unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, parserOptions...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, errors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
			WithTextCode(ErrTokenMalformed.TextCode)
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		ts.logger.Error("token validate could not decode claims")
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

func (ts *tokenService) IsExpired(tokenString string) bool {
	claims := &TokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		// A token that cannot be parsed is never usable.
		return true
	}

	exp := claims.Expires()
	return exp.IsZero() || exp.Before(time.Now())
}

func (ts *tokenService) RoleName(tokenString string) string {
	return string(ts.Role(tokenString))
}

func (ts *tokenService) Role(tokenString string) Role {
	claims, err := ts.Validate(tokenString)
	if err != nil {
		return RoleUser
	}
	return claims.Role()
}
