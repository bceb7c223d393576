package accounts

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	// DefaultIssuer is the issuer claim used when none is configured.
	DefaultIssuer = "BlazorApp"
	// DefaultAudience is the audience claim used when none is configured.
	DefaultAudience = "BlazorUsers"
	// DefaultExpirationDays is the token lifetime used when none is configured.
	DefaultExpirationDays = 7
)

// Config holds the token signing options. It is immutable after process
// start: construct it once, validate it, and hand it to NewTokenService.
type Config struct {
	// SecretKey signs and verifies every token. The process must refuse to
	// start without it.
	SecretKey      string `env:"AUTH_SECRET_KEY"`
	Issuer         string `env:"AUTH_ISSUER, default=BlazorApp"`
	Audience       string `env:"AUTH_AUDIENCE, default=BlazorUsers"`
	ExpirationDays int    `env:"AUTH_EXPIRATION_DAYS, default=7"`
}

// Validate reports whether the configuration is usable. A missing secret is
// fatal at startup, not a per-request condition.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.SecretKey,
			validation.Required.Error("signing secret is not configured")),
		validation.Field(&c.ExpirationDays, validation.Min(1)),
	)
}

// WithDefaults fills zero-valued optional fields. SecretKey stays required.
func (c Config) WithDefaults() Config {
	if c.Issuer == "" {
		c.Issuer = DefaultIssuer
	}
	if c.Audience == "" {
		c.Audience = DefaultAudience
	}
	if c.ExpirationDays <= 0 {
		c.ExpirationDays = DefaultExpirationDays
	}
	return c
}
