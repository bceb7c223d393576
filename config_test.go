package accounts_test

import (
	"context"
	"testing"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accounts "github.com/mkrogh/go-accounts"
)

func TestConfigValidate(t *testing.T) {
	cfg := accounts.Config{}.WithDefaults()
	err := cfg.Validate()
	assert.Error(t, err, "missing secret must fail validation")

	cfg.SecretKey = "a-long-enough-test-secret"
	assert.NoError(t, cfg.Validate())
}

func TestConfigWithDefaults(t *testing.T) {
	cfg := accounts.Config{SecretKey: "s"}.WithDefaults()

	assert.Equal(t, "BlazorApp", cfg.Issuer)
	assert.Equal(t, "BlazorUsers", cfg.Audience)
	assert.Equal(t, 7, cfg.ExpirationDays)

	custom := accounts.Config{
		SecretKey:      "s",
		Issuer:         "Other",
		Audience:       "OtherUsers",
		ExpirationDays: 1,
	}.WithDefaults()
	assert.Equal(t, "Other", custom.Issuer)
	assert.Equal(t, "OtherUsers", custom.Audience)
	assert.Equal(t, 1, custom.ExpirationDays)
}

func TestConfigFromEnvironment(t *testing.T) {
	t.Setenv("AUTH_SECRET_KEY", "env-secret")

	var cfg accounts.Config
	require.NoError(t, envconfig.Process(context.Background(), &cfg))

	assert.Equal(t, "env-secret", cfg.SecretKey)
	assert.Equal(t, "BlazorApp", cfg.Issuer)
	assert.Equal(t, "BlazorUsers", cfg.Audience)
	assert.Equal(t, 7, cfg.ExpirationDays)
	assert.NoError(t, cfg.Validate())
}
