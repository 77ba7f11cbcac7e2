package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_MissingSecretFailsOutsideDevelopment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "AUTH_JWT_SECRET")
}

func TestLoad_MissingSecretFallsBackInDevelopment(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("AUTH_JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.Auth.FallbackSecretInUse)
	require.NotEmpty(t, cfg.Auth.JWTSecret)
}

func TestLoad_ExplicitSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_JWT_SECRET", "super-secret-value")

	cfg, err := Load()
	require.NoError(t, err)
	require.False(t, cfg.Auth.FallbackSecretInUse)
	require.Equal(t, "super-secret-value", cfg.Auth.JWTSecret)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("AUTH_JWT_SECRET", "s")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "hr-service", cfg.App.Name)
	require.Equal(t, 60, cfg.Auth.AccessTokenTTLMinutes)
	require.Equal(t, 12, cfg.Auth.BcryptCost)
	require.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
}
