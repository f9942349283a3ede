package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/users")
	t.Setenv("JWT_SECRET", secret)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiration)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/users")
	t.Setenv("JWT_SECRET", secret)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("JWT_EXPIRATION", "90m")
	t.Setenv("AUTO_MIGRATE", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, 90*time.Minute, cfg.JWTExpiration)
	assert.False(t, cfg.AutoMigrate)
}

func TestLoadConfig_Errors(t *testing.T) {
	cases := map[string]map[string]string{
		"missing database": {"JWT_SECRET": secret},
		"missing secret":   {"DATABASE_URL": "postgres://localhost/users"},
		"short secret":     {"DATABASE_URL": "postgres://localhost/users", "JWT_SECRET": "short"},
		"bad duration":     {"DATABASE_URL": "postgres://localhost/users", "JWT_SECRET": secret, "JWT_EXPIRATION": "soon"},
		"zero duration":    {"DATABASE_URL": "postgres://localhost/users", "JWT_SECRET": secret, "JWT_EXPIRATION": "0s"},
	}
	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "")
			t.Setenv("JWT_SECRET", "")
			for k, v := range vars {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
