package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PORT", "8080")
	t.Setenv("POSTGRES_USER", "petnest")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "petnest")
	t.Setenv("POSTGRES_HOST", "localhost")
	t.Setenv("POSTGRES_PORT", "5432")
	t.Setenv("JWT_SECRET", "jwt-secret")
	t.Setenv("GO_ENV", "dev")
	t.Setenv("API_DOMAIN", "localhost")
	t.Setenv("FE_URL", "http://localhost:5173")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("COOKIE_SECURE", "")
	t.Setenv("PET_IMAGE_BUCKET", "")
	t.Setenv("AWS_REGION", "")
}

func TestLoad_OK(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5432, cfg.PostgresPort)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, "data/wishlist.db", cfg.WishlistDBPath)
	assert.Equal(t, "host=localhost port=5432 user=petnest password=secret dbname=petnest sslmode=disable", cfg.DSN())
}

func TestLoad_DatabaseURLSkipsPostgresVars(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/petnest")
	t.Setenv("POSTGRES_PORT", "")
	t.Setenv("POSTGRES_USER", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db:5432/petnest", cfg.DSN())
}

func TestLoad_MissingRequired(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.EqualError(t, err, "JWT_SECRET is required")
}

func TestLoad_BadPort(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("POSTGRES_PORT", "abc")

	_, err := Load()
	assert.ErrorContains(t, err, "POSTGRES_PORT must be number")
}

func TestLoad_CookieSecure(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("COOKIE_SECURE", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.CookieSecure)

	t.Setenv("COOKIE_SECURE", "maybe")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoad_BucketNeedsRegion(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PET_IMAGE_BUCKET", "petnest-images")

	_, err := Load()
	assert.ErrorContains(t, err, "AWS_REGION")
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, splitList(" A@example.com, ,b@example.com,"))
	assert.Nil(t, splitList(""))
}
