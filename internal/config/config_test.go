package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := load()
	assert.EqualError(t, err, "AUTH_JWT_SECRET must be configured")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	for _, key := range []string{"HTTP_ADDR", "MONGO_DB", "DEAL_COLLECTION", "REQUEST_TIMEOUT", "DISCOVERY_DEFAULT_RADIUS_KM", "API_ALLOWED_ORIGINS", "METRICS_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg, err := load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "fresh-finds", cfg.MongoDatabase)
	assert.Equal(t, "deals", cfg.DealCollection)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 10.0, cfg.DefaultRadiusKm)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, []byte("s3cret"), cfg.JWT.Secret)
	require.NotNil(t, cfg.ServerLog)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("AUTH_JWT_ISSUER", "fresh-finds-auth")
	t.Setenv("REQUEST_TIMEOUT", "2s")
	t.Setenv("DISCOVERY_DEFAULT_RADIUS_KM", "25")
	t.Setenv("API_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := load()
	require.NoError(t, err)
	assert.Equal(t, "fresh-finds-auth", cfg.JWT.Issuer)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 25.0, cfg.DefaultRadiusKm)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.False(t, cfg.MetricsEnabled)
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("DISCOVERY_DEFAULT_RADIUS_KM", "-3")
	assert.Equal(t, 10.0, parsePositiveFloat("DISCOVERY_DEFAULT_RADIUS_KM", 10))

	t.Setenv("DISCOVERY_DEFAULT_RADIUS_KM", "Inf")
	assert.Equal(t, 10.0, parsePositiveFloat("DISCOVERY_DEFAULT_RADIUS_KM", 10))

	t.Setenv("REQUEST_TIMEOUT", "soon")
	assert.Equal(t, time.Second, parseDuration("REQUEST_TIMEOUT", time.Second))

	t.Setenv("METRICS_ENABLED", "maybe")
	assert.True(t, parseBool("METRICS_ENABLED", true))

	t.Setenv("API_ALLOWED_ORIGINS", " , ")
	assert.Equal(t, []string{"*"}, parseList("API_ALLOWED_ORIGINS", []string{"*"}))
}
