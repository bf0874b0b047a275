package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "ENVIRONMENT", "TRIPS_BASE_URL", "TRIPS_PATH",
		"DASHBOARD_PHASE_INTERVAL_MS", "SESSION_TTL_MINUTES", "BREAKER_ENABLED",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load("dashboard-api")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.Equal(t, "dashboard-api", cfg.Server.ServiceName)
	assert.Equal(t, "http://localhost:8000", cfg.Trips.BaseURL)
	assert.Equal(t, "/trips", cfg.Trips.Path)
	assert.Equal(t, 700*time.Millisecond, cfg.Dashboard.PhaseInterval())
	assert.Equal(t, 30*time.Minute, cfg.Dashboard.SessionTTL())
	assert.True(t, cfg.Breaker.Enabled)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TRIPS_BASE_URL", "https://trips.example.com")
	t.Setenv("TRIPS_TIMEOUT_SECONDS", "5")
	t.Setenv("DASHBOARD_PHASE_INTERVAL_MS", "0")
	t.Setenv("BREAKER_ENABLED", "false")
	t.Setenv("BREAKER_FAILURE_THRESHOLD", "not-a-number")

	cfg, err := Load("dashboard-api")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "https://trips.example.com", cfg.Trips.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Trips.Timeout())
	assert.Equal(t, time.Duration(0), cfg.Dashboard.PhaseInterval())
	assert.False(t, cfg.Breaker.Enabled)
	assert.Equal(t, 5, cfg.Breaker.FailureThreshold, "invalid ints fall back to the default")
}

func TestServerConfig_AllowedOrigins(t *testing.T) {
	c := ServerConfig{CORSOrigins: "http://localhost:3000, https://dash.example.com,,"}
	assert.Equal(t, []string{"http://localhost:3000", "https://dash.example.com"}, c.AllowedOrigins())

	empty := ServerConfig{}
	assert.Empty(t, empty.AllowedOrigins())
}

func TestTripsConfig_TimeoutFallback(t *testing.T) {
	c := TripsConfig{}
	assert.Equal(t, 30*time.Second, c.Timeout())
}
