package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Trips     TripsConfig
	Dashboard DashboardConfig
	Breaker   BreakerConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	Environment  string
	ServiceName  string
	ReadTimeout  int
	WriteTimeout int
	CORSOrigins  string // Comma-separated list of allowed origins
}

// TripsConfig describes the upstream trip listing endpoint
type TripsConfig struct {
	BaseURL        string
	Path           string
	TimeoutSeconds int
}

// DashboardConfig holds dashboard session tuning
type DashboardConfig struct {
	PhaseIntervalMS   int
	SessionTTLMinutes int
}

// BreakerConfig tunes the circuit breaker in front of the trip endpoint
type BreakerConfig struct {
	Enabled          bool
	IntervalSeconds  int
	TimeoutSeconds   int
	FailureThreshold int
	SuccessThreshold int
}

// Load loads configuration from environment variables
func Load(serviceName string) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Environment:  getEnv("ENVIRONMENT", "development"),
			ServiceName:  serviceName,
			ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
			WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),
			CORSOrigins:  getEnv("CORS_ORIGINS", "http://localhost:3000"),
		},
		Trips: TripsConfig{
			BaseURL:        getEnv("TRIPS_BASE_URL", "http://localhost:8000"),
			Path:           getEnv("TRIPS_PATH", "/trips"),
			TimeoutSeconds: getEnvAsInt("TRIPS_TIMEOUT_SECONDS", 30),
		},
		Dashboard: DashboardConfig{
			PhaseIntervalMS:   getEnvAsInt("DASHBOARD_PHASE_INTERVAL_MS", 700),
			SessionTTLMinutes: getEnvAsInt("SESSION_TTL_MINUTES", 30),
		},
		Breaker: BreakerConfig{
			Enabled:          getEnvAsBool("BREAKER_ENABLED", true),
			IntervalSeconds:  getEnvAsInt("BREAKER_INTERVAL_SECONDS", 60),
			TimeoutSeconds:   getEnvAsInt("BREAKER_TIMEOUT_SECONDS", 30),
			FailureThreshold: getEnvAsInt("BREAKER_FAILURE_THRESHOLD", 5),
			SuccessThreshold: getEnvAsInt("BREAKER_SUCCESS_THRESHOLD", 1),
		},
	}

	return cfg, nil
}

// AllowedOrigins splits CORSOrigins into a list, dropping blanks
func (c *ServerConfig) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// Timeout returns the per-request timeout for the trip endpoint
func (c *TripsConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// PhaseInterval returns how long each loader phase is displayed
func (c *DashboardConfig) PhaseInterval() time.Duration {
	if c.PhaseIntervalMS < 0 {
		return 0
	}
	return time.Duration(c.PhaseIntervalMS) * time.Millisecond
}

// SessionTTL returns the idle lifetime of a dashboard session
func (c *DashboardConfig) SessionTTL() time.Duration {
	if c.SessionTTLMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
