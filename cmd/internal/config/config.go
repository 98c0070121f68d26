package config

import (
	"fmt"
	"os"
	"time"
)

// Config is built once at startup and handed to constructors; nothing reads
// the environment after that.
type Config struct {
	Port                  string
	DatabasePath          string
	AppointmentServiceURL string
	UserServiceURL        string
	GatewayTimeout        time.Duration
	TrustAllCerts         bool
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:                  getEnv("PORT", "6060"),
		DatabasePath:          getEnv("DATABASE_PATH", "./database.db"),
		AppointmentServiceURL: getEnv("APPOINTMENT_SERVICE_URL", "http://localhost:8081"),
		UserServiceURL:        getEnv("USER_SERVICE_URL", "http://localhost:8082"),
		GatewayTimeout:        5 * time.Second,
		TrustAllCerts:         os.Getenv("TRUST_ALL_CERTS") == "true",
	}

	if raw := os.Getenv("GATEWAY_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid GATEWAY_TIMEOUT %q: %w", raw, err)
		}
		cfg.GatewayTimeout = d
	}
	if cfg.GatewayTimeout <= 0 {
		return nil, fmt.Errorf("GATEWAY_TIMEOUT must be positive, got %s", cfg.GatewayTimeout)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
