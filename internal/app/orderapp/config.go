package orderapp

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.temporal.io/sdk/client"
)

// Config carries environment-driven settings for the order service process.
type Config struct {
	Port              string
	PostgresDSN       string
	UserServiceURL    string
	ProductServiceURL string
	LookupTimeout     time.Duration
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
}

// LoadConfig reads environment variables, applies defaults, and validates
// basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:              envDefault("PORT", "3002"),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		UserServiceURL:    envDefault("USER_SERVICE_URL", "http://localhost:3003"),
		ProductServiceURL: envDefault("PRODUCT_SERVICE_URL", "http://localhost:3001"),
		LookupTimeout:     5 * time.Second,
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
	}
	if raw := strings.TrimSpace(os.Getenv("LOOKUP_TIMEOUT_MS")); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil || ms <= 0 {
			return Config{}, fmt.Errorf("LOOKUP_TIMEOUT_MS must be a positive integer")
		}
		cfg.LookupTimeout = time.Duration(ms) * time.Millisecond
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
