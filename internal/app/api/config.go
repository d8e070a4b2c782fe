package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.temporal.io/sdk/client"

	dispatchclient "github.com/Apurer/go-gin-shelter-server/internal/clients/http/dispatch"
	"github.com/Apurer/go-gin-shelter-server/internal/domains/pets/adapters/external/dispatch"
	userapp "github.com/Apurer/go-gin-shelter-server/internal/domains/users/application"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port              string
	PostgresDSN       string
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
	DispatchBaseURL   string
	DispatchTimeout   time.Duration
	RedisAddr         string
	DispatchCacheTTL  time.Duration
	SessionTTL        time.Duration
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:              envDefault("PORT", "8080"),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		DispatchBaseURL:   strings.TrimSpace(os.Getenv("DISPATCH_BASE_URL")),
		RedisAddr:         strings.TrimSpace(os.Getenv("REDIS_ADDR")),
	}
	var err error
	if cfg.DispatchTimeout, err = positiveDuration("DISPATCH_TIMEOUT_SECONDS", time.Second, dispatchclient.DefaultTimeout); err != nil {
		return Config{}, err
	}
	if cfg.DispatchCacheTTL, err = positiveDuration("DISPATCH_CACHE_TTL_SECONDS", time.Second, dispatch.DefaultCacheTTL); err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL, err = positiveDuration("SESSION_TTL_HOURS", time.Hour, userapp.DefaultSessionTTL); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

func positiveDuration(key string, unit, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return time.Duration(n) * unit, nil
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
