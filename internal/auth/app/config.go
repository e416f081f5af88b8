package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config carries all runtime settings. Every field is sourced from the
// environment.
type Config struct {
	Env       string `env:"ENV, default=dev"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	LogFormat string `env:"LOG_FORMAT, default=json"`
	Port      int    `env:"PORT, default=8080"`

	DatabaseFile string `env:"AUTH_DATABASE_FILE, default=auth.db"`

	Issuer    string        `env:"AUTH_ISSUER, default=carefinder-auth"`
	JWTSecret string        `env:"AUTH_JWT_SECRET, required"`
	AccessTTL time.Duration `env:"AUTH_ACCESS_TTL, default=1h"`

	// Roles provisioned at startup. AdminRole and DefaultRole must both
	// appear in the list.
	Roles       []string `env:"AUTH_ROLES, default=Admin,Customer"`
	AdminRole   string   `env:"AUTH_ADMIN_ROLE, default=Admin"`
	DefaultRole string   `env:"AUTH_DEFAULT_ROLE, default=Customer"`

	BootstrapEmail    string `env:"AUTH_BOOTSTRAP_EMAIL, required"`
	BootstrapPassword string `env:"AUTH_BOOTSTRAP_PASSWORD, required"`

	ConfirmationTTL      time.Duration `env:"AUTH_CONFIRMATION_TTL, default=24h"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL, default=1h"`
	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD, default=10s"`
}

// LoadConfig reads the configuration from the process environment.
func LoadConfig(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
