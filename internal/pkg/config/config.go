// Package config loads the service configuration from the environment.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// CORSOrigins lists the browser origins allowed to call the API.
	CORSOrigins []string `env:"CORS_ORIGINS, default=*"`

	// TrustedProxies lists proxy CIDRs allowed to set X-Forwarded-For.
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// StorageBackend selects the repositories: "mongo" or "memory".
	StorageBackend string `env:"STORAGE_BACKEND, default=mongo"`

	Auth      AuthConfig
	RateLimit RateLimitConfig
	Admin     AdminConfig
	Mongo     MongoConfig
	Redis     RedisConfig
}

type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=8h"`
}

type RateLimitConfig struct {
	Enabled     bool          `env:"RATE_LIMIT_ENABLED, default=true"`
	MaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS, default=10"`
	Window      time.Duration `env:"LOGIN_WINDOW,       default=15m"`
}

// AdminConfig seeds an administrator at start-up when Email and Password are set.
type AdminConfig struct {
	Name     string `env:"ADMIN_NAME, default=Administrator"`
	Email    string `env:"ADMIN_EMAIL"`
	Password string `env:"ADMIN_PASSWORD"`
}

// Enabled reports whether a bootstrap administrator is configured.
func (a AdminConfig) Enabled() bool {
	return a.Email != "" && a.Password != ""
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=employee_admin"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// IsDevelopment reports whether the service runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads an optional .env file and then the process environment.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith resolves the configuration from the given lookuper.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	switch cfg.StorageBackend {
	case "mongo", "memory":
	default:
		return nil, fmt.Errorf("config: unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}
	return &cfg, nil
}

// BootstrapConfig is the subset read by cmd/createadmin. It needs no signing secret.
type BootstrapConfig struct {
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Admin AdminConfig
	Mongo MongoConfig
}

// LoadBootstrap reads an optional .env file and the bootstrap settings.
func LoadBootstrap(ctx context.Context) (*BootstrapConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}
	return LoadBootstrapWith(ctx, envconfig.OsLookuper())
}

func LoadBootstrapWith(ctx context.Context, l envconfig.Lookuper) (*BootstrapConfig, error) {
	var cfg BootstrapConfig
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return &cfg, nil
}

// MustLoad is Load for entry points that cannot continue without configuration.
func MustLoad(ctx context.Context) *Config {
	cfg, err := Load(ctx)
	if err != nil {
		panic(err)
	}
	return cfg
}
