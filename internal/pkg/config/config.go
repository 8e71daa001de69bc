package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,       default=8080"`
	Env       string        `env:"ENV,        default=development"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=10h"`
	// BcryptCost is the work factor for password hashes.
	BcryptCost int `env:"BCRYPT_COST, default=12"`

	Mongo  MongoConfig
	Redis  RedisConfig
	Events EventsConfig
	Admin  AdminConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=restaurant"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR,        default=localhost:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,          default=0"`
	PoolSize int           `env:"REDIS_POOL_SIZE,   default=10"`
	CacheTTL time.Duration `env:"CATALOG_CACHE_TTL, default=5m"`
}

type EventsConfig struct {
	Workers int `env:"EVENT_WORKERS, default=4"`
}

// AdminConfig describes the bootstrap administrator. It is only created when
// both Email and Password are set.
type AdminConfig struct {
	Name     string `env:"ADMIN_NAME, default=Administrador"`
	Email    string `env:"ADMIN_EMAIL"`
	Password string `env:"ADMIN_PASSWORD"`
}

// Enabled reports whether an admin account should be bootstrapped.
func (a AdminConfig) Enabled() bool {
	return a.Email != "" && a.Password != ""
}

// IsDevelopment is true for local runs, where logs are pretty-printed.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through the given lookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("config: TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	return &cfg, nil
}
