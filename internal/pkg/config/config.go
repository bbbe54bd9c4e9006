package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=30m"`

	// CORSOrigins lists the dashboard origins allowed to call the API.
	CORSOrigins []string `env:"CORS_ORIGINS, default=http://localhost:3000,http://localhost:5173,http://127.0.0.1:5173"`

	Log      LogConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Activity ActivityConfig
}

type LogConfig struct {
	Level string `env:"LOG_LEVEL, default=info"`
	// File enables a rotating file sink next to stdout when set.
	File       string `env:"LOG_FILE"`
	MaxSizeMB  int    `env:"LOG_MAX_SIZE_MB,  default=100"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS,  default=5"`
	MaxAgeDays int    `env:"LOG_MAX_AGE_DAYS, default=28"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=reach_skyline_crm"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`

	LockTTL  time.Duration `env:"LOCK_TTL,  default=10s"`
	LockWait time.Duration `env:"LOCK_WAIT, default=3s"`
}

type ActivityConfig struct {
	Workers int `env:"ACTIVITY_WORKERS, default=4"`
}

// IsDevelopment reports whether the process runs with ENV=development.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom reads configuration from an arbitrary lookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	return &cfg, nil
}
