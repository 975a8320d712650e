package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/delordemm1/go-weight-goal-api/internal/logging"
	"github.com/delordemm1/go-weight-goal-api/internal/validation"
)

// Config holds all the configuration for the application.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port string `mapstructure:"port" validate:"required,numeric"`
	Env  string `mapstructure:"env" validate:"oneof=development test staging production"`
}

// DatabaseConfig holds the PostgreSQL configuration. URL accepts both URL and
// keyword/value DSN forms.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// RedisConfig holds the optional profile cache configuration. An empty URL
// disables caching.
type RedisConfig struct {
	URL string        `mapstructure:"url" validate:"omitempty,url"`
	TTL time.Duration `mapstructure:"ttl" validate:"gte=0"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

// ErrDatabaseURLMissing is returned by RequireDatabase when no DATABASE_URL is set.
var ErrDatabaseURLMissing = errors.New("DATABASE_URL environment variable is not set")

var envBindings = map[string]string{
	"server.port":  "SERVER_PORT",
	"server.env":   "SERVER_ENV",
	"database.url": "DATABASE_URL",
	"redis.url":    "REDIS_URL",
	"redis.ttl":    "CACHE_TTL",
	"log.level":    "LOG_LEVEL",
}

// Load builds a Config from the process environment, after loading any of
// envFiles (default ".env") that exist.
func Load(envFiles ...string) (*Config, error) {
	logger := logging.Logger()

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// godotenv never overrides variables that are already set.
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.Debug("env file not found, relying on environment variables", zap.String("file", f))
				continue
			}
			return nil, err
		}
		logger.Info("env file loaded", zap.String("file", f))
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("redis.ttl", 10*time.Minute)
	v.SetDefault("log.level", "info")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)

	if err := validation.ValidateStruct(cfg); err != nil {
		return nil, err
	}

	logger.Info("configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
		zap.Bool("database", cfg.Database.URL != ""),
		zap.Bool("cache", cfg.CacheEnabled()),
	)
	return &cfg, nil
}

// RequireDatabase reports ErrDatabaseURLMissing when no database is configured.
func (c *Config) RequireDatabase() error {
	if strings.TrimSpace(c.Database.URL) == "" {
		return ErrDatabaseURLMissing
	}
	return nil
}

// CacheEnabled reports whether a Redis URL was configured.
func (c *Config) CacheEnabled() bool {
	return c.Redis.URL != ""
}
