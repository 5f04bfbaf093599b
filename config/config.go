// Package config loads the service configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

type AppCfg struct {
	Env            string
	Port           string
	RequestTimeout time.Duration
	LogLevel       zerolog.Level
}

type DBCfg struct {
	DSN         string
	PingRetries uint64
}

type RedisCfg struct {
	// Addr is optional; without it totals are not cached.
	Addr     string
	CountTTL time.Duration
}

type Cfg struct {
	App   AppCfg
	DB    DBCfg
	Redis RedisCfg
}

// ErrMissingDSN is returned when DB_DSN is not set.
var ErrMissingDSN = errors.New("DB_DSN is required")

// Load reads the configuration. Variables already in the environment win
// over those in envFile; a missing envFile is not an error.
func Load(envFile string) (Cfg, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Cfg{}, err
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("REQUEST_TIMEOUT", "10s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_PING_RETRIES", 5)
	v.SetDefault("COUNT_CACHE_TTL", "30s")

	level, err := zerolog.ParseLevel(strings.ToLower(v.GetString("LOG_LEVEL")))
	if err != nil {
		return Cfg{}, err
	}

	cfg := Cfg{
		App: AppCfg{
			Env:            v.GetString("APP_ENV"),
			Port:           v.GetString("APP_PORT"),
			RequestTimeout: v.GetDuration("REQUEST_TIMEOUT"),
			LogLevel:       level,
		},
		DB: DBCfg{
			DSN:         strings.TrimSpace(v.GetString("DB_DSN")),
			PingRetries: v.GetUint64("DB_PING_RETRIES"),
		},
		Redis: RedisCfg{
			Addr:     strings.TrimSpace(v.GetString("REDIS_ADDR")),
			CountTTL: v.GetDuration("COUNT_CACHE_TTL"),
		},
	}

	if cfg.DB.DSN == "" {
		return Cfg{}, ErrMissingDSN
	}
	return cfg, nil
}

// IsProduction reports whether the service runs in production.
func (c Cfg) IsProduction() bool {
	return c.App.Env == "production"
}
