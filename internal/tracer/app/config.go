package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config carries every runtime knob of the service. Values come from
// environment variables, optionally overridden by a spendtrace.yaml in the
// working directory.
type Config struct {
	Port         int    // HTTP server port (default: 8080)
	DatabaseFile string // Path to the SQLite database file (default: ./spendtrace.db)
	SecretKey    string // Required: HMAC secret for session and reset tokens
	Issuer       string // Issuer claim for tokens (default: spendtrace)

	PurchasesPerPage int           // Page size for feeds and listings (default: 10)
	SessionTokenTTL  time.Duration // Session token lifetime (default: 24h)
	ResetTokenTTL    time.Duration // Password reset token lifetime (default: 10m)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// LoadConfig reads configuration from the environment and an optional config
// file. It fails when SECRET_KEY is missing so the service can never start
// with forgeable tokens.
func LoadConfig() (Config, error) {
	v := viper.New()

	v.SetDefault("PORT", 8080)
	v.SetDefault("DATABASE_FILE", "spendtrace.db")
	v.SetDefault("ISSUER", "spendtrace")
	v.SetDefault("PURCHASES_PER_PAGE", 10)
	v.SetDefault("SESSION_TOKEN_TTL", 24*time.Hour)
	v.SetDefault("RESET_TOKEN_TTL", 10*time.Minute)
	v.SetDefault("ENV", "dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second)

	v.SetConfigName("spendtrace")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	v.AutomaticEnv()

	cfg := Config{
		Port:                v.GetInt("PORT"),
		DatabaseFile:        v.GetString("DATABASE_FILE"),
		SecretKey:           v.GetString("SECRET_KEY"),
		Issuer:              v.GetString("ISSUER"),
		PurchasesPerPage:    v.GetInt("PURCHASES_PER_PAGE"),
		SessionTokenTTL:     v.GetDuration("SESSION_TOKEN_TTL"),
		ResetTokenTTL:       v.GetDuration("RESET_TOKEN_TTL"),
		Env:                 v.GetString("ENV"),
		LogLevel:            v.GetString("LOG_LEVEL"),
		LogFormat:           v.GetString("LOG_FORMAT"),
		ShutdownGracePeriod: v.GetDuration("SHUTDOWN_GRACE_PERIOD"),
	}

	if cfg.SecretKey == "" {
		return Config{}, fmt.Errorf("SECRET_KEY must be set")
	}
	if cfg.PurchasesPerPage < 1 {
		return Config{}, fmt.Errorf("PURCHASES_PER_PAGE must be at least 1")
	}

	return cfg, nil
}
