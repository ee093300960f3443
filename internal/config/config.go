// config.go

// Environment variable loading and validation.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Config holds all env configuration vars for Janus.
type Config struct {
	DatabaseURL string
	RedisURL    string
	Port        string
	LogLevel    slog.Level

	// LinkedIn OAuth2 application credentials. All three required.
	LinkedInClientID     string
	LinkedInClientSecret string
	LinkedInRedirectURL  string

	// Credential minting. Key must be at least 32 bytes (enforced by the
	// minter). Defaults: issuer "janus", TTL 1h.
	TokenSigningKey string
	TokenIssuer     string
	TokenTTL        time.Duration

	// How long a state cookie stays valid before the user has to restart
	// the flow. Default 1h.
	StateTTL time.Duration
}

// LoadConfig reads environment variables and returns a validated Config.
// Returns an error if any required variable is missing.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	cfg.RedisURL = os.Getenv("REDIS_URL")
	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	cfg.LinkedInClientID = os.Getenv("LINKEDIN_CLIENT_ID")
	if cfg.LinkedInClientID == "" {
		return nil, fmt.Errorf("LINKEDIN_CLIENT_ID is required")
	}

	cfg.LinkedInClientSecret = os.Getenv("LINKEDIN_CLIENT_SECRET")
	if cfg.LinkedInClientSecret == "" {
		return nil, fmt.Errorf("LINKEDIN_CLIENT_SECRET is required")
	}

	// Must match the redirect URI registered on the LinkedIn application.
	cfg.LinkedInRedirectURL = os.Getenv("LINKEDIN_REDIRECT_URL")
	if cfg.LinkedInRedirectURL == "" {
		return nil, fmt.Errorf("LINKEDIN_REDIRECT_URL is required")
	}

	cfg.TokenSigningKey = os.Getenv("TOKEN_SIGNING_KEY")
	if cfg.TokenSigningKey == "" {
		return nil, fmt.Errorf("TOKEN_SIGNING_KEY is required")
	}

	cfg.Port = os.Getenv("PORT")
	if cfg.Port == "" {
		cfg.Port = "7865"
	}

	cfg.TokenIssuer = os.Getenv("TOKEN_ISSUER")
	if cfg.TokenIssuer == "" {
		cfg.TokenIssuer = "janus"
	}

	cfg.TokenTTL = envDuration("TOKEN_TTL", 1*time.Hour)
	cfg.StateTTL = envDuration("STATE_TTL", 1*time.Hour)

	// Parse log level, default to info
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		cfg.LogLevel = slog.LevelDebug
	case "warn":
		cfg.LogLevel = slog.LevelWarn
	case "error":
		cfg.LogLevel = slog.LevelError
	default:
		cfg.LogLevel = slog.LevelInfo
	}

	return cfg, nil
}

// envDuration reads an env var as time.Duration, returning def if missing or
// unparseable so a misconfigured env doesn't silently break the flow.
func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid env var, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}
