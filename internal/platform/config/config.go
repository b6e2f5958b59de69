package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// DevSigningKey is used when JWT_SIGNING_KEY is unset. It is rejected in
// production.
const DevSigningKey = "dev-secret-key-change-in-production"

// Server captures HTTP server level configuration.
type Server struct {
	Addr        string
	Environment string
	LogLevel    slog.Level

	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string
	TokenTTL      time.Duration

	// RuleSetFile overrides the embedded rule sets when non-empty.
	RuleSetFile             string
	DocumentStorageDir      string
	AssumeLawfulWhenUnknown bool
	EvaluationTimeout       time.Duration
	ShutdownTimeout         time.Duration
}

var TokenTTL = 15 * time.Minute
var EvaluationTimeout = 10 * time.Second
var ShutdownTimeout = 15 * time.Second

// FromEnv builds a Server config from environment variables so main stays lean.
// Malformed durations and booleans fall back to their defaults.
func FromEnv() Server {
	return Server{
		Addr:                    envOr("LEGALCHECK_ADDR", ":8080"),
		Environment:             envOr("ENVIRONMENT", "development"),
		LogLevel:                parseLevel(os.Getenv("LOG_LEVEL")),
		JWTSigningKey:           envOr("JWT_SIGNING_KEY", DevSigningKey),
		JWTIssuer:               envOr("JWT_ISSUER", "legalcheck"),
		JWTAudience:             envOr("JWT_AUDIENCE", "legalcheck-api"),
		TokenTTL:                durationOr("TOKEN_TTL", TokenTTL),
		RuleSetFile:             strings.TrimSpace(os.Getenv("RULESET_FILE")),
		DocumentStorageDir:      envOr("DOCUMENT_STORAGE_DIR", "./storage"),
		AssumeLawfulWhenUnknown: boolOr("ASSUME_LAWFUL_WHEN_UNKNOWN", true),
		EvaluationTimeout:       durationOr("EVALUATION_TIMEOUT", EvaluationTimeout),
		ShutdownTimeout:         durationOr("SHUTDOWN_TIMEOUT", ShutdownTimeout),
	}
}

// IsProduction reports whether dev shortcuts must be refused.
func (s Server) IsProduction() bool {
	return s.Environment == "production"
}

// Validate refuses the dev signing key in production.
func (s Server) Validate() error {
	if s.IsProduction() && s.JWTSigningKey == DevSigningKey {
		return errors.New("JWT_SIGNING_KEY must be set in production")
	}
	if s.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func boolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}
