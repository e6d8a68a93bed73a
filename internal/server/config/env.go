package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with environment variables, loading a local .env
// file first when one exists. Recognized variables mirror the original
// deployment surface:
//
//	ADDRESS           HTTP bind address
//	DATABASE_DSN      PostgreSQL DSN
//	JWT_SECRET        HMAC signing secret
//	JWT_EXPIRES_MIN   token validity in minutes
//	CORS_ORIGIN       allowed origin(s)
//	AMQP_URL          broker URL for finance record events
func parseEnv(config *Config) {
	ApplyEnv(config)
}

// ApplyEnv is the environment overlay alone, for CLIs that skip flag parsing.
func ApplyEnv(config *Config) {
	// Missing .env is fine; explicit env vars still apply.
	_ = godotenv.Load()

	if v := os.Getenv("ADDRESS"); v != "" {
		config.EndpointAddr = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		config.SecretKey = v
	}
	if v := os.Getenv("JWT_EXPIRES_MIN"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil {
			config.TokenValidityDuration = time.Duration(minutes) * time.Minute
		}
	}
	if v := os.Getenv("CORS_ORIGIN"); v != "" {
		config.CORSOrigin = v
	}
	if v := os.Getenv("AMQP_URL"); v != "" {
		config.AMQPURL = v
	}
}
