package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DatabaseURL string

	// Redis
	RedisURL string

	// Auth (shared secret with the identity provider)
	JWTSecret  string
	CookieName string

	// Sessions
	SessionIdleTimeout time.Duration
	ReaperInterval     time.Duration

	// Reference data
	BookCacheTTL time.Duration

	// Logging
	LogLevel  string
	LogFormat string

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:               getEnvOrDefault("PORT", "8080"),
		Env:                getEnvOrDefault("ENV", "development"),
		DatabaseURL:        mustGetEnv("DATABASE_URL"),
		RedisURL:           mustGetEnv("REDIS_URL"),
		JWTSecret:          mustGetEnv("JWT_SECRET"),
		CookieName:         getEnvOrDefault("AUTH_COOKIE_NAME", "mikra_session"),
		SessionIdleTimeout: getEnvAsDurationOrDefault("SESSION_IDLE_TIMEOUT", 30*time.Minute),
		ReaperInterval:     getEnvAsDurationOrDefault("SESSION_REAPER_INTERVAL", 5*time.Minute),
		BookCacheTTL:       getEnvAsDurationOrDefault("BOOK_CACHE_TTL", 24*time.Hour),
		LogLevel:           getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          getEnvOrDefault("LOG_FORMAT", "json"),
		FrontendURL:        getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}
