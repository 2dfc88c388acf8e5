package config

import (
	"os"
	"strconv"
	"time"
)

// Cart backend names accepted in CART_BACKEND.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	HTTPAddr        string
	DBConnString    string
	RedisAddr       string
	CartBackend     string
	CartNamespace   string
	ShutdownTimeout time.Duration
}

// FromEnv builds Config with defaults, overridden by environment variables.
// An empty DB_DSN runs the API without Postgres (in-memory catalog).
func FromEnv() Config {
	return Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		DBConnString:    envOrDefault("DB_DSN", ""),
		RedisAddr:       envOrDefault("REDIS_ADDR", "localhost:6379"),
		CartBackend:     envOrDefault("CART_BACKEND", BackendMemory),
		CartNamespace:   envOrDefault("CART_NAMESPACE", "storefront-cart"),
		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second),
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		seconds, err := strconv.Atoi(v)
		if err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return def
}
