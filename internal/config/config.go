package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	DataDir     string // root of the on-disk content tree
	CORSOrigins string
	// Auth
	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	// Bootstrap
	BootstrapFile string // optional YAML overriding the embedded defaults
}

func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Environment:   getEnv("ENVIRONMENT", "dev"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		DataDir:       getEnv("DATA_DIR", "./data"),
		CORSOrigins:   getEnv("CORS_ORIGINS", "http://localhost:3000"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		AccessTTL:     getDuration("ACCESS_TTL_MINUTES", 15) * time.Minute,
		RefreshTTL:    getDuration("REFRESH_TTL_HOURS", 24*30) * time.Hour,
		BootstrapFile: getEnv("BOOTSTRAP_FILE", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue int64) time.Duration {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil && n > 0 {
			return time.Duration(n)
		}
	}
	return time.Duration(defaultValue)
}
